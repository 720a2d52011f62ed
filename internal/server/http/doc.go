// Package httpserver exposes the mint and inspect API over HTTP JSON.
//
// Endpoints:
//
//	GET  /v1/healthz            liveness probe
//	POST /v1/ids/new?count=N    mint up to N IDs (default 1)
//	GET  /v1/ids/inspect?id=S   decode the fields of an encoded ID
//	GET  /v1/journal            list recorded mints (limit, after, filter)
//
// The filter parameter accepts the same CEL expressions as the journal
// package.
package httpserver
