// Package log provides tuid's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled, Field-based
// methods. It is backed by the standard library slog: the facade builds a
// slog handler (text or JSON) and forwards records to it, so output stays
// consistent with the wider slog ecosystem while callers keep a compact API.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormat(log.FormatText),
//	)
//	l = l.With(log.Component("server"))
//	l.Info("listening", log.Str("addr", ":8080"))
//
// # Configuration
//
// ApplyConfig builds a logger from a declarative Config, typically populated
// from TUID_LOG_LEVEL and TUID_LOG_FORMAT.
//
// # Interop
//
// RedirectStdLog routes the standard library's log output (used by Pebble)
// through a Logger.
package log
