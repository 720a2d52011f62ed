// Package config provides loading and environment overlay for the tuid CLI
// and server. It exposes a Default() baseline, JSON file loading, and a
// TUID_* env overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/tuid.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
