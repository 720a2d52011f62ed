package config

import (
	"os"
	"strconv"
)

// FromEnv overlays TUID_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("TUID_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TUID_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TUID_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TUID_HTTP"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("TUID_JOURNAL_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Journal.Enabled = b
		}
	}
	if v := os.Getenv("TUID_JOURNAL_FSYNC"); v != "" {
		cfg.Journal.Fsync = v
	}
	if v := os.Getenv("TUID_JOURNAL_FSYNC_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Journal.FsyncIntervalMs = n
		}
	}
	if v := os.Getenv("TUID_JOURNAL_MAX_LIST_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Journal.MaxListLimit = n
		}
	}
}
