package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	LogLevel  string  `json:"logLevel"`
	LogFormat string  `json:"logFormat"`
	DataDir   string  `json:"dataDir"`
	HTTPAddr  string  `json:"httpAddr"`
	Journal   Journal `json:"journal"`
}

// Journal configures the persistent mint journal.
type Journal struct {
	Enabled bool `json:"enabled"`
	// Fsync is always|interval|never.
	Fsync           string `json:"fsync"`
	FsyncIntervalMs int    `json:"fsyncIntervalMs"`
	// MaxListLimit caps how many entries a single list call may return.
	MaxListLimit int `json:"maxListLimit"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		HTTPAddr:  ":8080",
		Journal: Journal{
			Enabled:         true,
			Fsync:           "always",
			FsyncIntervalMs: 5,
			MaxListLimit:    1000,
		},
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if ext := filepath.Ext(path); ext != ".json" {
		return Config{}, fmt.Errorf("config: unsupported extension %q; use JSON", ext)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
