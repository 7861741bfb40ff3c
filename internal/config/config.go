// Package config loads the optional worklog configuration file.
//
// Resolution order, later entries win:
//   - built-in defaults
//   - ~/.worklog/config.toml (or $WORKLOG_DIR/config.toml)
//   - environment variables (WORKLOG_FILE)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the settings the CLI reads at startup. Every field is
// optional; a missing config file just yields the defaults.
type Config struct {
	// LogFile is the path of the append-only work log.
	LogFile string `toml:"log_file"`

	// TimeFormat is the default output format for summaries: one of
	// m, minutes, ma, minutes-approx, h, hours, hr, human-readable.
	TimeFormat string `toml:"time_format"`
}

// Load reads the configuration, applying defaults and env overrides.
func Load() (Config, error) {
	base := os.Getenv("WORKLOG_DIR")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".worklog")
	}

	cfg := Config{
		LogFile:    filepath.Join(base, "work.log"),
		TimeFormat: "human-readable",
	}

	path := filepath.Join(base, "config.toml")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("WORKLOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return cfg, nil
}
