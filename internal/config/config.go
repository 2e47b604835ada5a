// Package config loads the YAML configuration used by serve mode.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig is the top-level serve-mode configuration.
type ServerConfig struct {
	// Listen is the HTTP listen address, e.g. ":8787".
	Listen string `yaml:"listen"`

	// Database is the SQLite path backing the served records.
	Database string `yaml:"database"`

	// PurgeCron is a cron schedule for sweeping expired session records.
	// Empty disables the sweep.
	PurgeCron string `yaml:"purge_cron"`

	// CORSOrigins lists allowed origins for browser clients.
	CORSOrigins []string `yaml:"cors_origins"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() ServerConfig {
	return ServerConfig{
		Listen:    ":8787",
		Database:  "~/.config/agendx/agendx.db",
		PurgeCron: "17 3 * * *",
	}
}

// Load reads a YAML config file, falling back to defaults for a missing
// path.
func Load(path string) (ServerConfig, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8787"
	}
	if cfg.Database == "" {
		cfg.Database = Defaults().Database
	}
	return cfg, nil
}
