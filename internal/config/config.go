// Package config loads sift configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/sift/internal/filter"
)

// DefaultConfigPath is where LoadConfig looks when no path is given.
const DefaultConfigPath = ".sift/config.yaml"

// HistoryConfig represents scan history configuration
type HistoryConfig struct {
	// Enabled enables recording of scan runs
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// KeepRuns is the maximum number of runs to keep (0 = unlimited)
	KeepRuns int `yaml:"keep_runs"`
}

// Config represents sift configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where per-run scan logs are written
	LogDir string `yaml:"log_dir"`

	// MaxConcurrency bounds per-directory parallel entry evaluation
	// (0 = scanner default)
	MaxConcurrency int `yaml:"max_concurrency"`

	// Filter holds the rule lists and default policies
	Filter filter.Config `yaml:"filter"`

	// History contains scan history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		LogDir:         ".sift/logs",
		MaxConcurrency: 0,
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   ".sift/history.db",
			KeepRuns: 100,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error; a rule list entry
// that is not text surfaces as filter.ErrTypeMismatch here, before any
// traversal begins.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
