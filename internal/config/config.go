// Package config provides unified configuration loading for quadfa.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file quadfa looks for in the working
// directory when no --config flag is given.
const DefaultFileName = "quadfa.yaml"

// Config contains all quadfa configuration settings.
type Config struct {
	// Run contains settings for token simulation.
	Run RunConfig `json:"run" yaml:"run"`

	// History contains settings for the run-history store.
	History HistoryConfig `json:"history" yaml:"history"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// RunConfig configures how tokens are simulated.
type RunConfig struct {
	// Preset names the built-in transition table: "five" or "ten".
	// Ignored when TablePath is set.
	Preset string `json:"preset" yaml:"preset"`

	// TablePath points at a YAML table definition to use instead of a
	// preset.
	TablePath string `json:"table_path,omitempty" yaml:"table_path,omitempty"`

	// Separator splits an input line into tokens.
	Separator string `json:"separator" yaml:"separator"`
}

// HistoryConfig configures the SQLite run-history store.
type HistoryConfig struct {
	// Enabled controls whether finished runs are recorded.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the database file. Defaults to .quadfa/history.db under
	// the working directory.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LoggingConfig configures quadfa's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or
	// "trace". "debug" enables simulation tracing to .quadfa/trace.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Preset:    "five",
			Separator: ",",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(".quadfa", "history.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a YAML file, layered over the
// defaults. ${VAR} references in string values are expanded from the
// environment.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Load resolves the effective configuration: defaults, then the config
// file at path (or DefaultFileName if path is empty and the file exists),
// then QUADFA_* environment overrides.
func Load(path string) (*Config, error) {
	var cfg *Config
	var err error

	switch {
	case path != "":
		cfg, err = LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	default:
		if _, statErr := os.Stat(DefaultFileName); statErr == nil {
			cfg, err = LoadFromFile(DefaultFileName)
			if err != nil {
				return nil, err
			}
		} else {
			cfg = Default()
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies QUADFA_* environment variables on top of cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QUADFA_PRESET"); v != "" {
		cfg.Run.Preset = v
	}
	if v := os.Getenv("QUADFA_TABLE"); v != "" {
		cfg.Run.TablePath = v
	}
	if v := os.Getenv("QUADFA_SEPARATOR"); v != "" {
		cfg.Run.Separator = v
	}
	if v := os.Getenv("QUADFA_HISTORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History.Enabled = b
		}
	}
	if v := os.Getenv("QUADFA_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("QUADFA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
