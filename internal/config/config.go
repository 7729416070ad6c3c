// Package config provides unified configuration loading for ftsim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config contains all ftsim configuration settings.
type Config struct {
	// Simulation contains campaign defaults.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// History contains settings for the campaign history database.
	History HistoryConfig `json:"history" yaml:"history"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig holds campaign defaults used when a model file or flag
// does not override them.
type SimulationConfig struct {
	// Trials is the default number of trials per campaign.
	Trials int `json:"trials" yaml:"trials"`

	// Output is the path the failure-time stream is written to.
	Output string `json:"output" yaml:"output"`
}

// HistoryConfig configures campaign history persistence.
type HistoryConfig struct {
	// Enabled controls whether completed campaigns are recorded.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// LoggingConfig configures ftsim's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables trial trace logging to .ftsim/trace.jsonl.
	// "trace" additionally records every processed schedule event.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Trials: 10000,
			Output: "output.txt",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the ftsim home directory (~/.ftsim), where the config file,
// history database, and trace logs live.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ftsim"), nil
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ~/.ftsim/config.yaml -> environment
// variables.
func Load() (*Config, error) {
	config := Default()

	dir, err := Dir()
	if err == nil {
		configPath := filepath.Join(dir, "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Simulation.Trials)
	}

	if c.Simulation.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}

	// Levels are matched case-insensitively, same as the logger itself.
	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	level := strings.ToLower(c.Logging.Level)
	if level != "" && !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("FTSIM_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Trials = n
		}
	}

	if v := os.Getenv("FTSIM_OUTPUT"); v != "" {
		config.Simulation.Output = v
	}

	if v := os.Getenv("FTSIM_HISTORY"); v != "" {
		config.History.Enabled = v == "true" || v == "1"
	}

	if v := os.Getenv("FTSIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
