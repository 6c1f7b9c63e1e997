package main

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/enroldash/engine"
)

// ============================================================================
// CONFIG — defaults → YAML file → ENROLDASH_* environment → flags
// ============================================================================

const envPrefix = "ENROLDASH"

// Config holds CLI settings that can come from a file or the environment.
type Config struct {
	Lang        string   `yaml:"lang"`
	Format      string   `yaml:"format"`
	Panel       string   `yaml:"panel"`
	Province    string   `yaml:"province"`
	RequireYear bool     `yaml:"require_year" split_words:"true"`
	Sheet       string   `yaml:"sheet"`
	Palette     []string `yaml:"palette"`

	Log    LogConfig    `yaml:"log"`
	Sentry SentryConfig `yaml:"sentry"`

	// Panels replaces the single --panel selection when set in a file.
	Panels []engine.Panel `yaml:"panels" ignored:"true"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

func defaultConfig() Config {
	return Config{
		Lang:   "en",
		Format: "json",
		Panel:  "all",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Sentry: SentryConfig{Environment: "production"},
	}
}

// loadConfig layers an optional YAML file and the environment over the
// defaults. Keys absent from a layer keep the value below them.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config from env: %w", err)
	}

	return cfg, nil
}
