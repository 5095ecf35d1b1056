// Package config loads and writes the mymoneyman.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for the configuration file.
const DefaultPath = "mymoneyman.yaml"

// Config represents the top-level mymoneyman.yaml configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Reporting ReportingConfig `yaml:"reporting"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig locates the SQLite book file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ReportingConfig controls how balances are aggregated and rendered.
type ReportingConfig struct {
	Currency    string `yaml:"currency"`     // currency code totals are converted to
	ShortFormat bool   `yaml:"short_format"` // abbreviated amounts ("1.5K")
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Load reads a mymoneyman.yaml file from disk and applies MYMONEYMAN_*
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// LoadOrDefault reads path like Load, falling back to defaults when the
// file does not exist. Environment overrides apply either way.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cfg = Default("mymoneyman.db", "USD")
	cfg.applyEnv()
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book.
func Default(dbPath, currency string) *Config {
	return &Config{
		Database:  DatabaseConfig{Path: dbPath},
		Reporting: ReportingConfig{Currency: currency},
		Log:       LogConfig{Level: "info"},
	}
}

// applyEnv overrides file values from the environment. A .env file in
// the working directory is loaded first; variables the environment
// already sets win over it.
func (c *Config) applyEnv() {
	_ = godotenv.Load()
	c.Database.Path = getEnv("MYMONEYMAN_DB", c.Database.Path)
	c.Reporting.Currency = getEnv("MYMONEYMAN_CURRENCY", c.Reporting.Currency)
	c.Log.Level = getEnv("MYMONEYMAN_LOG_LEVEL", c.Log.Level)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
