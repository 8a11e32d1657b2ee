// Package common provides shared utilities for Greenwash
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Greenwash
type Config struct {
	Environment string           `toml:"environment"`
	Server      ServerConfig     `toml:"server"`
	Dataset     DatasetConfig    `toml:"dataset"`
	Vocabulary  VocabularyConfig `toml:"vocabulary"`
	Charts      ChartsConfig     `toml:"charts"`
	Logging     LoggingConfig    `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string  `toml:"host"`
	Port            int     `toml:"port"`
	ReadTimeout     string  `toml:"read_timeout"`
	WriteTimeout    string  `toml:"write_timeout"`
	ShutdownTimeout string  `toml:"shutdown_timeout"`
	ChartRateLimit  float64 `toml:"chart_rate_limit"` // chart renders per second, 0 disables
	ChartBurst      int     `toml:"chart_burst"`
}

// GetReadTimeout parses and returns the read timeout
func (c *ServerConfig) GetReadTimeout() time.Duration {
	return parseDurationOr(c.ReadTimeout, 30*time.Second)
}

// GetWriteTimeout parses and returns the write timeout
func (c *ServerConfig) GetWriteTimeout() time.Duration {
	return parseDurationOr(c.WriteTimeout, 60*time.Second)
}

// GetShutdownTimeout parses and returns the graceful shutdown deadline
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	return parseDurationOr(c.ShutdownTimeout, 10*time.Second)
}

// DatasetConfig points at the case CSV.
type DatasetConfig struct {
	Path string `toml:"path"`
	// FailFast exits the process when the dataset cannot be loaded instead of
	// serving the blocking error page.
	FailFast bool `toml:"fail_fast"`
}

// VocabularyConfig lists categorical values known ahead of the data.
// Values here appear in aggregations with a zero count even when no case uses them.
type VocabularyConfig struct {
	ClaimTypes    []string `toml:"claim_types"`
	Categories    []string `toml:"categories"`
	Jurisdictions []string `toml:"jurisdictions"`
	Industries    []string `toml:"industries"`
	Channels      []string `toml:"channels"`
}

// ChartsConfig controls rendered chart dimensions and list lengths.
type ChartsConfig struct {
	Width          int `toml:"width"`
	Height         int `toml:"height"`
	TopIndustries  int `toml:"top_industries"`
	TopJuris       int `toml:"top_jurisdictions"`
	TopSettlements int `toml:"top_settlements"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			ReadTimeout:     "30s",
			WriteTimeout:    "60s",
			ShutdownTimeout: "10s",
			ChartRateLimit:  20,
			ChartBurst:      40,
		},
		Dataset: DatasetConfig{
			Path: "140_greenwashing_cases.csv",
		},
		Charts: ChartsConfig{
			Width:          640,
			Height:         350,
			TopIndustries:  10,
			TopJuris:       8,
			TopSettlements: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("GREENWASH_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("GREENWASH_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("GREENWASH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("GREENWASH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("GREENWASH_DATASET"); path != "" {
		config.Dataset.Path = path
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
