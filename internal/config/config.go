// Package config provides 12-factor configuration for the GenApp service.
//
// Settings come from environment variables with sensible defaults. An
// optional TOML file, passed via the -config flag, is applied on top; only
// keys present in the file override the environment.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Generator GeneratorConfig `toml:"generator"`
	Logging   LogConfig       `toml:"logging"`
	Storage   StorageConfig   `toml:"storage"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000" toml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" toml:"host"`
}

// GeneratorConfig holds upstream model API settings.
type GeneratorConfig struct {
	BaseURL    string `envconfig:"GENERATOR_URL" default:"https://api.openai.com/v1" toml:"base_url"`
	APIKey     string `envconfig:"GENERATOR_API_KEY" toml:"api_key"`
	Model      string `envconfig:"GENERATOR_MODEL" default:"gpt-4o-mini" toml:"model"`
	TimeoutSec int    `envconfig:"GENERATOR_TIMEOUT" default:"60" toml:"timeout_seconds"`
	MaxRetries int    `envconfig:"GENERATOR_RETRIES" default:"2" toml:"max_retries"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" toml:"development"`
}

// StorageConfig holds blob store settings. An empty Dir selects the
// in-memory store.
type StorageConfig struct {
	Dir         string `envconfig:"STORAGE_DIR" default:"./data" toml:"dir"`
	CatalogPath string `envconfig:"CATALOG_PATH" default:"./catalog.yaml" toml:"catalog_path"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" toml:"enabled"`
}

// Load builds configuration from the environment, then overlays the
// optional TOML file at path (empty means none, missing file is fine).
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	if path != "" {
		if err := overlayFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration, falling back to defaults on error.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8000", Host: "0.0.0.0"},
		Generator: GeneratorConfig{
			BaseURL:    "https://api.openai.com/v1",
			Model:      "gpt-4o-mini",
			TimeoutSec: 60,
			MaxRetries: 2,
		},
		Logging: LogConfig{Level: "info"},
		Storage: StorageConfig{Dir: "./data", CatalogPath: "./catalog.yaml"},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// overlayFile applies keys present in a TOML file onto cfg. A missing file
// is not an error.
func overlayFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
