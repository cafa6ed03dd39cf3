package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultProducerName   = "gedkit"
	DefaultStorePath      = "gedkit-store.json"
	DefaultMaxFileSize    = 32 << 20 // 32MB
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvStorePath    = "GEDKIT_STORE_PATH"
	EnvProducerName = "GEDKIT_PRODUCER_NAME"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Producer: Producer{Name: DefaultProducerName},
		Store:    StoreConfig{Path: DefaultStorePath},
		Limits:   Limits{MaxFileSize: DefaultMaxFileSize},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the
// config.
func (c *Config) applyEnvironmentOverrides() {
	if path := os.Getenv(EnvStorePath); path != "" {
		c.Store.Path = path
	}
	if name := os.Getenv(EnvProducerName); name != "" {
		c.Producer.Name = name
	}
}
