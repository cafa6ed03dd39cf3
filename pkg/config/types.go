// Package config provides configuration loading and validation for gedkit.
package config

import "time"

// Config is the root configuration structure loaded from YAML. Every field
// has a default; a missing config file means default behavior.
type Config struct {
	Producer Producer        `yaml:"producer"`
	Store    StoreConfig     `yaml:"store"`
	Limits   Limits          `yaml:"limits"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// Producer identifies the application in generated GEDCOM headers.
type Producer struct {
	// Name is written to the header SOUR line.
	Name string `yaml:"name"`

	// Version is written under SOUR when non-empty.
	Version string `yaml:"version,omitempty"`
}

// StoreConfig locates the graph snapshot the CLI imports into and exports
// from.
type StoreConfig struct {
	// Path is the JSON snapshot file path.
	Path string `yaml:"path"`
}

// Limits bounds resource usage.
type Limits struct {
	// MaxFileSize is the largest input file accepted, in bytes. Whole
	// files are held in memory during a run, so this is the practical
	// memory bound.
	MaxFileSize int64 `yaml:"max_file_size"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnFindings fires only when findings were produced
	// (default).
	WebhookTriggerOnFindings WebhookTrigger = "on_findings"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending run reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_findings" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
