// Package config provides configuration loading and validation for xrdscan.
package config

import (
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Sources are files or globs decoded when no arguments are given.
	Sources []string `yaml:"sources,omitempty"`

	// Output is the default report format (text or json).
	Output string `yaml:"output,omitempty"`

	// Stats enables Y-sample statistics in inspect reports.
	Stats bool `yaml:"stats,omitempty"`

	// PreviewPoints is how many points inspect --verbose prints.
	PreviewPoints int `yaml:"preview_points,omitempty"`

	Logging  LoggingConfig   `yaml:"logging,omitempty"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text, json
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnFailure fires only when a file failed to decode (default).
	WebhookTriggerOnFailure WebhookTrigger = "on_failure"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for publishing inspect reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_failure" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
