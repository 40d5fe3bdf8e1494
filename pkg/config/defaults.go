package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultOutput         = "text"
	DefaultPreviewPoints  = 10
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvOutput    = "XRDSCAN_OUTPUT"
	EnvLogLevel  = "XRDSCAN_LOG_LEVEL"
	EnvLogFormat = "XRDSCAN_LOG_FORMAT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Sources:       []string{},
		Output:        DefaultOutput,
		PreviewPoints: DefaultPreviewPoints,
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}
