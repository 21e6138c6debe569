package config

import (
	"os"
	"time"

	"github.com/quickevent/quickevent/pkg/engine"
)

// Default values for configuration.
const (
	DefaultDateOrder      = string(engine.MonthDayYear)
	DefaultOutput         = "text"
	DefaultEventDuration  = time.Hour
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvDateOrder = "QUICKEVENT_DATE_ORDER"
	EnvOutput    = "QUICKEVENT_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DateOrder:       DefaultDateOrder,
		DefaultDuration: DefaultEventDuration,
		Output:          DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if order := os.Getenv(EnvDateOrder); order != "" {
		c.DateOrder = order
	}
	if out := os.Getenv(EnvOutput); out != "" {
		c.Output = out
	}
}
