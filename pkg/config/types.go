// Package config provides configuration loading and validation for quickevent.
package config

import (
	"time"

	"github.com/quickevent/quickevent/pkg/engine"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// DateOrder selects which slash-date component is nominally the
	// month: "mdy" (default) or "dmy".
	DateOrder string `yaml:"date_order"`

	// DefaultDuration is the event length used when a start time was
	// parsed but no explicit end.
	DefaultDuration time.Duration `yaml:"default_duration"`

	// Output is the default output format (text, json, ics).
	Output string `yaml:"output"`

	// Webhooks are optional endpoints to notify with parse reports.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// WebhookTrigger controls when a webhook fires.
type WebhookTrigger string

const (
	TriggerOnMatch WebhookTrigger = "on_match"
	TriggerAlways  WebhookTrigger = "always"
	TriggerNever   WebhookTrigger = "never"
)

// WebhookConfig defines a single webhook endpoint.
type WebhookConfig struct {
	Name    string        `yaml:"name,omitempty"`
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token,omitempty"`
	Trigger string        `yaml:"trigger,omitempty"` // on_match, always, never
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// EngineOptions translates the configuration into engine options.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithDateOrder(engine.DateOrder(c.DateOrder)),
		engine.WithDefaultDuration(c.DefaultDuration),
	}
}
