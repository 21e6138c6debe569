package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quickevent/quickevent/pkg/engine"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	switch engine.DateOrder(cfg.DateOrder) {
	case engine.MonthDayYear, engine.DayMonthYear:
	default:
		return fmt.Errorf("date_order: must be %q or %q, got %q",
			engine.MonthDayYear, engine.DayMonthYear, cfg.DateOrder)
	}

	if cfg.DefaultDuration <= 0 {
		return errors.New("default_duration: must be positive")
	}

	switch cfg.Output {
	case "text", "json", "ics":
	default:
		return fmt.Errorf("output: must be text, json, or ics, got %q", cfg.Output)
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateWebhook(w *WebhookConfig) error {
	if w.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(w.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if w.Trigger == "" {
		w.Trigger = string(TriggerOnMatch)
	}
	switch WebhookTrigger(w.Trigger) {
	case TriggerOnMatch, TriggerAlways, TriggerNever:
	default:
		return fmt.Errorf("trigger must be on_match, always, or never, got %q", w.Trigger)
	}

	if w.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if w.Timeout == 0 {
		w.Timeout = DefaultWebhookTimeout
	}

	return nil
}
