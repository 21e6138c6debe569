package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
date_order: dmy
default_duration: 30m
output: json
webhooks:
  - name: calendar
    url: https://calendar.example.com/ingest
    token: secret
    trigger: always
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DateOrder != "dmy" {
		t.Errorf("DateOrder = %q, want %q", cfg.DateOrder, "dmy")
	}
	if cfg.DefaultDuration != 30*time.Minute {
		t.Errorf("DefaultDuration = %v, want 30m", cfg.DefaultDuration)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want %q", cfg.Output, "json")
	}
	if len(cfg.Webhooks) != 1 {
		t.Fatalf("Webhooks = %d, want 1", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Trigger != "always" {
		t.Errorf("Trigger = %q, want %q", cfg.Webhooks[0].Trigger, "always")
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Webhooks[0].Timeout, DefaultWebhookTimeout)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DateOrder != DefaultDateOrder {
		t.Errorf("DateOrder = %q, want default %q", cfg.DateOrder, DefaultDateOrder)
	}
	if cfg.DefaultDuration != DefaultEventDuration {
		t.Errorf("DefaultDuration = %v, want default %v", cfg.DefaultDuration, DefaultEventDuration)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want default %q", cfg.Output, DefaultOutput)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvDateOrder, "dmy")
	t.Setenv(EnvOutput, "ics")

	path := writeTempFile(t, "config.yaml", "date_order: mdy\noutput: text\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DateOrder != "dmy" {
		t.Errorf("DateOrder = %q, want env override %q", cfg.DateOrder, "dmy")
	}
	if cfg.Output != "ics" {
		t.Errorf("Output = %q, want env override %q", cfg.Output, "ics")
	}
}

func TestValidate_BadDateOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DateOrder = "ymd"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for unknown date_order")
	}
}

func TestValidate_BadDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultDuration = -time.Minute
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for negative default_duration")
	}
}

func TestValidate_BadOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = "xml"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for unknown output")
	}
}

func TestValidate_Webhooks(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr bool
	}{
		{
			name:    "valid",
			webhook: WebhookConfig{URL: "https://example.com/hook"},
			wantErr: false,
		},
		{
			name:    "missing url",
			webhook: WebhookConfig{Name: "nameless"},
			wantErr: true,
		},
		{
			name:    "bad scheme",
			webhook: WebhookConfig{URL: "ftp://example.com/hook"},
			wantErr: true,
		},
		{
			name:    "bad trigger",
			webhook: WebhookConfig{URL: "https://example.com/hook", Trigger: "sometimes"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			webhook: WebhookConfig{URL: "https://example.com/hook", Timeout: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Webhooks = []WebhookConfig{tt.webhook}
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_WebhookTriggerDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://example.com/hook"}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Trigger != string(TriggerOnMatch) {
		t.Errorf("Trigger = %q, want default %q", cfg.Webhooks[0].Trigger, TriggerOnMatch)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}
