package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quickevent/quickevent/pkg/config"
	"github.com/quickevent/quickevent/pkg/engine"
	"github.com/quickevent/quickevent/pkg/output"
	"github.com/quickevent/quickevent/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Config    string
	Output    string
	Now       string
	DateOrder string
	Verbose   bool
	Quiet     bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <title>",
		Short: "Parse one event title",
		Long: `Parse a single event title and report the date expression found.

The title is scanned for date and time expressions. The winning
expression becomes the event anchor; the remaining text becomes the
clean title.

Exit codes:
  0 - A date expression was found
  1 - No date expression was found
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json|ics)")
	cmd.Flags().StringVar(&opts.Now, "now", "", "Reference instant as RFC 3339 (defaults to the wall clock)")
	cmd.Flags().StringVar(&opts.DateOrder, "date-order", "", "Slash-date component order (mdy|dmy)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show the token partition and reference instant")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Minimal output")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_match", "When to fire webhook (on_match|always|never)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	title := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts.Output, opts.DateOrder)

	ref, err := referenceTime(opts.Now)
	if err != nil {
		return err
	}

	eng := engine.New(cfg.EngineOptions()...)
	report := output.NewReport(title, eng.ParseAt(title, ref), ref)

	formatter, err := output.ForName(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail the parse)
	sendWebhooks(ctx, cfg, opts, report)

	if !report.HasMatch() {
		ExitCode = 1
	}

	return nil
}

// loadConfig loads the config file, or returns defaults when no path
// was given.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyOverrides layers CLI flags over the loaded config.
func applyOverrides(cfg *config.Config, outputFormat, dateOrder string) {
	if outputFormat != "" {
		cfg.Output = outputFormat
	}
	if dateOrder != "" {
		cfg.DateOrder = dateOrder
	}
}

// referenceTime parses the --now flag, or falls back to the wall clock.
func referenceTime(now string) (time.Time, error) {
	if now == "" {
		return time.Now(), nil
	}
	ref, err := time.Parse(time.RFC3339, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", now, err)
	}
	return ref, nil
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the parse.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *ParseOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !webhook.ShouldSend(wh.Trigger, report.HasMatch()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ParseOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := opts.WebhookTrigger
		if trigger == "" {
			trigger = string(config.TriggerOnMatch)
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}
