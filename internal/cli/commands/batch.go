package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quickevent/quickevent/pkg/engine"
	"github.com/quickevent/quickevent/pkg/output"
	"github.com/quickevent/quickevent/pkg/source"
)

// BatchOptions holds command-line options for the batch command.
type BatchOptions struct {
	Config    string
	Output    string
	Now       string
	DateOrder string
	Verbose   bool
	Quiet     bool
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file|glob>...",
		Short: "Parse event titles from files",
		Long: `Parse event titles read from files, one title per line.

Blank lines and lines starting with # are skipped. Every title is
parsed against the same reference instant, so a batch run is
reproducible with --now.

Exit codes:
  0 - At least one title had a date expression
  1 - No title had a date expression
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json|ics)")
	cmd.Flags().StringVar(&opts.Now, "now", "", "Reference instant as RFC 3339 (defaults to the wall clock)")
	cmd.Flags().StringVar(&opts.DateOrder, "date-order", "", "Slash-date component order (mdy|dmy)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show run duration")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no per-title lines")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string, opts *BatchOptions) error {
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

	files, err := source.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding title files: %w", err)
	}

	eng := engine.New(cfg.EngineOptions()...)
	start := time.Now()

	titles := source.NewFileSource(files)
	defer titles.Close()

	var reports []*output.Report
	for {
		title, err := titles.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading titles: %w", err)
		}
		reports = append(reports, output.NewReport(title.Text, eng.ParseAt(title.Text, ref), ref))
	}

	batch := output.NewBatchReport(reports, files, ref, time.Since(start))

	formatter, err := output.ForName(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.FormatBatch(ctx, batch, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if batch.Summary.TitlesMatched == 0 {
		ExitCode = 1
	}

	return nil
}
