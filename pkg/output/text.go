package output

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/quickevent/quickevent/pkg/engine"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders a single-title report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	if !report.HasMatch() {
		fmt.Fprintf(w, "%s\n", report.Result.CleanTitle)
		return nil
	}
	fmt.Fprintf(w, "%s -> %s\n", report.Result.CleanTitle, FormatInstant(report.Result.Event.Start))
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "Input:       %s\n", report.Input)

	if !report.HasMatch() {
		fmt.Fprintln(w, "No date expression found.")
		fmt.Fprintf(w, "Clean title: %s\n", report.Result.CleanTitle)
		return nil
	}

	result := report.Result
	dateTok := dateToken(result.Tokens)
	if dateTok != nil {
		fmt.Fprintf(w, "Matched:     %q (%s)\n", dateTok.Raw, result.Pattern)
	}
	fmt.Fprintf(w, "Start:       %s\n", FormatInstant(result.Event.Start))
	if result.Event.End != nil {
		fmt.Fprintf(w, "End:         %s\n", FormatInstant(result.Event.End))
	}
	fmt.Fprintf(w, "Clean title: %s\n", result.CleanTitle)

	if f.opts.Verbose {
		fmt.Fprintln(w, "Tokens:")
		for _, tok := range result.Tokens {
			fmt.Fprintf(w, "  [%d:%d] %-4s %q\n", tok.Start, tok.End, tok.Kind, tok.Raw)
		}
		fmt.Fprintf(w, "Reference:   %s\n", report.Metadata.ReferenceTime.Format("2006-01-02 15:04"))
	}

	return nil
}

// FormatBatch renders a batch report as text.
func (f *TextFormatter) FormatBatch(ctx context.Context, batch *BatchReport, w io.Writer) error {
	if f.opts.Quiet {
		fmt.Fprintf(w, "quickevent: %d titles parsed, %d with dates\n",
			batch.Summary.TitlesParsed, batch.Summary.TitlesMatched)
		return nil
	}

	for _, report := range batch.Reports {
		if report.HasMatch() {
			fmt.Fprintf(w, "%-40q %s -> %s\n",
				report.Input, report.Result.Pattern, FormatInstant(report.Result.Event.Start))
		} else {
			fmt.Fprintf(w, "%-40q no date\n", report.Input)
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d titles parsed, %d with dates\n",
		batch.Summary.TitlesParsed, batch.Summary.TitlesMatched)
	patterns := make([]string, 0, len(batch.Summary.PatternCounts))
	for pattern := range batch.Summary.PatternCounts {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	for _, pattern := range patterns {
		fmt.Fprintf(w, "  %-22s %d\n", pattern, batch.Summary.PatternCounts[pattern])
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Duration: %s\n", batch.Metadata.Duration.Round(1e6))
	}

	return nil
}

// FormatInstant renders a resolved instant, showing only the components
// the parse actually specified.
func FormatInstant(p *engine.ParsedDateTime) string {
	switch {
	case p == nil:
		return "-"
	case p.HasDate && p.HasTime:
		return p.Instant.Format("2006-01-02 15:04")
	case p.HasDate:
		return p.Instant.Format("2006-01-02") + " (all day)"
	default:
		return p.Instant.Format("15:04")
	}
}

func dateToken(tokens []engine.Token) *engine.Token {
	for i := range tokens {
		if tokens[i].Kind == engine.TokenDate {
			return &tokens[i]
		}
	}
	return nil
}
