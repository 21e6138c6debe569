package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders parse reports in a specific format.
type Formatter interface {
	// Format renders a single-title report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// FormatBatch renders a batch report to the given writer.
	FormatBatch(ctx context.Context, batch *BatchReport, w io.Writer) error

	// Name returns the format name (text, json, ics).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose enables detailed output including the token partition.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}

// ForName returns the formatter registered under the given name.
func ForName(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "ics":
		return NewICSFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, or ics)", name)
	}
}
