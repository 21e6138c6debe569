// Package output provides formatting and output generation for parse results.
package output

import (
	"time"

	"github.com/quickevent/quickevent/pkg/engine"
)

// Report wraps one parse result with context about the run.
type Report struct {
	// Input is the raw title text that was parsed.
	Input string `json:"input"`

	// Result is the engine's output for the input.
	Result *engine.ParseResult `json:"result"`

	// Metadata provides context about the parse.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about a parse run.
type Metadata struct {
	// ReferenceTime is the instant relative expressions resolved against.
	ReferenceTime time.Time `json:"referenceTime"`

	// ParsedAt is when the parse was performed.
	ParsedAt time.Time `json:"parsedAt"`
}

// NewReport creates a Report for a single parsed title.
func NewReport(input string, result *engine.ParseResult, ref time.Time) *Report {
	return &Report{
		Input:  input,
		Result: result,
		Metadata: Metadata{
			ReferenceTime: ref,
			ParsedAt:      time.Now(),
		},
	}
}

// HasMatch returns true if the parse found a date expression.
func (r *Report) HasMatch() bool {
	return r.Result != nil && r.Result.HasMatch()
}

// BatchReport is the output of parsing a batch of titles.
type BatchReport struct {
	// Reports holds one entry per parsed title, in input order.
	Reports []*Report `json:"reports"`

	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Metadata provides context about the batch run.
	Metadata BatchMetadata `json:"metadata"`
}

// Summary provides aggregate statistics for a batch run.
type Summary struct {
	// TitlesParsed is the number of titles processed.
	TitlesParsed int `json:"titlesParsed"`

	// TitlesMatched is the number of titles with a date expression.
	TitlesMatched int `json:"titlesMatched"`

	// PatternCounts maps pattern names to the number of titles whose
	// winning expression they produced.
	PatternCounts map[string]int `json:"patternCounts,omitempty"`
}

// BatchMetadata provides context about a batch run.
type BatchMetadata struct {
	// Sources lists the title files that were read.
	Sources []string `json:"sources"`

	// ReferenceTime is the instant relative expressions resolved against.
	ReferenceTime time.Time `json:"referenceTime"`

	// Duration is how long the batch took.
	Duration time.Duration `json:"duration"`
}

// NewBatchReport aggregates per-title reports into a batch report.
func NewBatchReport(reports []*Report, sources []string, ref time.Time, duration time.Duration) *BatchReport {
	batch := &BatchReport{
		Reports: reports,
		Summary: Summary{
			TitlesParsed:  len(reports),
			PatternCounts: make(map[string]int),
		},
		Metadata: BatchMetadata{
			Sources:       sources,
			ReferenceTime: ref,
			Duration:      duration,
		},
	}
	for _, r := range reports {
		if r.HasMatch() {
			batch.Summary.TitlesMatched++
			batch.Summary.PatternCounts[r.Result.Pattern]++
		}
	}
	return batch
}
