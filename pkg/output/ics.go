package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/quickevent/quickevent/pkg/engine"
)

// ErrNoEvent is returned when an ICS export is requested for a parse
// with no date expression.
var ErrNoEvent = errors.New("no event to export")

// ICSFormatter renders parsed events as RFC 5545 calendars.
type ICSFormatter struct {
	opts FormatOptions
}

// NewICSFormatter creates a new ICS formatter with the given options.
func NewICSFormatter(opts FormatOptions) *ICSFormatter {
	return &ICSFormatter{opts: opts}
}

// Name returns the format name.
func (f *ICSFormatter) Name() string {
	return "ics"
}

// Format renders a single-title report as a calendar with one event.
func (f *ICSFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if !report.HasMatch() {
		return ErrNoEvent
	}

	cal := newCalendar()
	addEvent(cal, report)
	return cal.SerializeTo(w)
}

// FormatBatch renders a batch report as a calendar with one event per
// matched title. Titles without a date expression are skipped.
func (f *ICSFormatter) FormatBatch(ctx context.Context, batch *BatchReport, w io.Writer) error {
	cal := newCalendar()
	for _, report := range batch.Reports {
		if report.HasMatch() {
			addEvent(cal, report)
		}
	}
	return cal.SerializeTo(w)
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//quickevent//quickevent//EN")
	return cal
}

// addEvent appends a VEVENT for one parsed title. All-day events use
// date-valued DTSTART/DTEND; DTEND is exclusive per RFC 5545, so a
// single-day event ends the following day.
func addEvent(cal *ical.Calendar, report *Report) {
	event := cal.AddEvent(uuid.NewString())
	event.SetDtStampTime(report.Metadata.ParsedAt)

	summary := report.Result.CleanTitle
	if summary == "" {
		summary = report.Input
	}
	event.SetSummary(summary)
	event.SetDescription(fmt.Sprintf("Parsed from: %s", report.Input))

	start := report.Result.Event.Start
	end := report.Result.Event.End
	if end == nil {
		end = start
	}

	if start.HasTime {
		event.SetStartAt(start.Instant)
		event.SetEndAt(endInstant(start, end))
		return
	}

	event.SetAllDayStartAt(start.Instant)
	event.SetAllDayEndAt(end.Instant.AddDate(0, 0, 1))
}

// endInstant guards against an end that does not follow the start.
func endInstant(start, end *engine.ParsedDateTime) time.Time {
	if end.Instant.After(start.Instant) {
		return end.Instant
	}
	return start.Instant.Add(engine.DefaultDuration)
}
