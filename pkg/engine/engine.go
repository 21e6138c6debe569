package engine

import "time"

// DateOrder controls which slash-date component is nominally the month.
type DateOrder string

const (
	// MonthDayYear reads 1/15 as January 15 (US convention, default).
	MonthDayYear DateOrder = "mdy"

	// DayMonthYear reads 1/15 as January 15 too, but via the swap
	// heuristic: the nominal month 15 exceeds 12. 13/5 reads as May 13
	// directly.
	DayMonthYear DateOrder = "dmy"
)

// DefaultDuration is the default event length when a time of day was
// given but no explicit end.
const DefaultDuration = time.Hour

// Engine parses date/time expressions out of event titles. It holds no
// mutable state between calls and is safe for concurrent use.
type Engine struct {
	patterns        []*pattern
	order           DateOrder
	defaultDuration time.Duration
}

// Option configures the Engine.
type Option func(*Engine)

// WithDateOrder sets the slash-date component order.
func WithDateOrder(order DateOrder) Option {
	return func(e *Engine) {
		if order == MonthDayYear || order == DayMonthYear {
			e.order = order
		}
	}
}

// WithDefaultDuration sets the event length used when a start time was
// given but no explicit end.
func WithDefaultDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.defaultDuration = d
		}
	}
}

// New creates an Engine with the built-in patterns.
func New(opts ...Option) *Engine {
	e := &Engine{
		patterns:        defaultPatterns(),
		order:           MonthDayYear,
		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse extracts the date expression from text using the wall clock as
// the reference instant.
func (e *Engine) Parse(text string) *ParseResult {
	return e.ParseAt(text, time.Now())
}

// ParseAt extracts the date expression from text, resolving relative
// expressions against the given reference instant. A fixed reference
// makes parsing fully deterministic.
func (e *Engine) ParseAt(text string, ref time.Time) *ParseResult {
	kept := resolveOverlaps(e.scan(text, ref))
	anchor := selectAnchor(kept)

	tokens := tokenize(text, anchor)
	result := &ParseResult{
		Tokens:     tokens,
		Event:      e.buildEvent(anchor),
		CleanTitle: reduceTitle(tokens),
	}
	if anchor != nil {
		result.Pattern = anchor.pattern
	}
	return result
}

// buildEvent wraps the anchor's resolution into event start/end data.
// When no explicit end was parsed, the default-duration policy applies:
// timed events get start+duration, date-only events become a same-day
// all-day span. This is a product choice, not a parsing inference.
func (e *Engine) buildEvent(anchor *candidate) EventData {
	if anchor == nil {
		return EventData{}
	}
	res := anchor.res

	start := &ParsedDateTime{Instant: res.start, HasDate: res.hasDate, HasTime: res.hasTime}
	var end *ParsedDateTime
	switch {
	case res.hasEnd:
		end = &ParsedDateTime{Instant: res.end, HasDate: res.hasDate, HasTime: true}
	case res.hasTime:
		end = &ParsedDateTime{Instant: res.start.Add(e.defaultDuration), HasDate: res.hasDate, HasTime: true}
	default:
		end = &ParsedDateTime{Instant: res.start, HasDate: true, HasTime: false}
	}
	return EventData{Start: start, End: end}
}

// PatternInfo describes one registered pattern for introspection.
type PatternInfo struct {
	Name     string   `json:"name"`
	Examples []string `json:"examples"`
}

// Patterns returns the registered patterns in registration order.
func (e *Engine) Patterns() []PatternInfo {
	infos := make([]PatternInfo, 0, len(e.patterns))
	for _, p := range e.patterns {
		infos = append(infos, PatternInfo{Name: p.name, Examples: p.examples})
	}
	return infos
}
