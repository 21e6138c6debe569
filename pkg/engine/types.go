// Package engine extracts natural-language date/time expressions from
// free-form event titles and resolves them to concrete instants.
package engine

import "time"

// TokenKind distinguishes plain text from a matched date expression.
type TokenKind string

const (
	// TokenText is a plain text segment of the input.
	TokenText TokenKind = "text"

	// TokenDate is the segment covered by the winning date expression.
	TokenDate TokenKind = "date"
)

// Token is one segment of the input text. Tokens are contiguous and
// ordered: concatenating Raw over all tokens reproduces the input exactly.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Raw   string    `json:"raw"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// ParsedDateTime is a resolved instant plus certainty flags. HasDate is
// false when only the time-of-day component of Instant is meaningful;
// HasTime is false when only the calendar date is meaningful. At least
// one flag is always true.
type ParsedDateTime struct {
	Instant time.Time `json:"instant"`
	HasDate bool      `json:"hasDate"`
	HasTime bool      `json:"hasTime"`
}

// EventData carries the event start and end derived from the winning
// expression. Start is nil when the text contained no date expression.
// End is filled with the default-duration policy when no explicit range
// was given: start+duration for timed events, a same-day all-day span
// for date-only events.
type EventData struct {
	Start *ParsedDateTime `json:"start,omitempty"`
	End   *ParsedDateTime `json:"end,omitempty"`
}

// ParseResult is the complete output of one parse call.
type ParseResult struct {
	// Tokens partitions the input into text and date segments. It
	// contains at most one date token.
	Tokens []Token `json:"tokens"`

	// Event holds the resolved start/end, if any.
	Event EventData `json:"event"`

	// CleanTitle is the input with the date expression removed and
	// whitespace normalized.
	CleanTitle string `json:"cleanTitle"`

	// Pattern names the registry entry that produced the winning
	// expression. Empty when no expression was found.
	Pattern string `json:"pattern,omitempty"`
}

// HasMatch returns true if a date expression was found.
func (r *ParseResult) HasMatch() bool {
	return r.Event.Start != nil
}

// resolution is a resolver's verdict on a raw match. Resolvers either
// produce one of these or reject the match outright.
type resolution struct {
	start   time.Time
	end     time.Time
	hasEnd  bool
	hasDate bool
	hasTime bool
}

// candidate is a text span matched by some pattern, alive only within a
// single parse call.
type candidate struct {
	start   int
	end     int
	raw     string
	pattern string
	res     resolution
}
