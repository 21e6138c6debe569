package engine

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// resolverFunc turns a raw pattern match into a concrete resolution or
// rejects it. Rejection is the only failure mode; resolvers never error.
type resolverFunc func(mc *matchContext) (resolution, bool)

// pattern pairs a recognizer with its resolver. Patterns are built once
// per engine and immutable afterwards.
type pattern struct {
	name     string
	examples []string
	re       *regexp.Regexp
	resolve  resolverFunc

	// dayGroup names a numeric day capture that must not be trailed by
	// a clock-time suffix. This keeps "jan 12:00" from being read as
	// the date January 12. RE2 has no lookahead, so the scanner checks
	// the trailing context explicitly as part of recognition.
	dayGroup string
}

// matchContext gives a resolver access to one raw match along with the
// reference instant and engine settings.
type matchContext struct {
	text  string
	re    *regexp.Regexp
	m     []int
	ref   time.Time
	order DateOrder
}

// group returns the text of a named capture, or "" if it did not match.
func (mc *matchContext) group(name string) string {
	lo, hi := mc.span(name)
	if lo < 0 {
		return ""
	}
	return mc.text[lo:hi]
}

// span returns the byte offsets of a named capture, or (-1, -1).
func (mc *matchContext) span(name string) (int, int) {
	idx := mc.re.SubexpIndex(name)
	if idx < 0 || 2*idx+1 >= len(mc.m) {
		return -1, -1
	}
	return mc.m[2*idx], mc.m[2*idx+1]
}

func (mc *matchContext) groupInt(name string) int {
	n, _ := strconv.Atoi(mc.group(name))
	return n
}

// clockSuffix matches the start of a clock-time continuation: a colon
// followed by a digit, or a meridiem word.
var clockSuffix = regexp.MustCompile(`^\s*(?i:am|pm)\b|^\s*:\d`)

// clockAlt matches one clock expression: "10:30", "10:30am", "7pm".
const clockAlt = `\d{1,2}:\d{2}\s*(?:am|pm)?|\d{1,2}\s*(?:am|pm)`

// timeTail is an optional clock time or clock range trailing a date
// expression, so "jan 27 10:30am" is recognized as a single span.
const timeTail = `(?:(?:\s+at)?\s+(?P<from>` + clockAlt + `)(?:\s*(?:[-–]|to)\s*(?P<to>` + clockAlt + `))?)?`

// yearTail is an optional trailing year. Two-digit years require a
// comma so a trailing clock hour is never mistaken for a year.
const yearTail = `(?:,?\s+(?P<year>\d{4})\b|,\s*(?P<yr2>\d{2})\b)?`

// defaultPatterns returns the built-in date/time patterns. Registration
// order decides which resolver runs on a raw match; final arbitration
// between overlapping matches is shape-agnostic.
func defaultPatterns() []*pattern {
	monthAlt := alternation(monthsByName)
	weekdayAlt := alternation(weekdaysByName)
	ordinalAlt := alternation(ordinalDays)

	patterns := []*pattern{
		{
			name:     "relative day",
			examples: []string{"today", "tomorrow 10:30", "yesterday"},
			re:       mustCompile(`\b(?P<word>today|tod|tomorrow|tom|yesterday)\b` + timeTail),
			resolve:  resolveRelativeDay,
		},
		{
			name:     "weekday",
			examples: []string{"monday", "fri 9am"},
			re:       mustCompile(`\b(?P<wd>` + weekdayAlt + `)\b` + timeTail),
			resolve:  resolveWeekday,
		},
		{
			name:     "ISO date",
			examples: []string{"2025-01-27", "2025-01-27 10:30"},
			re:       mustCompile(`\b(?P<year>\d{4})-(?P<month>\d{1,2})-(?P<day>\d{1,2})\b` + timeTail),
			resolve:  resolveISODate,
		},
		{
			name:     "slash date with year",
			examples: []string{"01/15/2025", "13/5/25"},
			re:       mustCompile(`\b(?P<first>\d{1,2})/(?P<second>\d{1,2})/(?P<year>\d{4}|\d{2})\b` + timeTail),
			resolve:  resolveSlashDateYear,
		},
		{
			name:     "slash date",
			examples: []string{"1/15", "13/5"},
			re:       mustCompile(`\b(?P<first>\d{1,2})/(?P<second>\d{1,2})\b` + timeTail),
			resolve:  resolveSlashDate,
		},
		{
			name:     "month and day",
			examples: []string{"jan 27", "january 27th, 2025", "march twenty-seventh"},
			re: mustCompile(`\b(?P<month>` + monthAlt + `)\.?\s+(?:(?P<day>\d{1,2})(?:st|nd|rd|th)?\b|(?P<dword>` + ordinalAlt + `)\b)` +
				yearTail + timeTail),
			resolve:  resolveMonthDay,
			dayGroup: "day",
		},
		{
			name:     "day and month",
			examples: []string{"27 jan", "twenty-seventh january", "3rd of may 2025"},
			re: mustCompile(`\b(?:(?P<day>\d{1,2})(?:st|nd|rd|th)?|(?P<dword>` + ordinalAlt + `))\s+(?:of\s+)?(?P<month>` + monthAlt + `)\b` +
				yearTail + timeTail),
			resolve: resolveMonthDay,
		},
		{
			name:     "time range",
			examples: []string{"from 10 to 11am", "10:00-11:30"},
			re: mustCompile(`\b(?:from\s+)?(?P<from>\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\s*(?:[-–]|to)\s*` +
				`(?P<to>\d{1,2}:\d{2}\s*(?:am|pm)?|\d{1,2}\s*(?:am|pm))\b`),
			resolve: resolveTimeRange,
		},
		{
			// A bare 24-hour clock ("12:00") is not recognized on its
			// own: without a meridiem or an "at" cue it is too weak a
			// signal, and it would defeat the "jan 12:00" suppression.
			name:     "time of day",
			examples: []string{"5pm", "10:30am", "at 14:00"},
			re:       mustCompile(`(?:\bat\s+(?P<from>\d{1,2}:\d{2})\b|\b(?P<from2>\d{1,2}(?::\d{2})?\s*(?:am|pm))\b)`),
			resolve:  resolveTimeOfDay,
		},
	}

	return patterns
}

func mustCompile(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

// relativeDayOffsets maps relative-day words to day offsets from the
// reference date.
var relativeDayOffsets = map[string]int{
	"today":     0,
	"tod":       0,
	"tomorrow":  1,
	"tom":       1,
	"yesterday": -1,
}

func resolveRelativeDay(mc *matchContext) (resolution, bool) {
	offset, ok := relativeDayOffsets[strings.ToLower(mc.group("word"))]
	if !ok {
		return resolution{}, false
	}
	return withClockTail(mc, dateOnly(mc.ref).AddDate(0, 0, offset))
}

func resolveWeekday(mc *matchContext) (resolution, bool) {
	target, ok := weekdaysByName[strings.ToLower(mc.group("wd"))]
	if !ok {
		return resolution{}, false
	}
	return withClockTail(mc, nextWeekday(mc.ref, target))
}

func resolveISODate(mc *matchContext) (resolution, bool) {
	// ISO component order is unambiguous by convention: no swapping.
	day, ok := makeDate(mc.groupInt("year"), time.Month(mc.groupInt("month")), mc.groupInt("day"), mc.ref.Location())
	if !ok {
		return resolution{}, false
	}
	return withClockTail(mc, day)
}

func resolveSlashDateYear(mc *matchContext) (resolution, bool) {
	month, dayNum, ok := swappedSlashComponents(mc)
	if !ok {
		return resolution{}, false
	}
	year := expandTwoDigitYear(mc.groupInt("year"), mc.ref)
	day, ok := makeDate(year, time.Month(month), dayNum, mc.ref.Location())
	if !ok {
		return resolution{}, false
	}
	return withClockTail(mc, day)
}

func resolveSlashDate(mc *matchContext) (resolution, bool) {
	month, dayNum, ok := swappedSlashComponents(mc)
	if !ok {
		return resolution{}, false
	}
	day, ok := nearestYear(time.Month(month), dayNum, mc.ref)
	if !ok {
		return resolution{}, false
	}
	return withClockTail(mc, day)
}

// swappedSlashComponents orients the two slash components per the
// configured date order, then applies the month/day swap heuristic.
func swappedSlashComponents(mc *matchContext) (int, int, bool) {
	month, day := mc.groupInt("first"), mc.groupInt("second")
	if mc.order == DayMonthYear {
		month, day = day, month
	}
	return swapMonthDay(month, day)
}

// resolveMonthDay handles both component orders of month-name dates.
func resolveMonthDay(mc *matchContext) (resolution, bool) {
	month, ok := monthsByName[strings.ToLower(mc.group("month"))]
	if !ok {
		return resolution{}, false
	}
	dayNum := mc.groupInt("day")
	if word := mc.group("dword"); word != "" {
		dayNum = ordinalDays[strings.ToLower(word)]
	}

	var day time.Time
	switch {
	case mc.group("year") != "":
		day, ok = makeDate(mc.groupInt("year"), month, dayNum, mc.ref.Location())
	case mc.group("yr2") != "":
		day, ok = makeDate(expandTwoDigitYear(mc.groupInt("yr2"), mc.ref), month, dayNum, mc.ref.Location())
	default:
		day, ok = nearestYear(month, dayNum, mc.ref)
	}
	if !ok {
		return resolution{}, false
	}
	return withClockTail(mc, day)
}

func resolveTimeRange(mc *matchContext) (resolution, bool) {
	start, end, ok := resolveClockRange(dateOnly(mc.ref), mc.group("from"), mc.group("to"))
	if !ok {
		return resolution{}, false
	}
	return resolution{start: start, end: end, hasEnd: true, hasTime: true}, true
}

func resolveTimeOfDay(mc *matchContext) (resolution, bool) {
	raw := mc.group("from")
	if raw == "" {
		raw = mc.group("from2")
	}
	c, ok := parseClock(raw)
	if !ok {
		return resolution{}, false
	}
	return resolution{start: c.onDay(mc.ref), hasTime: true}, true
}

// withClockTail finishes a date resolution, folding in the optional
// clock time or clock range that trailed the date expression.
func withClockTail(mc *matchContext, day time.Time) (resolution, bool) {
	fromStr := mc.group("from")
	if fromStr == "" {
		return resolution{start: day, hasDate: true}, true
	}
	toStr := mc.group("to")
	if toStr == "" {
		c, ok := parseClock(fromStr)
		if !ok {
			return resolution{}, false
		}
		return resolution{start: c.onDay(day), hasDate: true, hasTime: true}, true
	}
	start, end, ok := resolveClockRange(day, fromStr, toStr)
	if !ok {
		return resolution{}, false
	}
	return resolution{start: start, end: end, hasEnd: true, hasDate: true, hasTime: true}, true
}
