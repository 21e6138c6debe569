package engine

import (
	"strconv"
	"strings"
	"time"
)

// clockValue is a parsed time-of-day with an optional meridiem.
type clockValue struct {
	hour     int
	minute   int
	meridiem string // "am", "pm", or "" for 24-hour form
}

// parseClock parses clock strings of the shapes "7pm", "10:30",
// "10:30am". Hours validate against the 12-hour range when a meridiem
// is present, the 24-hour range otherwise.
func parseClock(s string) (clockValue, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	var c clockValue
	for _, m := range []string{"am", "pm"} {
		if strings.HasSuffix(s, m) {
			c.meridiem = m
			s = strings.TrimSpace(strings.TrimSuffix(s, m))
			break
		}
	}

	hourPart, minutePart, hasMinute := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return clockValue{}, false
	}
	c.hour = hour
	if hasMinute {
		minute, err := strconv.Atoi(minutePart)
		if err != nil || minute > 59 {
			return clockValue{}, false
		}
		c.minute = minute
	}

	if c.meridiem != "" {
		if c.hour < 1 || c.hour > 12 {
			return clockValue{}, false
		}
	} else if c.hour > 23 {
		return clockValue{}, false
	}
	return c, true
}

// minutesOfDay converts a clock value to minutes past midnight.
func (c clockValue) minutesOfDay() int {
	h := c.hour
	switch c.meridiem {
	case "am":
		h = h % 12
	case "pm":
		h = h%12 + 12
	}
	return h*60 + c.minute
}

// onDay places the clock value on the given calendar day.
func (c clockValue) onDay(day time.Time) time.Time {
	return dateOnly(day).Add(time.Duration(c.minutesOfDay()) * time.Minute)
}

// resolveClockRange resolves a from/to pair on the given day. A bare
// "from" hour inherits the meridiem of "to" ("10 to 11am" is 10:00);
// when inheriting would invert the range the opposite meridiem is used
// ("11 to 1pm" is 11:00). An end at or before the start rolls over to
// the next day.
func resolveClockRange(day time.Time, fromStr, toStr string) (time.Time, time.Time, bool) {
	from, ok := parseClock(fromStr)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := parseClock(toStr)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	if from.meridiem == "" && to.meridiem != "" {
		from.meridiem = to.meridiem
		if from.minutesOfDay() >= to.minutesOfDay() {
			if to.meridiem == "am" {
				from.meridiem = "pm"
			} else {
				from.meridiem = "am"
			}
		}
	}

	start := from.onDay(day)
	end := to.onDay(day)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}
