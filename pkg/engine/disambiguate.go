package engine

import "time"

// swapMonthDay applies the month/day swap heuristic to a nominal
// (month, day) pair. When the nominal month exceeds 12 the roles are
// swapped, provided the nominal day can serve as a month and the
// nominal month can serve as a day. Both components must independently
// validate afterwards or the pair is rejected.
func swapMonthDay(month, day int) (int, int, bool) {
	if month > 12 {
		if day > 12 || month > 31 {
			return 0, 0, false
		}
		month, day = day, month
	}
	if month < 1 || day < 1 || day > 31 {
		return 0, 0, false
	}
	return month, day, true
}

// expandTwoDigitYear maps a year below 100 to whichever of the current
// or previous century is numerically closest to the reference year.
// Ties resolve toward the current century.
func expandTwoDigitYear(year int, ref time.Time) int {
	if year >= 100 {
		return year
	}
	cur := ref.Year()
	base := cur - cur%100
	current := base + year
	previous := base - 100 + year
	if absInt(cur-previous) < absInt(cur-current) {
		return previous
	}
	return current
}

// nearestYear completes a year-less month/day pair by trying the
// reference year and its neighbors, keeping the candidate closest in
// time to the reference instant. Ties resolve toward the current year,
// then forward. Returns false when the pair names no real calendar day
// in any of the three years (e.g. Feb 30).
func nearestYear(month time.Month, day int, ref time.Time) (time.Time, bool) {
	var best time.Time
	var bestDiff time.Duration
	found := false
	for _, offset := range []int{0, 1, -1} {
		t, ok := makeDate(ref.Year()+offset, month, day, ref.Location())
		if !ok {
			continue
		}
		diff := t.Sub(ref)
		if diff < 0 {
			diff = -diff
		}
		if !found || diff < bestDiff {
			best, bestDiff, found = t, diff, true
		}
	}
	return best, found
}

// nextWeekday returns the next occurrence of the target weekday on or
// after the reference date. A bare weekday reference is satisfied by
// today itself.
func nextWeekday(ref time.Time, target time.Weekday) time.Time {
	offset := (int(target) - int(ref.Weekday()) + 7) % 7
	return dateOnly(ref).AddDate(0, 0, offset)
}

// makeDate builds a midnight instant and verifies the components named
// a real calendar day. time.Date normalizes overflow (Feb 30 becomes
// Mar 1), which here signals an internally inconsistent date.
func makeDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// dateOnly truncates an instant to midnight in its location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
