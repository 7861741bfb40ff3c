package timeparse

import (
	"strings"
	"time"
)

// Interval is a half-open time range [Start, End). Every Interval produced by
// this package satisfies Start <= End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval orders the two bounds. Inverted bounds are swapped rather than
// rejected, so "18:00 - 9:00" queries work no matter which side the user put
// first.
func NewInterval(a, b time.Time) Interval {
	if a.After(b) {
		return Interval{Start: b, End: a}
	}
	return Interval{Start: a, End: b}
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Contains reports whether t lies within the half-open range.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// ResolveInterval maps a query expression to an Interval anchored at now.
//
// Keywords resolve to canonical calendar boundaries:
//
//	today      midnight to the following midnight
//	yesterday  the previous calendar day
//	week       the calendar week containing now (Monday through Monday)
//	month      the calendar month containing now
//
// An explicit "A - B" range resolves both sides with ParseInstant, and a
// single instant X means [X, now). Anything else fails with
// ErrUnknownInterval.
func ResolveInterval(text string, now time.Time) (Interval, error) {
	text = strings.TrimSpace(text)
	today := midnight(now)

	switch text {
	case "today":
		return Interval{Start: today, End: today.AddDate(0, 0, 1)}, nil
	case "yesterday":
		return Interval{Start: today.AddDate(0, 0, -1), End: today}, nil
	case "week":
		monday := today.AddDate(0, 0, -mondayOffset(now))
		return Interval{Start: monday, End: monday.AddDate(0, 0, 7)}, nil
	case "month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Interval{Start: first, End: first.AddDate(0, 1, 0)}, nil
	}

	if sides := strings.SplitN(text, " - ", 2); len(sides) == 2 {
		start, err := ParseInstant(sides[0], now, Backward)
		if err != nil {
			return Interval{}, parseErrorf(ErrUnknownInterval, "bad range start: %v", err)
		}
		end, err := ParseInstant(sides[1], now, Backward)
		if err != nil {
			return Interval{}, parseErrorf(ErrUnknownInterval, "bad range end: %v", err)
		}
		return NewInterval(start, end), nil
	}

	start, err := ParseInstant(text, now, Backward)
	if err != nil {
		return Interval{}, parseErrorf(ErrUnknownInterval, "%q is neither a keyword nor a time", text)
	}
	return NewInterval(start, now), nil
}

// mondayOffset returns how many days now is past the most recent Monday.
func mondayOffset(now time.Time) int {
	wd := int(now.Weekday())
	if wd == 0 { // Sunday
		wd = 7
	}
	return wd - 1
}
