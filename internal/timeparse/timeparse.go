// Package timeparse resolves the time expressions accepted on the command
// line: absolute timestamps, clock times, relative offsets, and the named
// intervals used for querying.
//
// Every resolver is anchored at an explicit "now" so results are reproducible
// in tests and consistent within one invocation.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Direction controls how ambiguous expressions are resolved. A bare clock
// time like "14:00" means today at that time, unless that is still in the
// future and we are searching backward, in which case it means yesterday.
// Searching forward mirrors this into tomorrow.
type Direction int

const (
	Backward Direction = iota
	Forward
)

// Clock and offset forms. The regexps validate ranges (hours 0-23, minutes
// 0-59, days 1-31, months 1-12) so the numeric parses below cannot fail.
var (
	atHour       = regexp.MustCompile(`^(0?\d|1\d|2[0-3])$`)
	atClock      = regexp.MustCompile(`^(0?\d|1\d|2[0-3]):(0?\d|[1-5]?\d)$`)
	atDayClock   = regexp.MustCompile(`^(0?[1-9]|[1-2]\d|3[01])\s+(0?\d|1\d|2[0-3]):(0?\d|[1-5]?\d)$`)
	atDayMonth   = regexp.MustCompile(`^(0?[1-9]|[1-2]\d|3[01])-(0?[1-9]|1[0-2])\s+(0?\d|1\d|2[0-3]):(0?\d|[1-5]?\d)$`)
	hoursOffset  = regexp.MustCompile(`^(0?[1-9]|1\d|2[0-3])h$`)
	minsOffset   = regexp.MustCompile(`^(0?[1-9]|[1-5]\d)m$`)
	clockOffset  = regexp.MustCompile(`^(0?\d|1\d|2[0-3]):(0?\d|[1-5]?\d)h$`)
	durationExpr = regexp.MustCompile(`^(\d+)\s*([a-z]+)$`)
)

// Absolute timestamp layouts, tried in order.
var absoluteLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant resolves a time expression to an absolute instant anchored at
// now. Accepted forms:
//
//	today, yesterday            midnight of that day
//	yesterday 14:00, today 9    day keyword plus clock time
//	9, 14:30                    clock time on the nearest matching day
//	28 9:30, 28-2 9:30          day (and month) plus clock time
//	2h, 45m, 1:30h              offset from now
//	3 hours ago                 offset backward from now
//	in 3 hours, 3 hours         offset per search direction
//	2024-01-02 15:04            absolute date and/or time
//
// Unrecognized input fails with ErrUnparseableTime.
func ParseInstant(text string, now time.Time, dir Direction) (time.Time, error) {
	text = strings.TrimSpace(text)

	switch {
	case text == "today":
		return midnight(now), nil
	case text == "yesterday":
		return midnight(now).AddDate(0, 0, -1), nil

	case atHour.MatchString(text):
		hour, _ := strconv.Atoi(text)
		return ambiguousDay(hour, 0, now, dir), nil

	case atClock.MatchString(text):
		hour, min := splitClock(text)
		return ambiguousDay(hour, min, now, dir), nil

	case atDayClock.MatchString(text):
		fields := strings.Fields(text)
		day, _ := strconv.Atoi(fields[0])
		hour, min := splitClock(fields[1])
		date, ok := ambiguousMonth(day, now, dir)
		if !ok {
			return time.Time{}, parseErrorf(ErrUnparseableTime, "no day %d in the resolved month", day)
		}
		if date.Equal(midnight(now)) {
			return ambiguousDay(hour, min, now, dir), nil
		}
		return date.Add(clockDuration(hour, min)), nil

	case atDayMonth.MatchString(text):
		fields := strings.Fields(text)
		dm := strings.SplitN(fields[0], "-", 2)
		day, _ := strconv.Atoi(dm[0])
		month, _ := strconv.Atoi(dm[1])
		hour, min := splitClock(fields[1])
		date, ok := ambiguousYear(day, time.Month(month), now, dir)
		if !ok {
			return time.Time{}, parseErrorf(ErrUnparseableTime, "no day %d in %s of the resolved year", day, time.Month(month))
		}
		if date.Equal(midnight(now)) {
			return ambiguousDay(hour, min, now, dir), nil
		}
		return date.Add(clockDuration(hour, min)), nil

	case hoursOffset.MatchString(text):
		hours, _ := strconv.Atoi(strings.TrimSuffix(text, "h"))
		return offset(now, time.Duration(hours)*time.Hour, dir), nil

	case minsOffset.MatchString(text):
		mins, _ := strconv.Atoi(strings.TrimSuffix(text, "m"))
		return offset(now, time.Duration(mins)*time.Minute, dir), nil

	case clockOffset.MatchString(text):
		hour, min := splitClock(strings.TrimSuffix(text, "h"))
		return offset(now, clockDuration(hour, min), dir), nil
	}

	if t, ok := parseWordForm(text, now, dir); ok {
		return t, nil
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, parseErrorf(ErrUnparseableTime, "invalid time specifier %q", text)
}

// parseWordForm handles the multi-word expressions: "N unit ago", "in N
// unit", "N unit", and "today|yesterday <clock>".
func parseWordForm(text string, now time.Time, dir Direction) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return time.Time{}, false
	}

	if fields[0] == "today" || fields[0] == "yesterday" {
		clock := strings.Join(fields[1:], " ")
		var hour, min int
		switch {
		case atHour.MatchString(clock):
			hour, _ = strconv.Atoi(clock)
		case atClock.MatchString(clock):
			hour, min = splitClock(clock)
		default:
			return time.Time{}, false
		}
		day := midnight(now)
		if fields[0] == "yesterday" {
			day = day.AddDate(0, 0, -1)
		}
		return day.Add(clockDuration(hour, min)), true
	}

	if fields[len(fields)-1] == "ago" {
		d, err := ParseDuration(strings.Join(fields[:len(fields)-1], " "))
		if err != nil {
			return time.Time{}, false
		}
		return now.Add(-d), true
	}

	rest := fields
	explicitForward := false
	if fields[0] == "in" {
		rest = fields[1:]
		explicitForward = true
	}
	d, err := ParseDuration(strings.Join(rest, " "))
	if err != nil {
		return time.Time{}, false
	}
	if explicitForward {
		return now.Add(d), true
	}
	return offset(now, d, dir), true
}

// ParseDuration parses a quantity+unit duration such as "90 seconds",
// "15 minutes", "2 hours" or "1 day". The quantity must be positive.
func ParseDuration(text string) (time.Duration, error) {
	m := durationExpr.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if m == nil {
		return 0, parseErrorf(ErrUnparseableDuration, "invalid duration %q", text)
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil || qty <= 0 {
		return 0, parseErrorf(ErrUnparseableDuration, "duration quantity must be positive in %q", text)
	}

	var unit time.Duration
	switch m[2] {
	case "s", "sec", "secs", "second", "seconds":
		unit = time.Second
	case "m", "min", "mins", "minute", "minutes":
		unit = time.Minute
	case "h", "hr", "hrs", "hour", "hours":
		unit = time.Hour
	case "d", "day", "days":
		unit = 24 * time.Hour
	default:
		return 0, parseErrorf(ErrUnparseableDuration, "unknown unit %q in %q", m[2], text)
	}
	return time.Duration(qty) * unit, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func splitClock(clock string) (hour, min int) {
	parts := strings.SplitN(clock, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	min, _ = strconv.Atoi(parts[1])
	return hour, min
}

func clockDuration(hour, min int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute
}

func offset(now time.Time, d time.Duration, dir Direction) time.Time {
	if dir == Forward {
		return now.Add(d)
	}
	return now.Add(-d)
}

// ambiguousDay places a clock time on the nearest day that respects the
// search direction: a still-future time searched backward lands yesterday, a
// past (or current) time searched forward lands tomorrow.
func ambiguousDay(hour, min int, now time.Time, dir Direction) time.Time {
	candidate := midnight(now).Add(clockDuration(hour, min))
	switch dir {
	case Backward:
		if candidate.After(now) {
			return candidate.AddDate(0, 0, -1)
		}
	case Forward:
		if !candidate.After(now) {
			return candidate.AddDate(0, 0, 1)
		}
	}
	return candidate
}

// ambiguousMonth places a day-of-month on the nearest month per the search
// direction. The returned time is midnight of the chosen date; ok is false
// when the chosen month has no such day (time.Date would silently normalize
// Feb 31 into March).
func ambiguousMonth(day int, now time.Time, dir Direction) (time.Time, bool) {
	year, month := now.Year(), now.Month()
	switch dir {
	case Backward:
		if day > now.Day() {
			month--
		}
	case Forward:
		if day < now.Day() {
			month++
		}
	}
	if month < time.January {
		month, year = time.December, year-1
	}
	if month > time.December {
		month, year = time.January, year+1
	}
	if day > daysIn(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
}

// ambiguousYear places a day and month on the nearest year per the search
// direction, with the same nonexistent-day check as ambiguousMonth.
func ambiguousYear(day int, month time.Month, now time.Time, dir Direction) (time.Time, bool) {
	year := now.Year()
	switch dir {
	case Backward:
		if month > now.Month() || (month == now.Month() && day > now.Day()) {
			year--
		}
	case Forward:
		if month < now.Month() || (month == now.Month() && day < now.Day()) {
			year++
		}
	}
	if day > daysIn(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
}

// daysIn returns the number of days in the given month. Day zero of the
// following month is the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
