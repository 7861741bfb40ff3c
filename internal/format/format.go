// Package format renders durations in the output formats accepted by the
// reporting commands.
package format

import (
	"fmt"
	"strconv"
	"time"
)

// TimeFormat selects how accumulated durations are printed.
type TimeFormat int

const (
	HumanReadable TimeFormat = iota
	Minutes
	MinutesApprox
	HoursApprox
)

// Approximation thresholds, in minutes: a remainder above approxHour counts
// as a whole extra hour, above approxMinutes as half an hour. Minutes are
// rounded up to multiples of approxMinutes.
const (
	approxHour    = 30
	approxMinutes = 15
)

// ParseTimeFormat recognizes the --format values and their short forms.
func ParseTimeFormat(s string) (TimeFormat, error) {
	switch s {
	case "m", "minutes":
		return Minutes, nil
	case "ma", "minutes-approx":
		return MinutesApprox, nil
	case "h", "hours":
		return HoursApprox, nil
	case "hr", "human-readable":
		return HumanReadable, nil
	}
	return 0, fmt.Errorf("invalid time format %q: valid values are m, minutes, ma, minutes-approx, h, hours, hr, human-readable", s)
}

// Duration renders d in the chosen format.
func Duration(tf TimeFormat, d time.Duration) string {
	switch tf {
	case Minutes:
		return strconv.FormatInt(int64(d.Minutes()), 10)
	case MinutesApprox:
		return strconv.FormatInt(ApproxMinutes(d), 10)
	case HoursApprox:
		return strconv.FormatFloat(ApproxHours(d), 'f', -1, 64)
	default:
		return Human(d)
	}
}

// ApproxMinutes rounds d up to the next multiple of 15 minutes. Exact
// multiples are kept as-is.
func ApproxMinutes(d time.Duration) int64 {
	mins := int64(d.Minutes())
	rem := approxMinutes - mins%approxMinutes
	if rem != approxMinutes {
		return mins + rem
	}
	return mins
}

// ApproxHours approximates d to half hours: a remainder above 30 minutes
// counts as a full extra hour, above 15 minutes as half an hour.
func ApproxHours(d time.Duration) float64 {
	hours := float64(int64(d.Hours()))
	rem := int64(d.Minutes()) - int64(d.Hours())*60
	if rem > approxHour {
		hours += 1.0
	} else if rem > approxMinutes {
		hours += 0.5
	}
	return hours
}

// Human renders d as readable text, e.g. "Less than a minute", "1 minute",
// "2 hours and 5 minutes".
func Human(d time.Duration) string {
	hours := int64(d.Hours())
	mins := int64(d.Minutes()) % 60

	switch {
	case hours == 0 && mins == 0:
		return "Less than a minute"
	case hours == 0:
		return plural(mins, "minute")
	case mins == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " and " + plural(mins, "minute")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
