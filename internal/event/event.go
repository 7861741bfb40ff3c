// Package event defines the start/stop records of the work log and their
// on-disk line encoding.
package event

import (
	"fmt"
	"strings"
	"time"
)

// Kind discriminates the two record types of the log.
type Kind string

const (
	Start Kind = "start"
	Stop  Kind = "stop"
)

// Timestamps are encoded with seconds precision and a numeric local offset so
// that lines written from the same zone sort lexicographically.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// Event is a single record in the log. Project and Description are only
// meaningful on start events; a stop event belongs to the start that precedes
// it.
type Event struct {
	Timestamp   time.Time
	Kind        Kind
	Project     string
	Description string
}

// NewStart builds a validated start event. The project name becomes a single
// token on the log line, so it must be non-empty and free of whitespace; the
// description shares the line, so it must not contain line breaks.
func NewStart(ts time.Time, project, description string) (Event, error) {
	if project == "" {
		return Event{}, fmt.Errorf("project name must not be empty")
	}
	if strings.ContainsAny(project, " \t\n") {
		return Event{}, fmt.Errorf("project name %q must not contain whitespace", project)
	}
	if strings.ContainsAny(description, "\n\r") {
		return Event{}, fmt.Errorf("description must not contain line breaks")
	}
	return Event{
		Timestamp:   ts.Truncate(time.Second),
		Kind:        Start,
		Project:     project,
		Description: strings.TrimSpace(description),
	}, nil
}

// NewStop builds a stop event. Stops carry no project of their own.
func NewStop(ts time.Time) Event {
	return Event{Timestamp: ts.Truncate(time.Second), Kind: Stop}
}

// Line renders the event as a single log line, without trailing newline.
//
//	2024-01-02T15:04:05+00:00 start myproject optional description
//	2024-01-02T16:00:00+00:00 stop
func (e Event) Line() string {
	ts := e.Timestamp.Format(TimestampLayout)
	if e.Kind == Stop {
		return ts + " " + string(Stop)
	}
	if e.Description == "" {
		return ts + " " + string(Start) + " " + e.Project
	}
	return ts + " " + string(Start) + " " + e.Project + " " + e.Description
}

// ParseLine decodes a single log line back into an Event.
func ParseLine(line string) (Event, error) {
	fields := strings.SplitN(line, " ", 4)
	if len(fields) < 2 {
		return Event{}, fmt.Errorf("malformed log line %q", line)
	}

	ts, err := time.Parse(TimestampLayout, fields[0])
	if err != nil {
		return Event{}, fmt.Errorf("bad timestamp in log line %q: %w", line, err)
	}

	switch Kind(fields[1]) {
	case Stop:
		if len(fields) > 2 {
			return Event{}, fmt.Errorf("stop line %q carries extra fields", line)
		}
		return NewStop(ts), nil
	case Start:
		if len(fields) < 3 || fields[2] == "" {
			return Event{}, fmt.Errorf("start line %q is missing a project", line)
		}
		description := ""
		if len(fields) == 4 {
			description = fields[3]
		}
		return NewStart(ts, fields[2], description)
	default:
		return Event{}, fmt.Errorf("unknown event kind %q in log line %q", fields[1], line)
	}
}
