// Package logfile persists events to a single append-only text file and
// enforces the ordering invariants of the log.
package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"worklog/internal/event"
)

// LogFile is the append-only store backing the work log. Append is the only
// mutator; reads always go back to the file so the store never serves stale
// state across processes.
type LogFile struct {
	path string
	f    *os.File
}

// Open creates the log file (and its parent directory) if needed and opens it
// for appending. Callers own the handle and should Close it on all exit paths.
func Open(path string) (*LogFile, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open work log: %w", err)
	}
	return &LogFile{path: path, f: f}, nil
}

// Close releases the underlying file handle.
func (l *LogFile) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// ReadAll decodes the full ordered event sequence. A line that cannot be
// decoded fails the whole read with ErrUnreadable; skipping bad lines would
// silently drop recorded time.
func (l *LogFile) ReadAll() ([]event.Event, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errorf(ErrUnreadable, "%v", err)
	}

	var events []event.Event
	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		ev, err := event.ParseLine(line)
		if err != nil {
			return nil, errorf(ErrUnreadable, "line %d: %v", i+1, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Last returns the most recent event, with ok=false on an empty log.
func (l *LogFile) Last() (event.Event, bool, error) {
	events, err := l.ReadAll()
	if err != nil || len(events) == 0 {
		return event.Event{}, false, err
	}
	return events[len(events)-1], true, nil
}

// IsOpen reports whether the log ends in an unmatched start event.
func (l *LogFile) IsOpen() (bool, error) {
	last, ok, err := l.Last()
	if err != nil {
		return false, err
	}
	return ok && last.Kind == event.Start, nil
}

// Append validates ev against the log invariants and durably writes it. The
// line is synced to disk before Append returns; there is no observable
// partial-write state afterwards.
func (l *LogFile) Append(ev event.Event) error {
	last, ok, err := l.Last()
	if err != nil {
		return err
	}

	if !ok {
		if ev.Kind == event.Stop {
			return errorf(ErrAlternation, "cannot stop: the log is empty")
		}
	} else {
		if ev.Kind == last.Kind {
			return errorf(ErrAlternation, "last event is already a %s", last.Kind)
		}
		if ev.Timestamp.Before(last.Timestamp) {
			return errorf(ErrNonMonotonic, "%s is before the last event at %s",
				ev.Timestamp.Format(event.TimestampLayout),
				last.Timestamp.Format(event.TimestampLayout))
		}
	}

	if _, err := l.f.WriteString(ev.Line() + "\n"); err != nil {
		return fmt.Errorf("append to work log: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("sync work log: %w", err)
	}
	return nil
}
