package logfile

import (
	"errors"
	"fmt"
)

var (
	// ErrAlternation reports an append that would break the strict
	// start/stop alternation of the log.
	ErrAlternation = errors.New("start/stop alternation violated")

	// ErrNonMonotonic reports an append whose timestamp precedes the last
	// event already in the log.
	ErrNonMonotonic = errors.New("timestamp precedes end of log")

	// ErrUnreadable reports a log file that exists but contains a line
	// that cannot be decoded. The log is never partially recovered.
	ErrUnreadable = errors.New("work log is unreadable")
)

// LogError wraps a store failure with its error class so callers can match
// with errors.Is while still seeing the detail.
type LogError struct {
	Kind error
	Msg  string
}

func (e *LogError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *LogError) Unwrap() error { return e.Kind }

func errorf(kind error, format string, args ...any) error {
	return &LogError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
