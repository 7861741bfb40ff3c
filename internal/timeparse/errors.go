package timeparse

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparseableTime reports a time expression that matches none of the
	// accepted forms.
	ErrUnparseableTime = errors.New("unparseable time")

	// ErrUnparseableDuration reports a duration with an unknown unit or a
	// non-positive quantity.
	ErrUnparseableDuration = errors.New("unparseable duration")

	// ErrUnknownInterval reports an interval keyword or range that cannot
	// be resolved.
	ErrUnknownInterval = errors.New("unknown interval")
)

// ParseError wraps a resolver failure with its error class.
type ParseError struct {
	Kind error
	Msg  string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Kind }

func parseErrorf(kind error, format string, args ...any) error {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
