package crontab

import (
	"errors"
	"fmt"
	"time"
)

// ErrBoundsExceeded is reported (wrapped in a *NoMatchError) when the ceiling
// search used up its step budget before reaching the horizon.
var ErrBoundsExceeded = errors.New("crontab: search step limit exceeded")

// ParseError describes malformed expression text.
type ParseError struct {
	// FieldIndex is the zero-based field the error was found in, or -1 when
	// the expression as a whole is wrong (field count, unknown macro).
	FieldIndex int
	Reason     string
	Text       string
}

func (e *ParseError) Error() string {
	if e.FieldIndex < 0 || e.FieldIndex >= len(fieldSpecs) {
		return fmt.Sprintf("crontab: %q: %s", e.Text, e.Reason)
	}
	return fmt.Sprintf("crontab: %q: %s field: %s", e.Text, fieldSpecs[e.FieldIndex].name, e.Reason)
}

// NoMatchError is returned by Ceiling when no matching minute exists within
// the search horizon.
type NoMatchError struct {
	Source string
	From   time.Time
	Err    error
}

func (e *NoMatchError) Error() string {
	msg := fmt.Sprintf("crontab: %q never matches after %s", e.Source, e.From.Format(time.RFC3339))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NoMatchError) Unwrap() error { return e.Err }

// IsNoMatch reports whether err is (or wraps) a *NoMatchError.
func IsNoMatch(err error) bool {
	var nm *NoMatchError
	return errors.As(err, &nm)
}
