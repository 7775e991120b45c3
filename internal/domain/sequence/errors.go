package sequence

import (
	"errors"
	"fmt"
)

// Kind classifies an analysis failure.
type Kind string

// Failure kinds reported by the analyzer.
const (
	KindInvalidInput      Kind = "InvalidInput"
	KindNoPatternDetected Kind = "NoPatternDetected"
	KindInternal          Kind = "Internal"
)

// Sentinel kinds for analysis errors. Match with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoPatternDetected = errors.New("no pattern detected")
	ErrInternal          = errors.New("internal error")
)

// Error is a typed analysis failure carrying a human-readable reason.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidInput:
		return target == ErrInvalidInput
	case KindNoPatternDetected:
		return target == ErrNoPatternDetected
	case KindInternal:
		return target == ErrInternal
	}
	return false
}

func invalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Reason: fmt.Sprintf(format, args...)}
}

func noPattern(reason string) *Error {
	return &Error{Kind: KindNoPatternDetected, Reason: reason}
}

// Internal wraps an unexpected fault. The cause is kept out of the message so
// callers can surface it without leaking internals.
func Internal() *Error {
	return &Error{Kind: KindInternal, Reason: "Internal server error"}
}

// KindOf returns the failure kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
