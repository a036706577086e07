// Package errors holds the errors slability shows to people and scripts.
// Each one carries a code (the JSON "error.code" field), a one-line message,
// the underlying cause if any, and what to try next.
package errors

import (
	"errors"
	"strings"
)

const (
	// ErrConfig covers bad flags, files, addresses and failed resolution.
	ErrConfig = "CONFIG"
	// ErrProbe means at least one endpoint was offline in a one-shot check.
	ErrProbe = "PROBE"
	// ErrTerminal means the dashboard could not take over the terminal.
	ErrTerminal = "TERMINAL"
	// ErrExec is for local I/O failures such as writing output or log files.
	ErrExec = "EXEC"
)

// Error is a coded error with an optional cause and suggestion. Printed, it
// reads:
//
//	✗ Can't resolve 'db.internal:5432'
//	  lookup db.internal: no such host
//	  → Check the hostname is spelled right and DNS is reachable
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New returns an Error with no cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// WrapWithCode returns an Error caused by err.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

func (e *Error) Error() string {
	lines := []string{"✗ " + e.Message}
	if e.Cause != nil {
		lines = append(lines, "  "+e.Cause.Error())
	}
	if e.Suggestion != "" {
		lines = append(lines, "  → "+e.Suggestion)
	}
	return strings.Join(lines, "\n")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// IsCode reports whether err's chain holds an *Error with the given code.
func IsCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
