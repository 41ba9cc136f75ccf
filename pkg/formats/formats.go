// Package formats provides parsers for the Wavefront OBJ and MTL text formats.
package formats

import (
	"errors"
	"fmt"
)

// Parse error kinds. Every failure returned by this package wraps one of
// them, so callers can branch with errors.Is.
var (
	ErrIO                = errors.New("io error")
	ErrMalformedNumber   = errors.New("malformed number")
	ErrUnsupportedArity  = errors.New("unsupported arity")
	ErrDanglingReference = errors.New("dangling reference")
	ErrMissingContext    = errors.New("missing current context")
)

// ParseError locates a parse failure in the source text.
// Line is 1-based; it is 0 when the failure is not tied to a line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v (%q)", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func lineError(line int, text string, err error) error {
	return &ParseError{Line: line, Text: text, Err: err}
}
