package literal

import (
	"errors"
	"fmt"

	"github.com/npillmayer/mdrange"
)

// ErrStructure is the class of all errors about the structure of a literal.
// Every *ParseError matches it with errors.Is.
var ErrStructure = errors.New("malformed range literal")

// Kinds of structural errors.
var (
	ErrExpectedOpen        = errors.New("expected opening delimiter")
	ErrDimensions          = errors.New("nesting does not match dimensions")
	ErrTooFewElements      = errors.New("too few elements")
	ErrUnexpectedSeparator = errors.New("unexpected separator")
	ErrLeafValue           = errors.New("cannot parse value")
	ErrDelimiterMismatch   = errors.New("delimiter mismatch")
	ErrSiblingCount        = errors.New("number of elements does not match axis length")
	ErrUnexpectedEOF       = errors.New("unexpected end of input")
	ErrUnexpectedSymbol    = errors.New("unexpected symbol")
)

// ErrReentrant is returned when a parser is invoked while it is running.
var ErrReentrant = errors.New("parser is already running")

// ParseError is a structural error of a literal. Kind is one of the
// ErrXXX kinds of this package, Span the input position of the offending
// symbols.
type ParseError struct {
	Kind error
	Span mdrange.Span
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v at %v", e.Kind, e.Span)
	}
	return fmt.Sprintf("%v at %v: %s", e.Kind, e.Span, e.Msg)
}

// Unwrap returns the kind of the error.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Is matches ErrStructure.
func (e *ParseError) Is(target error) bool {
	return target == ErrStructure
}

// isShapeMismatch is true for errors the shape-inferring parser recovers from.
func isShapeMismatch(err error) bool {
	return errors.Is(err, ErrSiblingCount) || errors.Is(err, ErrDimensions)
}
