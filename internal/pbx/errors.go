package pbx

import (
	"errors"
	"fmt"
)

// Sentinel errors for pbxproj parsing and mutation.
var (
	// ErrMalformedSource indicates the brace structure of the source text is
	// broken (closing braces outran opening ones). Parsing aborts and no
	// model is produced.
	ErrMalformedSource = errors.New("pbx: malformed source")

	// ErrAnchorNotFound indicates a list anchor keyword is absent from the
	// addressed block.
	ErrAnchorNotFound = errors.New("pbx: list anchor not found")

	// ErrUnknownSection indicates a section name outside the fixed schema.
	ErrUnknownSection = errors.New("pbx: unknown section")
)

// ParseError carries the position where parsing failed.
type ParseError struct {
	Line    int
	Section Section
	Wrapped error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: line %d (section %s)", e.Wrapped, e.Line, e.Section)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Wrapped
}
