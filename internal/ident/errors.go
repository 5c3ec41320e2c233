package ident

import (
	"errors"
	"fmt"
)

// Sentinel errors for identifier generation.
var (
	// ErrExhaustedRetries indicates that a unique identifier could not be
	// derived within the retry bound. With deterministic hashing this can
	// only happen with vanishing probability, but it must abort the run
	// rather than hand out a duplicate.
	ErrExhaustedRetries = errors.New("ident: exhausted retries deriving unique identifier")

	// ErrUnknownNamespace indicates a namespace the service does not know.
	ErrUnknownNamespace = errors.New("ident: unknown namespace")
)

// DerivationError carries the namespace and seed that failed so the run
// report can point at the offending input.
type DerivationError struct {
	Namespace Namespace
	Seed      string
	Wrapped   error
}

// Error implements the error interface.
func (e *DerivationError) Error() string {
	return fmt.Sprintf("%v: namespace %q, seed %q", e.Wrapped, e.Namespace, e.Seed)
}

// Unwrap returns the underlying sentinel error.
func (e *DerivationError) Unwrap() error {
	return e.Wrapped
}
