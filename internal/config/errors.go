package config

import "errors"

// Sentinel errors for descriptor loading and validation. Both fire before
// any output file is touched.
var (
	// ErrConfigNotFound indicates the project descriptor file does not exist.
	ErrConfigNotFound = errors.New("config: descriptor not found")

	// ErrInvalidConfig indicates the descriptor was parsed but one of its
	// fields violates the descriptor contract.
	ErrInvalidConfig = errors.New("config: invalid descriptor")
)
