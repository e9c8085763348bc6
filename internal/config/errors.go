package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting has the wrong type or an unknown value.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrInvalidChain indicates a named chain could not be parsed.
	ErrInvalidChain = errors.New("invalid chain")
)
