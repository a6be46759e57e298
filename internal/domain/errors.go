package domain

import "errors"

// Error taxonomy. Every recoverable failure in the storefront wraps one of
// these sentinels so handlers can map it to a response status.
var (
	// ErrValidation marks malformed user input: an empty required field or a
	// field failing its pattern.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate marks an address colliding with a saved one.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrNotFound marks a lookup with no matching record.
	ErrNotFound = errors.New("not found")

	// ErrMismatch marks a login attempt against a different registered email.
	ErrMismatch = errors.New("credentials mismatch")

	// ErrFetch marks an unreachable or malformed product catalog response.
	ErrFetch = errors.New("catalog fetch failed")
)
