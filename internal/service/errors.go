// Package service implements MoneyMate's transport-independent business
// logic on top of the storage layer.
package service

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the service error taxonomy. Handlers map these
// to HTTP status codes; anything not matching one of them is an internal
// failure.
var (
	// ErrInvalidInput marks missing or malformed request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated marks a missing or invalid identity.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden marks an acting user lacking the required
	// relationship, e.g. a non-member posting to a room.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate state change, e.g. joining a room twice.
	ErrConflict = errors.New("conflict")
)

// invalidf wraps ErrInvalidInput with a formatted message.
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
