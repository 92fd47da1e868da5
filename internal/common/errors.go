// Package common defines sentinel errors and small shared types used by the
// server and the client. Callers match errors with errors.Is / errors.As.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("user already exists")

	// Service-level errors.
	ErrInternal           = errors.New("internal error")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidCredentials = errors.New("incorrect password or email")

	// Input validation. Concrete failures are *ValidationError values.
	ErrValidation = errors.New("validation error")
)

// ValidationError describes a single rejected input field. Message is safe to
// show to the end user as is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
