package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)

// ValidationError describes a validation failure on a specific field.
// It wraps ErrValidation (or a more specific sentinel) so callers can
// match with errors.Is while still seeing the offending field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
// If wrapped is nil, the error wraps ErrValidation.
func NewValidationError(field, message string, wrapped error) *ValidationError {
	if wrapped == nil {
		wrapped = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     wrapped,
	}
}
