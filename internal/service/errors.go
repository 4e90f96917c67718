// Package service provides application-level services for managing folders
// and flashcards on behalf of an authenticated owner.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions that callers check with errors.Is();
// the API layer maps them onto HTTP status codes in internal/api/errors.go.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
var (
	// ErrInvalidSortParameters indicates a sort column or order outside the
	// allowed set. API layer should map this to HTTP 400 Bad Request.
	ErrInvalidSortParameters = errors.New("invalid sort parameters")

	// ErrBulkSaveSize indicates a bulk save with zero items or more than
	// MaxBulkSaveSize items. API layer should map this to HTTP 400.
	ErrBulkSaveSize = errors.New("bulk save accepts between 1 and 50 flashcards")
)

// errorIsAny reports whether err matches any of the given targets.
func errorIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// FolderServiceError is a custom error type for folder service errors.
type FolderServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for FolderServiceError.
func (e *FolderServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("folder service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("folder service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *FolderServiceError) Unwrap() error {
	return e.Err
}

// NewFolderServiceError creates a new FolderServiceError.
func NewFolderServiceError(operation, message string, err error) *FolderServiceError {
	return &FolderServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// FlashcardServiceError is a custom error type for flashcard service errors.
type FlashcardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for FlashcardServiceError.
func (e *FlashcardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flashcard service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("flashcard service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *FlashcardServiceError) Unwrap() error {
	return e.Err
}

// NewFlashcardServiceError creates a new FlashcardServiceError.
func NewFlashcardServiceError(operation, message string, err error) *FlashcardServiceError {
	return &FlashcardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
