package appcore

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidID        = errors.New("invalid ID")
	ErrEmptyField       = errors.New("required field is empty")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrUnknownField     = errors.New("unknown field")

	// Infrastructure errors
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match both ErrValidationFailed and the specific cause
func (e ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrValidationFailed, e.cause}
	}
	return []error{ErrValidationFailed}
}

// NewValidationError creates a ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// newValidationErrorWithCause creates a ValidationError carrying a specific sentinel
func newValidationErrorWithCause(field, message string, cause error) error {
	return &ValidationError{Field: field, Message: message, cause: cause}
}
