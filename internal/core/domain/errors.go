// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPartNotFound is returned when a part does not exist.
	ErrPartNotFound = errors.New("part not found")
	// ErrValidation marks input that violates a Part invariant.
	ErrValidation = errors.New("validation failed")
	// ErrMalformedCSV marks a CSV payload that cannot be parsed at all.
	ErrMalformedCSV = errors.New("malformed csv")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
