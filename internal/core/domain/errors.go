package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid operator input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown report format or adapter type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Input Errors.

	// ErrInvalidArchive indicates a KMZ file could not be opened as a zip archive.
	ErrInvalidArchive = errors.New("invalid KMZ archive")

	// ErrNoKML indicates a KMZ archive holds no .kml document.
	ErrNoKML = errors.New("no KML document found in KMZ")

	// ErrInvalidKML indicates the KML text could not be parsed as XML.
	ErrInvalidKML = errors.New("invalid KML document")

	// Output Errors.

	// ErrPublishUnavailable indicates publishing was requested but no publisher is configured.
	ErrPublishUnavailable = errors.New("publisher unavailable")
)

// ValidationError reports a single operator input problem.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
