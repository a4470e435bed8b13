package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrNormalization means a raw record lacked mandatory word text.
	// Fatal to that single record; never aborts a batch.
	ErrNormalization = errors.New("normalization error")

	// ErrConflict means a lost insert race could not be resolved by the
	// merge fallback. The record was not persisted.
	ErrConflict = errors.New("duplicate conflict")

	// ErrStoreUnavailable marks store-connectivity failures. Read paths
	// degrade to empty results on it; write paths surface it.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrEnrichmentNoChange means enrichment was requested but neither
	// tier produced a change.
	ErrEnrichmentNoChange = errors.New("enrichment produced no change")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
