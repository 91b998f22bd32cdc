// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Entity-specific violations wrap this error.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// FieldViolation describes a single failed constraint on an entity field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the structured list of violations produced when an
// entity fails validation before persistence. It unwraps to ErrValidation
// so callers can classify it with errors.Is.
type ValidationErrors []FieldViolation

// Error implements the error interface for ValidationErrors.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(v))
	for _, f := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap supports errors.Is(err, ErrValidation).
func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// violations accumulates field constraint failures during Validate calls.
type violations struct {
	list ValidationErrors
}

func (v *violations) add(field, message string) {
	v.list = append(v.list, FieldViolation{Field: field, Message: message})
}

// err returns the accumulated violations as an error, or nil if none.
func (v *violations) err() error {
	if len(v.list) == 0 {
		return nil
	}
	return v.list
}
