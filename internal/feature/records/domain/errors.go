// Package domain defines domain-level errors for the records feature.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for record operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrRecordNotFound indicates that no active record matches the given id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrEmailTaken indicates that another record already holds the given email.
	// This is a conflict, distinct from a validation failure.
	ErrEmailTaken = errors.New("email already in use")
)

// FieldViolation describes a single violated field constraint.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field constraint for a candidate
// record. Rules are evaluated independently, so a single error can report
// violations on several fields at once.
type ValidationError struct {
	Violations []FieldViolation `json:"violations"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records one more violated constraint.
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// HasViolations reports whether any constraint was violated.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}
