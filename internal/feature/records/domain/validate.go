package domain

import (
	"fmt"
	"net/mail"
	"strings"

	"record_backend/internal/feature/records/domain/entity"
)

// Field constraints for a persistable record.
const (
	MaxNameLength  = 100
	MaxEmailLength = 150
	MaxPhoneLength = 20
	MinAge         = 0
	MaxAge         = 150
)

// ValidateRecord checks every field constraint on the candidate record and
// returns a *ValidationError listing all violations, or nil when the record
// is persist-ready. Rules are evaluated independently rather than
// short-circuiting on the first failure.
func ValidateRecord(r *entity.Record) error {
	verr := &ValidationError{}

	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		verr.Add("name", "is required")
	case len(r.Name) > MaxNameLength:
		verr.Add("name", fmt.Sprintf("must be at most %d characters", MaxNameLength))
	}

	switch {
	case strings.TrimSpace(r.Email) == "":
		verr.Add("email", "is required")
	case len(r.Email) > MaxEmailLength:
		verr.Add("email", fmt.Sprintf("must be at most %d characters", MaxEmailLength))
	case !isEmailAddress(r.Email):
		verr.Add("email", "must be a valid email address")
	}

	if r.Age < MinAge || r.Age > MaxAge {
		verr.Add("age", fmt.Sprintf("must be between %d and %d", MinAge, MaxAge))
	}

	if len(r.Phone) > MaxPhoneLength {
		verr.Add("phone", fmt.Sprintf("must be at most %d characters", MaxPhoneLength))
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// isEmailAddress reports whether s is a bare, well-formed email address.
// Display-name forms such as "Ana <ana@example.com>" are rejected.
func isEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
