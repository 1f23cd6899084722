package dto

import "record_backend/internal/feature/records/domain"

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the full list of violated field
// constraints for a rejected request.
type ValidationErrorResponse struct {
	Error      string                  `json:"error"`
	Violations []domain.FieldViolation `json:"violations"`
}

// ResetResponse confirms a completed database reset.
type ResetResponse struct {
	Message string       `json:"message"`
	Seeded  int          `json:"seeded"`
	Records []RecordItem `json:"records"`
}
