package dto

import (
	"time"

	"record_backend/internal/feature/records/domain/entity"
)

// RecordItem is the JSON representation of a single record.
type RecordItem struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Age       int        `json:"age"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	IsActive  bool       `json:"isActive"`
}

// FromRecord converts a domain record to its response representation.
func FromRecord(rec *entity.Record) RecordItem {
	return RecordItem{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Age:       rec.Age,
		Phone:     rec.Phone,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		IsActive:  rec.IsActive,
	}
}

// FromRecords converts a slice of domain records, never returning nil so
// empty result sets serialize as [] rather than null.
func FromRecords(recs []entity.Record) []RecordItem {
	out := make([]RecordItem, 0, len(recs))
	for i := range recs {
		out = append(out, FromRecord(&recs[i]))
	}
	return out
}
