// Package entity defines the domain entities for the records feature.
package entity

import "time"

// Record represents a stored user record.
// It carries contact details, lifecycle timestamps, and the soft-delete flag.
type Record struct {
	// ID is the unique identifier for the record, assigned by the store.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the record holder's display name.
	Name string `gorm:"size:100;not null" json:"name"`

	// Email is the record holder's email address.
	// It must be unique across all records, including inactive ones.
	Email string `gorm:"uniqueIndex;size:150;not null" json:"email"`

	// Age is the record holder's age in years.
	Age int `gorm:"not null" json:"age"`

	// Phone is an optional contact number.
	Phone string `gorm:"size:20" json:"phone,omitempty"`

	// CreatedAt is stamped exactly once when the record is created.
	// The lifecycle code owns this value, so GORM's auto-stamping is disabled.
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"createdAt"`

	// UpdatedAt is nil until the record's first mutation after creation.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`

	// IsActive is false once the record has been soft-deleted.
	// Soft-deleted records stay in the store but are excluded from listings.
	IsActive bool `gorm:"not null;default:true" json:"isActive"`
}
