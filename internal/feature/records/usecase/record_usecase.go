// Package usecase implements the business logic for record operations:
// validation, the active/inactive lifecycle, and event fan-out after
// committed mutations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"record_backend/internal/feature/events/hub"
	"record_backend/internal/feature/records/domain"
	"record_backend/internal/feature/records/domain/entity"
)

// Listing defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
	MinSearchTermLen   = 2
)

// ErrSearchTermTooShort indicates a search term below the minimum length.
var ErrSearchTermTooShort = fmt.Errorf("search term must be at least %d characters", MinSearchTermLen)

// ListParams selects a page of active records, optionally filtered by a
// substring match on name or email.
type ListParams struct {
	Search   string
	Page     int
	PageSize int
}

// Normalize applies defaults and clamps the paging values into range.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// RecordRepository abstracts the persistence layer for record data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RecordRepository interface {
	// Create persists a new record and assigns its id.
	// Returns domain.ErrEmailTaken when the email is already in use.
	Create(ctx context.Context, rec *entity.Record) error

	// FindActiveByID retrieves an active record by id.
	// Returns domain.ErrRecordNotFound when absent or inactive.
	FindActiveByID(ctx context.Context, id uint) (*entity.Record, error)

	// FindByEmail retrieves a record by exact email, active or not.
	// Returns domain.ErrRecordNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*entity.Record, error)

	// Update persists all fields of an existing record.
	// Returns domain.ErrEmailTaken when the email is already in use.
	Update(ctx context.Context, rec *entity.Record) error

	// List returns one page of active records plus the total count of
	// active records matching the search filter.
	List(ctx context.Context, params ListParams) ([]entity.Record, int64, error)

	// Search returns up to limit active records whose name or email
	// contains the term.
	Search(ctx context.Context, term string, limit int) ([]entity.Record, error)

	// Reset purges all records and installs the seed set, ids starting
	// at 1. Returns the seeded records.
	Reset(ctx context.Context) ([]entity.Record, error)
}

// Broadcaster delivers named events to all connected listeners.
// Delivery is best effort and must never fail the calling mutation.
type Broadcaster interface {
	Broadcast(ev hub.Event)
}

// CreateInput carries the fields for a new record.
type CreateInput struct {
	Name  string
	Email string
	Age   int
	Phone string
}

// UpdateInput carries a partial update. Nil fields are left unchanged on
// the stored record.
type UpdateInput struct {
	Name  *string
	Email *string
	Age   *int
	Phone *string
}

// RecordUsecase provides business logic for record operations.
type RecordUsecase struct {
	repo        RecordRepository
	broadcaster Broadcaster
}

// NewRecordUsecase creates a new RecordUsecase with the given collaborators.
func NewRecordUsecase(repo RecordRepository, broadcaster Broadcaster) *RecordUsecase {
	return &RecordUsecase{repo: repo, broadcaster: broadcaster}
}

// Create validates and persists a new record, then broadcasts UserAdded.
// The record is stamped with a UTC creation time and starts active;
// UpdatedAt stays nil until the first mutation.
func (u *RecordUsecase) Create(ctx context.Context, in CreateInput) (*entity.Record, error) {
	rec := &entity.Record{
		Name:  strings.TrimSpace(in.Name),
		Email: in.Email,
		Age:   in.Age,
		Phone: in.Phone,
	}
	if err := domain.ValidateRecord(rec); err != nil {
		return nil, err
	}
	if err := u.checkEmailFree(ctx, rec.Email, 0); err != nil {
		return nil, err
	}

	rec.CreatedAt = time.Now().UTC()
	rec.IsActive = true

	if err := u.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	u.broadcaster.Broadcast(hub.Event{Name: hub.EventUserAdded, Payload: rec})
	return rec, nil
}

// Get retrieves one active record by id.
func (u *RecordUsecase) Get(ctx context.Context, id uint) (*entity.Record, error) {
	return u.repo.FindActiveByID(ctx, id)
}

// List returns one page of active records and the total count of matches.
func (u *RecordUsecase) List(ctx context.Context, params ListParams) ([]entity.Record, int64, error) {
	return u.repo.List(ctx, params.Normalize())
}

// Search returns active records whose name or email contains term.
// Terms shorter than the minimum length are rejected.
func (u *RecordUsecase) Search(ctx context.Context, term string, limit int) ([]entity.Record, error) {
	if len(strings.TrimSpace(term)) < MinSearchTermLen {
		return nil, ErrSearchTermTooShort
	}
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return u.repo.Search(ctx, term, limit)
}

// Update merges the supplied fields into the stored record, re-validates
// the merged result, persists it, and broadcasts UserUpdated. The stored
// record is left unchanged when validation fails or the new email is taken.
func (u *RecordUsecase) Update(ctx context.Context, id uint, in UpdateInput) (*entity.Record, error) {
	rec, err := u.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		rec.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		rec.Email = *in.Email
	}
	if in.Age != nil {
		rec.Age = *in.Age
	}
	if in.Phone != nil {
		rec.Phone = *in.Phone
	}

	if err := domain.ValidateRecord(rec); err != nil {
		return nil, err
	}
	if in.Email != nil {
		if err := u.checkEmailFree(ctx, rec.Email, rec.ID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	rec.UpdatedAt = &now

	if err := u.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	u.broadcaster.Broadcast(hub.Event{Name: hub.EventUserUpdated, Payload: rec})
	return rec, nil
}

// Delete soft-deletes a record: it is marked inactive and disappears from
// listings, but the row and its id are never reused. Broadcasts UserDeleted
// with the record's id.
func (u *RecordUsecase) Delete(ctx context.Context, id uint) error {
	rec, err := u.repo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec.IsActive = false
	rec.UpdatedAt = &now

	if err := u.repo.Update(ctx, rec); err != nil {
		return err
	}

	u.broadcaster.Broadcast(hub.Event{Name: hub.EventUserDeleted, Payload: rec.ID})
	return nil
}

// Reset destructively replaces the whole record set with the seed data and
// broadcasts DatabaseReset. Seed data is assumed valid, so no validation
// runs.
func (u *RecordUsecase) Reset(ctx context.Context) ([]entity.Record, error) {
	seeds, err := u.repo.Reset(ctx)
	if err != nil {
		return nil, err
	}

	u.broadcaster.Broadcast(hub.Event{Name: hub.EventDatabaseReset})
	return seeds, nil
}

// checkEmailFree returns domain.ErrEmailTaken when a record other than
// selfID already holds the email. The store's unique index remains the
// backstop for races between concurrent writers.
func (u *RecordUsecase) checkEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := u.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return domain.ErrEmailTaken
		}
		return nil
	case errors.Is(err, domain.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}
