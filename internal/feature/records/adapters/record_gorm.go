// Package adapters provides the repository implementations for the records feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"record_backend/internal/feature/records/domain"
	"record_backend/internal/feature/records/domain/entity"
	"record_backend/internal/feature/records/usecase"
)

// seedRecords returns the fixed seed set installed by Reset.
// Seed data is assumed valid and bypasses validation.
func seedRecords(now time.Time) []entity.Record {
	return []entity.Record{
		{ID: 1, Name: "João Silva", Email: "joao@email.com", Age: 30, CreatedAt: now, IsActive: true},
		{ID: 2, Name: "Maria Santos", Email: "maria@email.com", Age: 25, CreatedAt: now, IsActive: true},
		{ID: 3, Name: "Pedro Oliveira", Email: "pedro@email.com", Age: 35, CreatedAt: now, IsActive: true},
	}
}

// recordGorm is the GORM implementation of the RecordRepository interface.
type recordGorm struct {
	db *gorm.DB
}

// Compile-time check that recordGorm implements RecordRepository.
var _ usecase.RecordRepository = (*recordGorm)(nil)

// NewRecordGorm creates a recordGorm bound to the given gorm.DB connection.
// The connection must be opened with TranslateError so duplicate-key
// failures surface as gorm.ErrDuplicatedKey across drivers.
func NewRecordGorm(db *gorm.DB) *recordGorm {
	return &recordGorm{db: db}
}

// Create inserts the record and assigns its id.
// Returns domain.ErrEmailTaken when the email unique index is violated.
func (r *recordGorm) Create(ctx context.Context, rec *entity.Record) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// FindActiveByID retrieves an active record by id.
// Returns domain.ErrRecordNotFound when the id is absent or soft-deleted.
func (r *recordGorm) FindActiveByID(ctx context.Context, id uint) (*entity.Record, error) {
	var rec entity.Record
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find record by id: %w", err)
	}
	return &rec, nil
}

// FindByEmail retrieves a record by exact email match, active or not.
// Soft-deleted records keep their email slot, so they count here too.
func (r *recordGorm) FindByEmail(ctx context.Context, email string) (*entity.Record, error) {
	var rec entity.Record
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find record by email: %w", err)
	}
	return &rec, nil
}

// Update persists all fields of an existing record, including zero values
// such as IsActive=false for soft deletes.
func (r *recordGorm) Update(ctx context.Context, rec *entity.Record) error {
	// Save writes every column, so zero values such as IsActive=false
	// survive a soft delete.
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

// List returns one page of active records ordered by id, plus the total
// count of active records matching the filter.
func (r *recordGorm) List(ctx context.Context, params usecase.ListParams) ([]entity.Record, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.Record{}).
		Where("is_active = ?", true)
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	var recs []entity.Record
	err := q.Order("id").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&recs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	return recs, total, nil
}

// Search returns up to limit active records whose name or email contains
// the term, ordered by id.
func (r *recordGorm) Search(ctx context.Context, term string, limit int) ([]entity.Record, error) {
	pattern := "%" + term + "%"

	var recs []entity.Record
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("name LIKE ? OR email LIKE ?", pattern, pattern).
		Order("id").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	return recs, nil
}

// Reset purges every record and installs the seed set inside a single
// transaction. Seeds carry explicit ids 1..3, and the id sequence is
// re-synced afterwards so later inserts continue from the seed ids.
func (r *recordGorm) Reset(ctx context.Context) ([]entity.Record, error) {
	seeds := seedRecords(time.Now().UTC())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM records").Error; err != nil {
			return fmt.Errorf("purge records: %w", err)
		}
		for i := range seeds {
			if err := tx.Create(&seeds[i]).Error; err != nil {
				return fmt.Errorf("seed record %q: %w", seeds[i].Email, err)
			}
		}
		return syncIDSequence(tx, uint(len(seeds)))
	})
	if err != nil {
		return nil, err
	}
	return seeds, nil
}

// syncIDSequence aligns the autoincrement counter with the highest seeded
// id. Postgres sequences do not advance on explicit-id inserts; SQLite
// keeps its counter in step on its own.
func syncIDSequence(tx *gorm.DB, maxID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT setval('records_id_seq', ?)", maxID).Error; err != nil {
		return fmt.Errorf("sync id sequence: %w", err)
	}
	return nil
}
