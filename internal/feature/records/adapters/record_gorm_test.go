package adapters

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"record_backend/internal/feature/records/domain"
	"record_backend/internal/feature/records/domain/entity"
	"record_backend/internal/feature/records/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Record{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// newRecord builds a persist-ready active record.
func newRecord(name, email string, age int) *entity.Record {
	return &entity.Record{
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
}

func TestRecordGorm_Create(t *testing.T) {
	t.Run("successful creation assigns an id", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		rec := newRecord("Ana", "ana@x.com", 30)
		err := repo.Create(context.Background(), rec)

		assert.NoError(t, err, "failed to create record")
		assert.NotZero(t, rec.ID, "ID is not set")
	})

	t.Run("ids are monotonically increasing", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		var lastID uint
		for i := 0; i < 3; i++ {
			rec := newRecord("Ana", fmt.Sprintf("ana%d@x.com", i), 30)
			require.NoError(t, repo.Create(context.Background(), rec))
			assert.Greater(t, rec.ID, lastID, "ids must increase")
			lastID = rec.ID
		}
	})

	t.Run("duplicate email yields the conflict sentinel", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), newRecord("Ana", "dup@x.com", 30)))

		err := repo.Create(context.Background(), newRecord("Bia", "dup@x.com", 25))
		assert.ErrorIs(t, err, domain.ErrEmailTaken, "should surface as ErrEmailTaken")
	})

	t.Run("a soft-deleted record keeps its email slot", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		rec := newRecord("Ana", "kept@x.com", 30)
		require.NoError(t, repo.Create(context.Background(), rec))

		rec.IsActive = false
		require.NoError(t, repo.Update(context.Background(), rec))

		err := repo.Create(context.Background(), newRecord("Bia", "kept@x.com", 25))
		assert.ErrorIs(t, err, domain.ErrEmailTaken, "inactive records still occupy the email")
	})
}

func TestRecordGorm_FindActiveByID(t *testing.T) {
	t.Run("finds an active record", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		expected := newRecord("Ana", "ana@x.com", 30)
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindActiveByID(context.Background(), expected.ID)

		require.NoError(t, err, "failed to find record")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
		assert.Nil(t, found.UpdatedAt, "UpdatedAt should survive the round trip as nil")
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		found, err := repo.FindActiveByID(context.Background(), 999)

		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
		assert.Nil(t, found)
	})

	t.Run("soft-deleted record is treated as absent", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		rec := newRecord("Ana", "ana@x.com", 30)
		require.NoError(t, repo.Create(context.Background(), rec))

		rec.IsActive = false
		require.NoError(t, repo.Update(context.Background(), rec))

		_, err := repo.FindActiveByID(context.Background(), rec.ID)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound, "inactive records are hidden by id lookup")
	})
}

func TestRecordGorm_FindByEmail(t *testing.T) {
	t.Run("finds records regardless of active flag", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		rec := newRecord("Ana", "ana@x.com", 30)
		require.NoError(t, repo.Create(context.Background(), rec))

		rec.IsActive = false
		require.NoError(t, repo.Update(context.Background(), rec))

		found, err := repo.FindByEmail(context.Background(), "ana@x.com")
		require.NoError(t, err)
		assert.Equal(t, rec.ID, found.ID)
		assert.False(t, found.IsActive)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}

func TestRecordGorm_Update(t *testing.T) {
	t.Run("persists changed fields and UpdatedAt", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		rec := newRecord("Ana", "ana@x.com", 30)
		require.NoError(t, repo.Create(context.Background(), rec))

		now := time.Now().UTC()
		rec.Age = 31
		rec.UpdatedAt = &now
		require.NoError(t, repo.Update(context.Background(), rec))

		found, err := repo.FindActiveByID(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.Equal(t, 31, found.Age)
		require.NotNil(t, found.UpdatedAt, "UpdatedAt should be persisted")
		assert.Equal(t, now.Unix(), found.UpdatedAt.Unix())
	})

	t.Run("updating to a taken email yields the conflict sentinel", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), newRecord("Ana", "ana@x.com", 30)))
		other := newRecord("Bia", "bia@x.com", 25)
		require.NoError(t, repo.Create(context.Background(), other))

		other.Email = "ana@x.com"
		err := repo.Update(context.Background(), other)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestRecordGorm_List(t *testing.T) {
	seed := func(t *testing.T, repo *recordGorm) {
		t.Helper()
		for i, spec := range []struct {
			name  string
			email string
		}{
			{"Ana Lima", "ana@x.com"},
			{"Bruno Costa", "bruno@x.com"},
			{"Carla Dias", "carla@y.com"},
			{"Davi Rocha", "davi@y.com"},
			{"Elisa Nunes", "elisa@z.com"},
		} {
			require.NoError(t, repo.Create(context.Background(), newRecord(spec.name, spec.email, 20+i)))
		}
	}

	t.Run("paginates active records in id order", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))
		seed(t, repo)

		recs, total, err := repo.List(context.Background(), usecase.ListParams{Page: 2, PageSize: 2})

		require.NoError(t, err)
		assert.Equal(t, int64(5), total, "total counts every active match")
		require.Len(t, recs, 2)
		assert.Equal(t, "Carla Dias", recs[0].Name)
		assert.Equal(t, "Davi Rocha", recs[1].Name)
	})

	t.Run("excludes soft-deleted records", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))
		seed(t, repo)

		rec, err := repo.FindByEmail(context.Background(), "ana@x.com")
		require.NoError(t, err)
		rec.IsActive = false
		require.NoError(t, repo.Update(context.Background(), rec))

		recs, total, err := repo.List(context.Background(), usecase.ListParams{Page: 1, PageSize: 10})

		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		for _, r := range recs {
			assert.NotEqual(t, "ana@x.com", r.Email, "deleted record must not be listed")
		}
	})

	t.Run("filters by name or email substring", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))
		seed(t, repo)

		recs, total, err := repo.List(context.Background(),
			usecase.ListParams{Search: "@y.com", Page: 1, PageSize: 10})

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, recs, 2)

		recs, total, err = repo.List(context.Background(),
			usecase.ListParams{Search: "Bruno", Page: 1, PageSize: 10})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, recs, 1)
		assert.Equal(t, "bruno@x.com", recs[0].Email)
	})
}

func TestRecordGorm_Search(t *testing.T) {
	repo := NewRecordGorm(setupTestDB(t))
	require.NoError(t, repo.Create(context.Background(), newRecord("Ana Lima", "ana@x.com", 30)))
	require.NoError(t, repo.Create(context.Background(), newRecord("Mariana Reis", "mariana@x.com", 28)))
	require.NoError(t, repo.Create(context.Background(), newRecord("Bruno Costa", "bruno@x.com", 41)))

	t.Run("matches name or email substring", func(t *testing.T) {
		recs, err := repo.Search(context.Background(), "ana", 10)

		require.NoError(t, err)
		assert.Len(t, recs, 2, "Ana and Mariana both contain 'ana'")
	})

	t.Run("honors the limit", func(t *testing.T) {
		recs, err := repo.Search(context.Background(), "ana", 1)

		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("no matches", func(t *testing.T) {
		recs, err := repo.Search(context.Background(), "zzz", 10)

		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func TestRecordGorm_Reset(t *testing.T) {
	t.Run("replaces any prior state with the seed set", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		for i := 0; i < 5; i++ {
			require.NoError(t, repo.Create(context.Background(),
				newRecord("Old", fmt.Sprintf("old%d@x.com", i), 40)))
		}

		seeds, err := repo.Reset(context.Background())
		require.NoError(t, err, "reset failed")
		require.Len(t, seeds, 3, "seed set is fixed at three records")

		recs, total, err := repo.List(context.Background(), usecase.ListParams{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total, "only the seeds remain")

		for i, rec := range recs {
			assert.Equal(t, uint(i+1), rec.ID, "seed ids restart at 1")
			assert.True(t, rec.IsActive)
		}
		assert.Equal(t, "joao@email.com", recs[0].Email)
		assert.Equal(t, "maria@email.com", recs[1].Email)
		assert.Equal(t, "pedro@email.com", recs[2].Email)
	})

	t.Run("works on an empty database", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		seeds, err := repo.Reset(context.Background())
		require.NoError(t, err)
		assert.Len(t, seeds, 3)
	})

	t.Run("inserts after a reset continue past the seed ids", func(t *testing.T) {
		repo := NewRecordGorm(setupTestDB(t))

		_, err := repo.Reset(context.Background())
		require.NoError(t, err)

		rec := newRecord("Novo", "novo@x.com", 22)
		require.NoError(t, repo.Create(context.Background(), rec))
		assert.Equal(t, uint(4), rec.ID, "autoincrement continues after the seeds")
	})
}
