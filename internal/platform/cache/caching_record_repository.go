// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"record_backend/internal/feature/records/domain/entity"
	"record_backend/internal/feature/records/usecase"
)

// CachingRecordRepository decorates a RecordRepository with Redis caching
// of list and search reads. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
// Any committed mutation invalidates the whole namespace, so readers never
// see a record set older than the last write.
type CachingRecordRepository struct {
	inner     usecase.RecordRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator satisfies the same interface.
var _ usecase.RecordRepository = (*CachingRecordRepository)(nil)

// listPage is the cached representation of one List result.
type listPage struct {
	Items []entity.Record `json:"items"`
	Total int64           `json:"total"`
}

// NewCachingRecordRepository decorates a RecordRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "records".
func NewCachingRecordRepository(rdb *redis.Client, ttl time.Duration, inner usecase.RecordRepository, namespace string) *CachingRecordRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "records"
	}
	return &CachingRecordRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts through to the database and invalidates cached listings.
func (c *CachingRecordRepository) Create(ctx context.Context, rec *entity.Record) error {
	if err := c.inner.Create(ctx, rec); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update writes through to the database and invalidates cached listings.
func (c *CachingRecordRepository) Update(ctx context.Context, rec *entity.Record) error {
	if err := c.inner.Update(ctx, rec); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Reset resets through to the database and invalidates cached listings.
func (c *CachingRecordRepository) Reset(ctx context.Context) ([]entity.Record, error) {
	seeds, err := c.inner.Reset(ctx)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return seeds, nil
}

// FindActiveByID always reads the database; single-record lookups back
// conflict checks and must not serve stale rows.
func (c *CachingRecordRepository) FindActiveByID(ctx context.Context, id uint) (*entity.Record, error) {
	return c.inner.FindActiveByID(ctx, id)
}

// FindByEmail always reads the database, for the same reason.
func (c *CachingRecordRepository) FindByEmail(ctx context.Context, email string) (*entity.Record, error) {
	return c.inner.FindByEmail(ctx, email)
}

// List retrieves a page of records, checking cache first then falling back
// to the database.
func (c *CachingRecordRepository) List(ctx context.Context, params usecase.ListParams) ([]entity.Record, int64, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, params)
	}

	key := c.listKey(params)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var page listPage
		if err := json.Unmarshal(b, &page); err == nil {
			return page.Items, page.Total, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	items, total, err := c.inner.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(listPage{Items: items, Total: total}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return items, total, nil
}

// Search retrieves matching records, checking cache first then falling
// back to the database.
func (c *CachingRecordRepository) Search(ctx context.Context, term string, limit int) ([]entity.Record, error) {
	if c.rdb == nil {
		return c.inner.Search(ctx, term, limit)
	}

	key := c.searchKey(term, limit)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Record
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// listKey generates a cache key for a specific list query.
func (c *CachingRecordRepository) listKey(params usecase.ListParams) string {
	return fmt.Sprintf("%s:list:%s:%d:%d",
		c.namespace,
		safe(params.Search),
		params.Page,
		params.PageSize,
	)
}

// searchKey generates a cache key for a specific search query.
func (c *CachingRecordRepository) searchKey(term string, limit int) string {
	return fmt.Sprintf("%s:search:%s:%d", c.namespace, safe(term), limit)
}

// invalidate drops every cached listing in the namespace. Best effort:
// a failed invalidation never fails the mutation that triggered it.
func (c *CachingRecordRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingRecordRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
