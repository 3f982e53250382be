// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"estate_backend/internal/feature/property/domain/entity"
	"estate_backend/internal/feature/property/usecase"
	relationusecase "estate_backend/internal/feature/relation/usecase"
)

// CachingPropertyRepository decorates a PropertyRepository with Redis caching.
// Only List and FindByID are cached; FindByIDs always reads through so relation
// expansion sees deletions immediately.
type CachingPropertyRepository struct {
	inner     usecase.PropertyRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PropertyRepository = (*CachingPropertyRepository)(nil)
var _ relationusecase.PropertyRepository = (*CachingPropertyRepository)(nil)

// NewCachingPropertyRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "properties".
// A nil rdb turns the decorator into a pass-through.
func NewCachingPropertyRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PropertyRepository, namespace string) *CachingPropertyRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "properties"
	}
	return &CachingPropertyRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingPropertyRepository) List(ctx context.Context) ([]entity.Property, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}
	key := c.listKey()

	var out []entity.Property
	if c.load(ctx, key, &out) {
		return out, nil
	}
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// FindByID never caches a miss.
func (c *CachingPropertyRepository) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}
	key := c.idKey(id)

	var out entity.Property
	if c.load(ctx, key, &out) {
		return &out, nil
	}
	p, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, p)
	return p, nil
}

func (c *CachingPropertyRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Property, error) {
	return c.inner.FindByIDs(ctx, ids)
}

// Create writes through and drops the cached list.
func (c *CachingPropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// Update writes through and drops the cached list and entry.
func (c *CachingPropertyRepository) Update(ctx context.Context, id string, p *entity.Property) (*entity.Property, error) {
	out, err := c.inner.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, c.listKey(), c.idKey(id))
	return out, nil
}

// Delete writes through and drops the cached list and entry.
func (c *CachingPropertyRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.idKey(id))
	return nil
}

// load reports whether key held a decodable value. Corrupted entries are deleted.
func (c *CachingPropertyRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store is best effort.
func (c *CachingPropertyRepository) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate is best effort: a failed delete only leaves an entry until its TTL.
func (c *CachingPropertyRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

func (c *CachingPropertyRepository) listKey() string {
	return c.namespace + ":list"
}

func (c *CachingPropertyRepository) idKey(id string) string {
	return c.namespace + ":id:" + safe(id)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
