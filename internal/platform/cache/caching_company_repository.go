// Package cache provides caching decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"workspace_backend/internal/feature/workspace/domain/entity"
	"workspace_backend/internal/feature/workspace/usecase"
)

// CachingCompanyRepository decorates a CompanyRepository with a Redis
// read-through cache. Only company display data passes through here;
// membership roles are never cached.
type CachingCompanyRepository struct {
	inner     usecase.CompanyRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CompanyRepository = (*CachingCompanyRepository)(nil)

// NewCachingCompanyRepository decorates a CompanyRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "companies".
func NewCachingCompanyRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CompanyRepository, namespace string) *CachingCompanyRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "companies"
	}
	return &CachingCompanyRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create passes through to the store. Nothing is cached until the first read.
func (c *CachingCompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	return c.inner.Create(ctx, company)
}

// FindByID retrieves a company, checking the cache first then falling back
// to the store.
func (c *CachingCompanyRepository) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	return c.readThrough(ctx, c.idKey(id), func() (*entity.Company, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// FindBySlug retrieves a company by slug, checking the cache first.
func (c *CachingCompanyRepository) FindBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	return c.readThrough(ctx, c.slugKey(slug), func() (*entity.Company, error) {
		return c.inner.FindBySlug(ctx, slug)
	})
}

// Update writes through to the store and invalidates both cache keys of
// the company. Invalidation is best effort.
func (c *CachingCompanyRepository) Update(ctx context.Context, company *entity.Company) error {
	if err := c.inner.Update(ctx, company); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.rdb.Del(ctx, c.idKey(company.ID), c.slugKey(company.Slug)).Err()
	return nil
}

func (c *CachingCompanyRepository) readThrough(ctx context.Context, key string, load func() (*entity.Company, error)) (*entity.Company, error) {
	if c.rdb == nil {
		return load()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Company
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Drop the corrupted entry and fall through to the store.
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingCompanyRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

func (c *CachingCompanyRepository) slugKey(slug string) string {
	return fmt.Sprintf("%s:slug:%s", c.namespace, safe(slug))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
