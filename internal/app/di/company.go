// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	wsadapters "workspace_backend/internal/feature/workspace/adapters"
	"workspace_backend/internal/feature/workspace/usecase"
	"workspace_backend/internal/platform/cache"
)

// NewCompanyRepository creates the company repository, wrapped in a Redis
// read-through cache when a client is available. A nil client degrades to
// plain database access inside the decorator.
func NewCompanyRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.CompanyRepository {
	inner := wsadapters.NewCompanyRepository(db)
	return cache.NewCachingCompanyRepository(rdb, ttl, inner, "companies")
}
