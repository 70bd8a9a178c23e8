package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace_backend/internal/feature/workspace/domain/entity"
)

// mockCompanyRepository is a function-field mock for the inner repository.
type mockCompanyRepository struct {
	createFn     func(ctx context.Context, company *entity.Company) error
	findByIDFn   func(ctx context.Context, id uint) (*entity.Company, error)
	findBySlugFn func(ctx context.Context, slug string) (*entity.Company, error)
	updateFn     func(ctx context.Context, company *entity.Company) error
}

func (m *mockCompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	if m.createFn != nil {
		return m.createFn(ctx, company)
	}
	return nil
}

func (m *mockCompanyRepository) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, errors.New("not configured")
}

func (m *mockCompanyRepository) FindBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, errors.New("not configured")
}

func (m *mockCompanyRepository) Update(ctx context.Context, company *entity.Company) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, company)
	}
	return nil
}

func TestNewCachingCompanyRepository_Defaults(t *testing.T) {
	t.Run("zero ttl and empty namespace use defaults", func(t *testing.T) {
		repo := NewCachingCompanyRepository(nil, 0, &mockCompanyRepository{}, "")

		assert.Equal(t, 5*time.Minute, repo.ttl)
		assert.Equal(t, "companies", repo.namespace)
	})

	t.Run("custom values preserved", func(t *testing.T) {
		repo := NewCachingCompanyRepository(nil, 10*time.Minute, &mockCompanyRepository{}, "custom")

		assert.Equal(t, 10*time.Minute, repo.ttl)
		assert.Equal(t, "custom", repo.namespace)
	})
}

func TestCachingCompanyRepository_FindByID(t *testing.T) {
	company := &entity.Company{ID: 7, Name: "Acme", Slug: "acme"}

	t.Run("cache miss loads from store and fills cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		inner := &mockCompanyRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Company, error) {
				calls++
				return company, nil
			},
		}
		repo := NewCachingCompanyRepository(rdb, time.Minute, inner, "companies")

		payload, _ := json.Marshal(company)
		mock.ExpectGet("companies:id:7").RedisNil()
		mock.ExpectSet("companies:id:7", payload, time.Minute).SetVal("OK")

		got, err := repo.FindByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
		assert.Equal(t, 1, calls, "store should be consulted on a miss")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockCompanyRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Company, error) {
				t.Fatal("store must not be consulted on a hit")
				return nil, nil
			},
		}
		repo := NewCachingCompanyRepository(rdb, time.Minute, inner, "companies")

		payload, _ := json.Marshal(company)
		mock.ExpectGet("companies:id:7").SetVal(string(payload))

		got, err := repo.FindByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, uint(7), got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil client bypasses the cache entirely", func(t *testing.T) {
		inner := &mockCompanyRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Company, error) {
				return company, nil
			},
		}
		repo := NewCachingCompanyRepository(nil, time.Minute, inner, "companies")

		got, err := repo.FindByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "acme", got.Slug)
	})

	t.Run("store error propagates without caching", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockCompanyRepository{
			findByIDFn: func(ctx context.Context, id uint) (*entity.Company, error) {
				return nil, errors.New("store down")
			},
		}
		repo := NewCachingCompanyRepository(rdb, time.Minute, inner, "companies")

		mock.ExpectGet("companies:id:7").RedisNil()

		_, err := repo.FindByID(context.Background(), 7)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCachingCompanyRepository_FindBySlug(t *testing.T) {
	company := &entity.Company{ID: 3, Name: "Globex", Slug: "globex"}

	rdb, mock := redismock.NewClientMock()
	inner := &mockCompanyRepository{
		findBySlugFn: func(ctx context.Context, slug string) (*entity.Company, error) {
			return company, nil
		},
	}
	repo := NewCachingCompanyRepository(rdb, time.Minute, inner, "companies")

	payload, _ := json.Marshal(company)
	mock.ExpectGet("companies:slug:globex").RedisNil()
	mock.ExpectSet("companies:slug:globex", payload, time.Minute).SetVal("OK")

	got, err := repo.FindBySlug(context.Background(), "globex")

	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingCompanyRepository_Update(t *testing.T) {
	company := &entity.Company{ID: 7, Name: "Acme Renamed", Slug: "acme"}

	t.Run("successful update invalidates both keys", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := NewCachingCompanyRepository(rdb, time.Minute, &mockCompanyRepository{}, "companies")

		mock.ExpectDel("companies:id:7", "companies:slug:acme").SetVal(2)

		require.NoError(t, repo.Update(context.Background(), company))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed update leaves the cache untouched", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockCompanyRepository{
			updateFn: func(ctx context.Context, company *entity.Company) error {
				return errors.New("store down")
			},
		}
		repo := NewCachingCompanyRepository(rdb, time.Minute, inner, "companies")

		assert.Error(t, repo.Update(context.Background(), company))
		assert.NoError(t, mock.ExpectationsWereMet(), "no cache traffic on a failed update")
	})
}
