package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workspace_backend/internal/feature/clients/domain/entity"
	"workspace_backend/internal/feature/clients/usecase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	require.NoError(t, db.AutoMigrate(&entity.Client{}), "failed to migrate tables")
	return db
}

func TestClientGorm_TenantScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	mine := &entity.Client{CompanyID: 1, Name: "Acme Corp"}
	require.NoError(t, repo.Create(ctx, mine))

	theirs := &entity.Client{CompanyID: 2, Name: "Globex"}
	require.NoError(t, repo.Create(ctx, theirs))

	t.Run("find is scoped to the company", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 1, mine.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", found.Name)

		_, err = repo.FindByID(ctx, 1, theirs.ID)
		assert.ErrorIs(t, err, usecase.ErrNotFound, "another tenant's client must read as absent")
	})

	t.Run("list only returns the company's clients", func(t *testing.T) {
		list, err := repo.ListByCompany(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, mine.ID, list[0].ID)
	})

	t.Run("delete is scoped to the company", func(t *testing.T) {
		err := repo.Delete(ctx, 1, theirs.ID)
		assert.ErrorIs(t, err, usecase.ErrNotFound)

		require.NoError(t, repo.Delete(ctx, 1, mine.ID))
		_, err = repo.FindByID(ctx, 1, mine.ID)
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})
}
