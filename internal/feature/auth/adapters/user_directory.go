package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workspace_backend/internal/feature/auth/domain/entity"
	"workspace_backend/internal/feature/auth/usecase"
)

// userDirectory answers "which user owns this email" for other features
// without exposing the full user record. The invitation engine uses it to
// decide between requires-auth and requires-registration.
type userDirectory struct {
	db *gorm.DB
}

// NewUserDirectory creates a userDirectory for the given connection.
func NewUserDirectory(db *gorm.DB) *userDirectory {
	return &userDirectory{db: db}
}

// IDByEmail returns the user ID for an email address (case-insensitive).
// The second result is false when no account exists.
func (d *userDirectory) IDByEmail(ctx context.Context, email string) (uint, bool, error) {
	var u entity.User
	err := d.db.WithContext(ctx).
		Select("id").
		Where("email = ?", usecase.NormalizeEmail(email)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return u.ID, true, nil
}
