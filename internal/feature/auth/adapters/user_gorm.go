// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"workspace_backend/internal/feature/auth/domain/entity"
	"workspace_backend/internal/feature/auth/usecase"
)

// userGorm implements usecase.UserRepository using GORM.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm satisfies the repository interface.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a userGorm for the given connection.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts a user. Emails are canonicalized here as well as in the
// usecase, so the unique index is the real uniqueness guarantee regardless
// of the caller. A duplicate maps to usecase.ErrEmailAlreadyExists.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user must not be nil")
	}
	u.Email = usecase.NormalizeEmail(u.Email)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email address (case-insensitive).
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", usecase.NormalizeEmail(email)).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByVerificationToken retrieves the unique holder of a verification token.
func (r *userGorm) FindByVerificationToken(ctx context.Context, tokenValue string) (*entity.User, error) {
	return r.findByToken(ctx, "verification_token", tokenValue)
}

// FindByResetToken retrieves the unique holder of a reset token.
func (r *userGorm) FindByResetToken(ctx context.Context, tokenValue string) (*entity.User, error) {
	return r.findByToken(ctx, "reset_password_token", tokenValue)
}

func (r *userGorm) findByToken(ctx context.Context, column, tokenValue string) (*entity.User, error) {
	if tokenValue == "" {
		return nil, usecase.ErrUserNotFound
	}
	var u entity.User
	if err := r.db.WithContext(ctx).Where(column+" = ?", tokenValue).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetVerificationToken stores a verification token pair, replacing any
// outstanding one.
func (r *userGorm) SetVerificationToken(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verification_token":            tokenValue,
			"verification_token_expires_at": expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ConsumeVerificationToken clears the token pair and sets EmailVerifiedAt in
// one guarded UPDATE. The WHERE clause on the token column means only one of
// any number of concurrent consumers can match the row; everyone else sees
// zero rows affected.
func (r *userGorm) ConsumeVerificationToken(ctx context.Context, tokenValue string, verifiedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("verification_token = ?", tokenValue).
		Updates(map[string]interface{}{
			"email_verified_at":             verifiedAt,
			"verification_token":            nil,
			"verification_token_expires_at": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetResetToken stores a reset token pair, replacing any outstanding one.
func (r *userGorm) SetResetToken(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_password_token":            tokenValue,
			"reset_password_token_expires_at": expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken clears the reset token pair and overwrites the password
// hash in one guarded UPDATE.
func (r *userGorm) ConsumeResetToken(ctx context.Context, tokenValue, passwordHash string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("reset_password_token = ?", tokenValue).
		Updates(map[string]interface{}{
			"password":                        passwordHash,
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
