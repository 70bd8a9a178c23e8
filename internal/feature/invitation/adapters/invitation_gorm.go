// Package adapters provides the repository implementation for the
// invitation feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"workspace_backend/internal/feature/invitation/domain/entity"
	"workspace_backend/internal/feature/invitation/usecase"
)

// invitationGorm implements usecase.InvitationRepository using GORM.
type invitationGorm struct {
	db *gorm.DB
}

var _ usecase.InvitationRepository = (*invitationGorm)(nil)

// NewInvitationRepository creates an invitationGorm for the given connection.
func NewInvitationRepository(db *gorm.DB) *invitationGorm {
	return &invitationGorm{db: db}
}

// Create persists a new invitation row.
func (r *invitationGorm) Create(ctx context.Context, inv *entity.Invitation) error {
	if inv == nil {
		return errors.New("invitation must not be nil")
	}
	return r.db.WithContext(ctx).Create(inv).Error
}

// FindByID retrieves an invitation by ID.
func (r *invitationGorm) FindByID(ctx context.Context, id uint) (*entity.Invitation, error) {
	var inv entity.Invitation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByToken retrieves the unique holder of a token value.
func (r *invitationGorm) FindByToken(ctx context.Context, tokenValue string) (*entity.Invitation, error) {
	if tokenValue == "" {
		return nil, usecase.ErrNotFound
	}
	var inv entity.Invitation
	if err := r.db.WithContext(ctx).Where("token = ?", tokenValue).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ListPending returns the stored-pending invitations of a company,
// newest first.
func (r *invitationGorm) ListPending(ctx context.Context, companyID uint) ([]entity.Invitation, error) {
	var invitations []entity.Invitation
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, entity.StatusPending).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

// MarkAccepted flips pending to accepted in one guarded UPDATE. The WHERE
// clause on status and expiry means at most one of any number of
// concurrent accepts can match the row.
func (r *invitationGorm) MarkAccepted(ctx context.Context, id uint, at time.Time) (bool, error) {
	return r.transition(ctx, id, at, entity.StatusAccepted)
}

// MarkCancelled flips pending to cancelled under the same guard.
func (r *invitationGorm) MarkCancelled(ctx context.Context, id uint, at time.Time) (bool, error) {
	return r.transition(ctx, id, at, entity.StatusCancelled)
}

func (r *invitationGorm) transition(ctx context.Context, id uint, at time.Time, to entity.Status) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Invitation{}).
		Where("id = ? AND status = ? AND expires_at > ?", id, entity.StatusPending, at).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ReplaceToken re-mints the token pair of a stored-pending row. Unlike
// the status transitions this matches expired rows too: resending is how
// a lapsed invitation comes back to life.
func (r *invitationGorm) ReplaceToken(ctx context.Context, id uint, tokenValue string, expiresAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Invitation{}).
		Where("id = ? AND status = ?", id, entity.StatusPending).
		Updates(map[string]interface{}{
			"token":      tokenValue,
			"expires_at": expiresAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteExpiredBefore removes pending rows whose expiry lies before the
// cutoff.
func (r *invitationGorm) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", entity.StatusPending, cutoff).
		Delete(&entity.Invitation{})
	return res.RowsAffected, res.Error
}
