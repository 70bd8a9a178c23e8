package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workspace_backend/internal/feature/workspace/domain/entity"
	"workspace_backend/internal/feature/workspace/usecase"
)

// membershipGorm implements usecase.MembershipRepository using GORM.
type membershipGorm struct {
	db *gorm.DB
}

var _ usecase.MembershipRepository = (*membershipGorm)(nil)

// NewMembershipRepository creates a membershipGorm for the given connection.
func NewMembershipRepository(db *gorm.DB) *membershipGorm {
	return &membershipGorm{db: db}
}

// Add inserts a membership edge. The composite unique index on
// (user_id, company_id) makes duplicate edges a store-level conflict, which
// maps to usecase.ErrAlreadyMember. Relying on the constraint rather than a
// pre-check closes the race between two concurrent accepts.
func (r *membershipGorm) Add(ctx context.Context, membership *entity.Membership) error {
	if membership == nil {
		return errors.New("membership must not be nil")
	}
	if !membership.Role.Valid() {
		return errors.New("membership role is invalid")
	}
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAlreadyMember
		}
		return err
	}
	return nil
}

// RoleOf returns the role held by a user in a company.
func (r *membershipGorm) RoleOf(ctx context.Context, userID, companyID uint) (entity.Role, error) {
	var m entity.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecase.ErrNotMember
		}
		return "", err
	}
	return m.Role, nil
}

// ListByUser returns every (company, role) pair for a user, joined against
// the companies table so the caller gets display data in one round trip.
func (r *membershipGorm) ListByUser(ctx context.Context, userID uint) ([]usecase.WorkspaceRole, error) {
	var memberships []entity.Membership
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.CompanyID)
	}

	var companies []entity.Company
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&companies).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	out := make([]usecase.WorkspaceRole, 0, len(memberships))
	for _, m := range memberships {
		company, ok := byID[m.CompanyID]
		if !ok {
			continue
		}
		out = append(out, usecase.WorkspaceRole{Company: company, Role: m.Role})
	}
	return out, nil
}
