// Package adapters provides the repository implementation for the
// clients feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workspace_backend/internal/feature/clients/domain/entity"
	"workspace_backend/internal/feature/clients/usecase"
)

// clientGorm implements usecase.ClientRepository using GORM.
type clientGorm struct {
	db *gorm.DB
}

var _ usecase.ClientRepository = (*clientGorm)(nil)

// NewClientRepository creates a clientGorm for the given connection.
func NewClientRepository(db *gorm.DB) *clientGorm {
	return &clientGorm{db: db}
}

func (r *clientGorm) Create(ctx context.Context, client *entity.Client) error {
	if client == nil {
		return errors.New("client must not be nil")
	}
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientGorm) FindByID(ctx context.Context, companyID, id uint) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientGorm) ListByCompany(ctx context.Context, companyID uint) ([]entity.Client, error) {
	var clients []entity.Client
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientGorm) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientGorm) Delete(ctx context.Context, companyID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&entity.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
