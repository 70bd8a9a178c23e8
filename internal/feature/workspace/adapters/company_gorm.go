// Package adapters provides the repository implementations for the workspace feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workspace_backend/internal/feature/workspace/domain/entity"
	"workspace_backend/internal/feature/workspace/usecase"
)

// companyGorm implements usecase.CompanyRepository using GORM.
type companyGorm struct {
	db *gorm.DB
}

// Compile-time check that companyGorm satisfies the repository interface.
var _ usecase.CompanyRepository = (*companyGorm)(nil)

// NewCompanyRepository creates a companyGorm for the given connection.
func NewCompanyRepository(db *gorm.DB) *companyGorm {
	return &companyGorm{db: db}
}

// Create inserts a company. A duplicate slug maps to usecase.ErrSlugTaken.
func (r *companyGorm) Create(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return errors.New("company must not be nil")
	}
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrSlugTaken
		}
		return err
	}
	return nil
}

// FindByID retrieves a company by ID.
func (r *companyGorm) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindBySlug retrieves a company by its unique slug.
func (r *companyGorm) FindBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update persists changes to an existing company.
func (r *companyGorm) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}
