// Package adapters provides the repository implementation for the
// projects feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workspace_backend/internal/feature/projects/domain/entity"
	"workspace_backend/internal/feature/projects/usecase"
)

// projectGorm implements usecase.ProjectRepository using GORM.
type projectGorm struct {
	db *gorm.DB
}

var _ usecase.ProjectRepository = (*projectGorm)(nil)

// NewProjectRepository creates a projectGorm for the given connection.
func NewProjectRepository(db *gorm.DB) *projectGorm {
	return &projectGorm{db: db}
}

func (r *projectGorm) Create(ctx context.Context, project *entity.Project) error {
	if project == nil {
		return errors.New("project must not be nil")
	}
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectGorm) FindByID(ctx context.Context, companyID, id uint) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectGorm) ListByCompany(ctx context.Context, companyID uint) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectGorm) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectGorm) Delete(ctx context.Context, companyID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&entity.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
