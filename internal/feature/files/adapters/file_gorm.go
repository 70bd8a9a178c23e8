// Package adapters provides the metadata repository and object storage
// client for the files feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workspace_backend/internal/feature/files/domain/entity"
	"workspace_backend/internal/feature/files/usecase"
)

// fileGorm implements usecase.FileRepository using GORM.
type fileGorm struct {
	db *gorm.DB
}

var _ usecase.FileRepository = (*fileGorm)(nil)

// NewFileRepository creates a fileGorm for the given connection.
func NewFileRepository(db *gorm.DB) *fileGorm {
	return &fileGorm{db: db}
}

func (r *fileGorm) Create(ctx context.Context, file *entity.File) error {
	if file == nil {
		return errors.New("file must not be nil")
	}
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileGorm) FindByID(ctx context.Context, companyID, id uint) (*entity.File, error) {
	var file entity.File
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *fileGorm) ListByCompany(ctx context.Context, companyID uint) ([]entity.File, error) {
	var files []entity.File
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileGorm) Delete(ctx context.Context, companyID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&entity.File{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
