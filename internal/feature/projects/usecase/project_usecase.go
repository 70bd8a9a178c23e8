// Package usecase implements company-scoped project management.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"workspace_backend/internal/feature/projects/domain/entity"
)

// ProjectRepository abstracts the persistence layer for project entities.
// Every method is scoped by companyID.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindByID(ctx context.Context, companyID, id uint) (*entity.Project, error)
	ListByCompany(ctx context.Context, companyID uint) ([]entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, companyID, id uint) error
}

// MembershipChecker gates every operation on company membership.
// Satisfied by the workspace usecase.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID, companyID uint) (bool, error)
}

// ProjectInput carries the writable fields of a project.
type ProjectInput struct {
	Name        string
	Description string
	Status      string
	ClientID    *uint
}

// ProjectUsecase implements project CRUD behind the membership gate.
type ProjectUsecase struct {
	projects ProjectRepository
	gate     MembershipChecker
}

// NewProjectUsecase creates a new ProjectUsecase.
func NewProjectUsecase(projects ProjectRepository, gate MembershipChecker) *ProjectUsecase {
	return &ProjectUsecase{projects: projects, gate: gate}
}

func (u *ProjectUsecase) authorize(ctx context.Context, userID, companyID uint) error {
	ok, err := u.gate.IsMember(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// Create adds a project to the company.
func (u *ProjectUsecase) Create(ctx context.Context, userID, companyID uint, in ProjectInput) (*entity.Project, error) {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if in.Name = strings.TrimSpace(in.Name); in.Name == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if !entity.ValidStatus(in.Status) {
		return nil, fmt.Errorf("unknown project status %q", in.Status)
	}

	project := &entity.Project{
		CompanyID:   companyID,
		ClientID:    in.ClientID,
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
	}
	if err := u.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the company's projects.
func (u *ProjectUsecase) List(ctx context.Context, userID, companyID uint) ([]entity.Project, error) {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}
	return u.projects.ListByCompany(ctx, companyID)
}

// Get returns one project of the company.
func (u *ProjectUsecase) Get(ctx context.Context, userID, companyID, projectID uint) (*entity.Project, error) {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}
	return u.projects.FindByID(ctx, companyID, projectID)
}

// Update changes a project's writable fields.
func (u *ProjectUsecase) Update(ctx context.Context, userID, companyID, projectID uint, in ProjectInput) (*entity.Project, error) {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}

	project, err := u.projects.FindByID(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}

	if in.Name = strings.TrimSpace(in.Name); in.Name != "" {
		project.Name = in.Name
	}
	project.Description = in.Description
	project.ClientID = in.ClientID
	if in.Status != "" {
		if !entity.ValidStatus(in.Status) {
			return nil, fmt.Errorf("unknown project status %q", in.Status)
		}
		project.Status = in.Status
	}

	if err := u.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project from the company.
func (u *ProjectUsecase) Delete(ctx context.Context, userID, companyID, projectID uint) error {
	if err := u.authorize(ctx, userID, companyID); err != nil {
		return err
	}
	return u.projects.Delete(ctx, companyID, projectID)
}
