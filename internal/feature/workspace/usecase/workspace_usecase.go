package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"workspace_backend/internal/feature/workspace/domain/entity"
)

// CompanyRepository abstracts the persistence layer for company entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CompanyRepository interface {
	// Create persists a new company. Returns ErrSlugTaken when the slug is in use.
	Create(ctx context.Context, company *entity.Company) error

	// FindByID retrieves a company by ID. Returns ErrWorkspaceNotFound when absent.
	FindByID(ctx context.Context, id uint) (*entity.Company, error)

	// FindBySlug retrieves a company by its slug. Returns ErrWorkspaceNotFound when absent.
	FindBySlug(ctx context.Context, slug string) (*entity.Company, error)

	// Update persists changes to an existing company.
	Update(ctx context.Context, company *entity.Company) error
}

// MembershipRepository abstracts the persistence layer for membership edges.
type MembershipRepository interface {
	// Add persists a new membership edge. Returns ErrAlreadyMember when the
	// (user, company) pair already exists.
	Add(ctx context.Context, membership *entity.Membership) error

	// RoleOf returns the role a user holds in a company, or ErrNotMember.
	// Reads go straight to the store so authorization never sees a stale role.
	RoleOf(ctx context.Context, userID, companyID uint) (entity.Role, error)

	// ListByUser returns every workspace the user belongs to with the held role.
	ListByUser(ctx context.Context, userID uint) ([]WorkspaceRole, error)
}

// WorkspaceRole pairs a company with the role the listing user holds in it.
type WorkspaceRole struct {
	Company entity.Company
	Role    entity.Role
}

// WorkspaceUsecase implements workspace management and serves as the
// authorization gate consulted by every tenant-scoped operation.
type WorkspaceUsecase struct {
	companies   CompanyRepository
	memberships MembershipRepository
}

// NewWorkspaceUsecase creates a new WorkspaceUsecase.
func NewWorkspaceUsecase(companies CompanyRepository, memberships MembershipRepository) *WorkspaceUsecase {
	return &WorkspaceUsecase{
		companies:   companies,
		memberships: memberships,
	}
}

// CreateWorkspace creates a company and makes the creator its owner.
func (u *WorkspaceUsecase) CreateWorkspace(ctx context.Context, ownerID uint, name, description string) (*entity.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("workspace name must not be empty")
	}

	company := &entity.Company{
		Name:        name,
		Description: description,
		Slug:        Slugify(name),
	}

	// Retry with a random suffix when the human-readable slug collides.
	for attempt := 0; ; attempt++ {
		err := u.companies.Create(ctx, company)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrSlugTaken) || attempt >= 2 {
			return nil, err
		}
		company.Slug = fmt.Sprintf("%s-%s", Slugify(name), uuid.NewString()[:8])
	}

	membership := &entity.Membership{
		UserID:    ownerID,
		CompanyID: company.ID,
		Role:      entity.RoleOwner,
	}
	if err := u.memberships.Add(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	return company, nil
}

// ListWorkspaces returns every workspace the user belongs to.
func (u *WorkspaceUsecase) ListWorkspaces(ctx context.Context, userID uint) ([]WorkspaceRole, error) {
	return u.memberships.ListByUser(ctx, userID)
}

// GetWorkspace returns a company the user is a member of.
func (u *WorkspaceUsecase) GetWorkspace(ctx context.Context, userID, companyID uint) (*entity.Company, error) {
	if _, err := u.memberships.RoleOf(ctx, userID, companyID); err != nil {
		if errors.Is(err, ErrNotMember) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return u.companies.FindByID(ctx, companyID)
}

// UpdateSettings changes a workspace's name and description. Requires the
// manage-settings capability.
func (u *WorkspaceUsecase) UpdateSettings(ctx context.Context, userID, companyID uint, name, description string) (*entity.Company, error) {
	role, err := u.memberships.RoleOf(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !role.CanManageSettings() {
		return nil, ErrForbidden
	}

	company, err := u.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		company.Name = name
	}
	company.Description = description

	if err := u.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// RoleOf resolves the role a user holds in a company.
func (u *WorkspaceUsecase) RoleOf(ctx context.Context, userID, companyID uint) (entity.Role, error) {
	return u.memberships.RoleOf(ctx, userID, companyID)
}

// IsMember reports whether the user holds any role in the company.
func (u *WorkspaceUsecase) IsMember(ctx context.Context, userID, companyID uint) (bool, error) {
	role, err := u.memberships.RoleOf(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			return false, nil
		}
		return false, err
	}
	return role.CanAccessResources(), nil
}

// CanInviteUsers reports whether the user may manage invitations for the company.
func (u *WorkspaceUsecase) CanInviteUsers(ctx context.Context, userID, companyID uint) (bool, error) {
	role, err := u.memberships.RoleOf(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			return false, nil
		}
		return false, err
	}
	return role.CanInviteUsers(), nil
}

// Slugify converts a display name into a URL-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress leading dashes
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
