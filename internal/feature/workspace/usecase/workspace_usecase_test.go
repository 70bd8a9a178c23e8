package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace_backend/internal/feature/workspace/domain/entity"
)

// mockCompanyRepository is a mock implementation of CompanyRepository.
type mockCompanyRepository struct {
	CreateFunc     func(ctx context.Context, company *entity.Company) error
	FindByIDFunc   func(ctx context.Context, id uint) (*entity.Company, error)
	FindBySlugFunc func(ctx context.Context, slug string) (*entity.Company, error)
	UpdateFunc     func(ctx context.Context, company *entity.Company) error
}

func (m *mockCompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, company)
	}
	company.ID = 1
	return nil
}

func (m *mockCompanyRepository) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrWorkspaceNotFound
}

func (m *mockCompanyRepository) FindBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, ErrWorkspaceNotFound
}

func (m *mockCompanyRepository) Update(ctx context.Context, company *entity.Company) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, company)
	}
	return nil
}

// mockMembershipRepository is a mock implementation of MembershipRepository.
type mockMembershipRepository struct {
	AddFunc        func(ctx context.Context, membership *entity.Membership) error
	RoleOfFunc     func(ctx context.Context, userID, companyID uint) (entity.Role, error)
	ListByUserFunc func(ctx context.Context, userID uint) ([]WorkspaceRole, error)
}

func (m *mockMembershipRepository) Add(ctx context.Context, membership *entity.Membership) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, membership)
	}
	return nil
}

func (m *mockMembershipRepository) RoleOf(ctx context.Context, userID, companyID uint) (entity.Role, error) {
	if m.RoleOfFunc != nil {
		return m.RoleOfFunc(ctx, userID, companyID)
	}
	return "", ErrNotMember
}

func (m *mockMembershipRepository) ListByUser(ctx context.Context, userID uint) ([]WorkspaceRole, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func TestWorkspaceUsecase_CreateWorkspace(t *testing.T) {
	t.Run("creator becomes owner", func(t *testing.T) {
		var added *entity.Membership
		companies := &mockCompanyRepository{}
		memberships := &mockMembershipRepository{
			AddFunc: func(ctx context.Context, m *entity.Membership) error {
				added = m
				return nil
			},
		}
		uc := NewWorkspaceUsecase(companies, memberships)

		company, err := uc.CreateWorkspace(context.Background(), 42, "Acme Corp", "widgets")

		require.NoError(t, err, "failed to create workspace")
		assert.Equal(t, "acme-corp", company.Slug, "slug should be derived from the name")
		require.NotNil(t, added, "owner membership was not created")
		assert.Equal(t, uint(42), added.UserID, "membership user does not match")
		assert.Equal(t, company.ID, added.CompanyID, "membership company does not match")
		assert.Equal(t, entity.RoleOwner, added.Role, "creator must become owner")
	})

	t.Run("slug collision retries with a random suffix", func(t *testing.T) {
		calls := 0
		companies := &mockCompanyRepository{
			CreateFunc: func(ctx context.Context, c *entity.Company) error {
				calls++
				if calls == 1 {
					return ErrSlugTaken
				}
				c.ID = 7
				return nil
			},
		}
		uc := NewWorkspaceUsecase(companies, &mockMembershipRepository{})

		company, err := uc.CreateWorkspace(context.Background(), 1, "Acme", "")

		require.NoError(t, err, "retry should succeed")
		assert.Equal(t, 2, calls, "should have retried once")
		assert.NotEqual(t, "acme", company.Slug, "retried slug should carry a suffix")
		assert.Contains(t, company.Slug, "acme-", "retried slug should keep the base")
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		uc := NewWorkspaceUsecase(&mockCompanyRepository{}, &mockMembershipRepository{})

		_, err := uc.CreateWorkspace(context.Background(), 1, "   ", "")

		assert.Error(t, err, "should reject empty names")
	})
}

func TestWorkspaceUsecase_UpdateSettings(t *testing.T) {
	company := &entity.Company{ID: 9, Name: "Acme", Slug: "acme"}

	newUsecase := func(role entity.Role, roleErr error) (*WorkspaceUsecase, *bool) {
		updated := false
		companies := &mockCompanyRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Company, error) {
				c := *company
				return &c, nil
			},
			UpdateFunc: func(ctx context.Context, c *entity.Company) error {
				updated = true
				return nil
			},
		}
		memberships := &mockMembershipRepository{
			RoleOfFunc: func(ctx context.Context, userID, companyID uint) (entity.Role, error) {
				return role, roleErr
			},
		}
		return NewWorkspaceUsecase(companies, memberships), &updated
	}

	t.Run("admin may update settings", func(t *testing.T) {
		uc, updated := newUsecase(entity.RoleAdmin, nil)

		got, err := uc.UpdateSettings(context.Background(), 1, 9, "Acme Renamed", "desc")

		require.NoError(t, err, "admin update should succeed")
		assert.True(t, *updated, "update was not persisted")
		assert.Equal(t, "Acme Renamed", got.Name)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		uc, updated := newUsecase(entity.RoleMember, nil)

		_, err := uc.UpdateSettings(context.Background(), 1, 9, "X", "")

		assert.ErrorIs(t, err, ErrForbidden, "member must not manage settings")
		assert.False(t, *updated, "update must not be persisted")
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		uc, _ := newUsecase("", ErrNotMember)

		_, err := uc.UpdateSettings(context.Background(), 1, 9, "X", "")

		assert.ErrorIs(t, err, ErrForbidden, "non-member must be forbidden")
	})
}

func TestWorkspaceUsecase_Gate(t *testing.T) {
	newUsecase := func(role entity.Role, roleErr error) *WorkspaceUsecase {
		return NewWorkspaceUsecase(&mockCompanyRepository{}, &mockMembershipRepository{
			RoleOfFunc: func(ctx context.Context, userID, companyID uint) (entity.Role, error) {
				return role, roleErr
			},
		})
	}

	t.Run("IsMember true for any held role", func(t *testing.T) {
		for _, role := range []entity.Role{entity.RoleOwner, entity.RoleAdmin, entity.RoleMember} {
			ok, err := newUsecase(role, nil).IsMember(context.Background(), 1, 1)
			require.NoError(t, err)
			assert.True(t, ok, "role %s should be a member", role)
		}
	})

	t.Run("IsMember false without a membership", func(t *testing.T) {
		ok, err := newUsecase("", ErrNotMember).IsMember(context.Background(), 1, 1)
		require.NoError(t, err, "absence of a membership is not an error")
		assert.False(t, ok)
	})

	t.Run("CanInviteUsers follows the capability table", func(t *testing.T) {
		tests := []struct {
			role entity.Role
			want bool
		}{
			{entity.RoleOwner, true},
			{entity.RoleAdmin, true},
			{entity.RoleMember, false},
		}
		for _, tt := range tests {
			ok, err := newUsecase(tt.role, nil).CanInviteUsers(context.Background(), 1, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok, "capability mismatch for role %s", tt.role)
		}
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple name", input: "Acme Corp", expected: "acme-corp"},
		{name: "punctuation collapses", input: "Acme, Inc.", expected: "acme-inc"},
		{name: "leading and trailing separators trimmed", input: "  --Acme--  ", expected: "acme"},
		{name: "digits preserved", input: "Studio 54", expected: "studio-54"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
