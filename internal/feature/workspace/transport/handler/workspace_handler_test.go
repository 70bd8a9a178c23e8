package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace_backend/internal/feature/workspace/domain/entity"
	"workspace_backend/internal/feature/workspace/usecase"
	jwtmw "workspace_backend/internal/platform/jwt"
)

// mockWorkspaceUsecase is a mock implementation of the WorkspaceUsecase interface.
type mockWorkspaceUsecase struct {
	CreateWorkspaceFunc func(ctx context.Context, ownerID uint, name, description string) (*entity.Company, error)
	ListWorkspacesFunc  func(ctx context.Context, userID uint) ([]usecase.WorkspaceRole, error)
	GetWorkspaceFunc    func(ctx context.Context, userID, companyID uint) (*entity.Company, error)
	UpdateSettingsFunc  func(ctx context.Context, userID, companyID uint, name, description string) (*entity.Company, error)
}

func (m *mockWorkspaceUsecase) CreateWorkspace(ctx context.Context, ownerID uint, name, description string) (*entity.Company, error) {
	if m.CreateWorkspaceFunc != nil {
		return m.CreateWorkspaceFunc(ctx, ownerID, name, description)
	}
	return &entity.Company{ID: 1, Name: name, Slug: "slug"}, nil
}

func (m *mockWorkspaceUsecase) ListWorkspaces(ctx context.Context, userID uint) ([]usecase.WorkspaceRole, error) {
	if m.ListWorkspacesFunc != nil {
		return m.ListWorkspacesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWorkspaceUsecase) GetWorkspace(ctx context.Context, userID, companyID uint) (*entity.Company, error) {
	if m.GetWorkspaceFunc != nil {
		return m.GetWorkspaceFunc(ctx, userID, companyID)
	}
	return nil, usecase.ErrWorkspaceNotFound
}

func (m *mockWorkspaceUsecase) UpdateSettings(ctx context.Context, userID, companyID uint, name, description string) (*entity.Company, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, userID, companyID, name, description)
	}
	return nil, usecase.ErrForbidden
}

// bindPrincipal simulates the auth middleware for tests.
func bindPrincipal(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	}
}

func TestWorkspaceHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns 201 with the workspace", func(t *testing.T) {
		mockUC := &mockWorkspaceUsecase{
			CreateWorkspaceFunc: func(ctx context.Context, ownerID uint, name, description string) (*entity.Company, error) {
				assert.Equal(t, uint(42), ownerID)
				return &entity.Company{ID: 9, Name: name, Slug: "acme"}, nil
			},
		}
		router := gin.New()
		router.POST("/workspaces", bindPrincipal(42), NewWorkspaceHandler(mockUC).Create)

		body, _ := json.Marshal(gin.H{"name": "Acme"})
		req, _ := http.NewRequest(http.MethodPost, "/workspaces", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(9), resp["id"])
		assert.Equal(t, "owner", resp["role"], "creator should be reported as owner")
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		router := gin.New()
		router.POST("/workspaces", bindPrincipal(42), NewWorkspaceHandler(&mockWorkspaceUsecase{}).Create)

		req, _ := http.NewRequest(http.MethodPost, "/workspaces", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWorkspaceHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockWorkspaceUsecase{
		ListWorkspacesFunc: func(ctx context.Context, userID uint) ([]usecase.WorkspaceRole, error) {
			return []usecase.WorkspaceRole{
				{Company: entity.Company{ID: 1, Name: "Acme", Slug: "acme"}, Role: entity.RoleOwner},
				{Company: entity.Company{ID: 2, Name: "Globex", Slug: "globex"}, Role: entity.RoleMember},
			}, nil
		},
	}
	router := gin.New()
	router.GET("/workspaces", bindPrincipal(1), NewWorkspaceHandler(mockUC).List)

	req, _ := http.NewRequest(http.MethodGet, "/workspaces", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "owner", resp[0]["role"])
	assert.Equal(t, "member", resp[1]["role"])
}

func TestWorkspaceHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("forbidden maps to 403", func(t *testing.T) {
		router := gin.New()
		router.PUT("/workspaces/:id", bindPrincipal(1), NewWorkspaceHandler(&mockWorkspaceUsecase{}).Update)

		body, _ := json.Marshal(gin.H{"name": "New Name"})
		req, _ := http.NewRequest(http.MethodPut, "/workspaces/9", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid workspace id maps to 400", func(t *testing.T) {
		router := gin.New()
		router.PUT("/workspaces/:id", bindPrincipal(1), NewWorkspaceHandler(&mockWorkspaceUsecase{}).Update)

		req, _ := http.NewRequest(http.MethodPut, "/workspaces/zero", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
