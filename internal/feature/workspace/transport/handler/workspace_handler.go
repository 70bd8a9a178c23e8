// Package handler provides HTTP handlers for the workspace feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspace_backend/internal/api"
	"workspace_backend/internal/feature/workspace/domain/entity"
	"workspace_backend/internal/feature/workspace/transport/http/dto"
	"workspace_backend/internal/feature/workspace/usecase"
	jwtmw "workspace_backend/internal/platform/jwt"
)

// WorkspaceUsecase defines the workspace operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WorkspaceUsecase interface {
	CreateWorkspace(ctx context.Context, ownerID uint, name, description string) (*entity.Company, error)
	ListWorkspaces(ctx context.Context, userID uint) ([]usecase.WorkspaceRole, error)
	GetWorkspace(ctx context.Context, userID, companyID uint) (*entity.Company, error)
	UpdateSettings(ctx context.Context, userID, companyID uint, name, description string) (*entity.Company, error)
}

// WorkspaceHandler handles HTTP requests for workspace management.
type WorkspaceHandler struct {
	workspaces WorkspaceUsecase
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaces WorkspaceUsecase) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

// Create handles POST /workspaces.
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.CreateWorkspaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	company, err := h.workspaces.CreateWorkspace(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		slog.Error("workspace creation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create workspace"})
		return
	}

	slog.Info("workspace created", "company_id", company.ID, "slug", company.Slug, "owner_id", userID)
	c.JSON(http.StatusCreated, toResponse(company, entity.RoleOwner))
}

// List handles GET /workspaces.
func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	list, err := h.workspaces.ListWorkspaces(c.Request.Context(), userID)
	if err != nil {
		slog.Error("workspace listing failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list workspaces"})
		return
	}

	out := make([]dto.WorkspaceResponse, 0, len(list))
	for _, wr := range list {
		out = append(out, *toResponse(&wr.Company, wr.Role))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /workspaces/:id.
func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	companyID, ok := CompanyIDParam(c)
	if !ok {
		return
	}

	company, err := h.workspaces.GetWorkspace(c.Request.Context(), userID, companyID)
	if err != nil {
		respondWorkspaceError(c, err, userID, companyID)
		return
	}
	c.JSON(http.StatusOK, toResponse(company, ""))
}

// Update handles PUT /workspaces/:id.
func (h *WorkspaceHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	companyID, ok := CompanyIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	company, err := h.workspaces.UpdateSettings(c.Request.Context(), userID, companyID, req.Name, req.Description)
	if err != nil {
		respondWorkspaceError(c, err, userID, companyID)
		return
	}

	slog.Info("workspace settings updated", "company_id", companyID, "user_id", userID)
	c.JSON(http.StatusOK, toResponse(company, ""))
}

// CompanyIDParam parses the :id route parameter, writing a 400 on failure.
// Shared by every tenant-scoped handler.
func CompanyIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid workspace id"})
		return 0, false
	}
	return uint(id), true
}

func toResponse(company *entity.Company, role entity.Role) *dto.WorkspaceResponse {
	return &dto.WorkspaceResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Slug:        company.Slug,
		Role:        string(role),
	}
}

func respondWorkspaceError(c *gin.Context, err error, userID, companyID uint) {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "operation not permitted"})
	case errors.Is(err, usecase.ErrWorkspaceNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "workspace not found"})
	default:
		slog.Error("workspace operation failed", "error", err, "user_id", userID, "company_id", companyID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
