// Package handler provides HTTP handlers for the projects feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspace_backend/internal/api"
	"workspace_backend/internal/feature/projects/domain/entity"
	"workspace_backend/internal/feature/projects/transport/http/dto"
	"workspace_backend/internal/feature/projects/usecase"
	wshandler "workspace_backend/internal/feature/workspace/transport/handler"
	jwtmw "workspace_backend/internal/platform/jwt"
)

// ProjectUsecase defines the project operations used by the handler.
type ProjectUsecase interface {
	Create(ctx context.Context, userID, companyID uint, in usecase.ProjectInput) (*entity.Project, error)
	List(ctx context.Context, userID, companyID uint) ([]entity.Project, error)
	Get(ctx context.Context, userID, companyID, projectID uint) (*entity.Project, error)
	Update(ctx context.Context, userID, companyID, projectID uint, in usecase.ProjectInput) (*entity.Project, error)
	Delete(ctx context.Context, userID, companyID, projectID uint) error
}

// ProjectHandler handles HTTP requests for company-scoped projects.
type ProjectHandler struct {
	projects ProjectUsecase
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create handles POST /workspaces/:id/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	var req dto.ProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), userID, companyID, toInput(req))
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(project))
}

// List handles GET /workspaces/:id/projects.
func (h *ProjectHandler) List(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}

	list, err := h.projects.List(c.Request.Context(), userID, companyID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	out := make([]dto.ProjectResponse, 0, len(list))
	for i := range list {
		out = append(out, *toResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /workspaces/:id/projects/:projectID.
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), userID, companyID, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(project))
}

// Update handles PUT /workspaces/:id/projects/:projectID.
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	var req dto.ProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	project, err := h.projects.Update(c.Request.Context(), userID, companyID, projectID, toInput(req))
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(project))
}

// Delete handles DELETE /workspaces/:id/projects/:projectID.
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), userID, companyID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "project deleted"})
}

func scope(c *gin.Context) (userID, companyID uint, ok bool) {
	userID, ok = jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return 0, 0, false
	}
	companyID, ok = wshandler.CompanyIDParam(c)
	if !ok {
		return 0, 0, false
	}
	return userID, companyID, true
}

func projectIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("projectID"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid project id"})
		return 0, false
	}
	return uint(id), true
}

func toInput(req dto.ProjectReq) usecase.ProjectInput {
	return usecase.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		ClientID:    req.ClientID,
	}
}

func toResponse(project *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		ClientID:    project.ClientID,
	}
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "operation not permitted"})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "project not found"})
	default:
		slog.Error("project operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
