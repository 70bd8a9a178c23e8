// Package handler provides HTTP handlers for the files feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspace_backend/internal/api"
	"workspace_backend/internal/feature/files/domain/entity"
	"workspace_backend/internal/feature/files/transport/http/dto"
	"workspace_backend/internal/feature/files/usecase"
	wshandler "workspace_backend/internal/feature/workspace/transport/handler"
	jwtmw "workspace_backend/internal/platform/jwt"
)

// maxUploadBytes bounds a single multipart upload.
const maxUploadBytes = 32 << 20

// FileUsecase defines the file operations used by the handler.
type FileUsecase interface {
	Upload(ctx context.Context, userID, companyID uint, in usecase.Upload) (*entity.File, error)
	List(ctx context.Context, userID, companyID uint) ([]usecase.FileWithURL, error)
	Delete(ctx context.Context, userID, companyID, fileID uint) error
}

// FileHandler handles HTTP requests for company-scoped files.
type FileHandler struct {
	files FileUsecase
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files FileUsecase) *FileHandler {
	return &FileHandler{files: files}
}

// Upload handles POST /workspaces/:id/files. The payload is the "file"
// part of a multipart form.
func (h *FileHandler) Upload(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "a file part is required"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "file is too large"})
		return
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "could not read uploaded file"})
		return
	}
	defer src.Close()

	file, err := h.files.Upload(c.Request.Context(), userID, companyID, usecase.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        src,
	})
	if err != nil {
		respondFileError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(file, ""))
}

// List handles GET /workspaces/:id/files.
func (h *FileHandler) List(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}

	list, err := h.files.List(c.Request.Context(), userID, companyID)
	if err != nil {
		respondFileError(c, err)
		return
	}

	out := make([]dto.FileResponse, 0, len(list))
	for i := range list {
		out = append(out, *toResponse(&list[i].File, list[i].URL))
	}
	c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /workspaces/:id/files/:fileID.
func (h *FileHandler) Delete(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	fileID, ok := fileIDParam(c)
	if !ok {
		return
	}

	if err := h.files.Delete(c.Request.Context(), userID, companyID, fileID); err != nil {
		respondFileError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "file deleted"})
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

func fileIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("fileID"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid file id"})
		return 0, false
	}
	return uint(id), true
}

func toResponse(file *entity.File, url string) *dto.FileResponse {
	return &dto.FileResponse{
		ID:          file.ID,
		Name:        file.Name,
		ContentType: file.ContentType,
		Size:        file.Size,
		UploadedAt:  file.CreatedAt,
		URL:         url,
	}
}

func respondFileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "operation not permitted"})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "file not found"})
	default:
		slog.Error("file operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
