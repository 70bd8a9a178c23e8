// Package handler provides HTTP handlers for the clients feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspace_backend/internal/api"
	"workspace_backend/internal/feature/clients/domain/entity"
	"workspace_backend/internal/feature/clients/transport/http/dto"
	"workspace_backend/internal/feature/clients/usecase"
	wshandler "workspace_backend/internal/feature/workspace/transport/handler"
	jwtmw "workspace_backend/internal/platform/jwt"
)

// ClientUsecase defines the client operations used by the handler.
type ClientUsecase interface {
	Create(ctx context.Context, userID, companyID uint, in usecase.ClientInput) (*entity.Client, error)
	List(ctx context.Context, userID, companyID uint) ([]entity.Client, error)
	Get(ctx context.Context, userID, companyID, clientID uint) (*entity.Client, error)
	Update(ctx context.Context, userID, companyID, clientID uint, in usecase.ClientInput) (*entity.Client, error)
	Delete(ctx context.Context, userID, companyID, clientID uint) error
}

// ClientHandler handles HTTP requests for company-scoped clients.
type ClientHandler struct {
	clients ClientUsecase
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clients ClientUsecase) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// Create handles POST /workspaces/:id/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	var req dto.ClientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	client, err := h.clients.Create(c.Request.Context(), userID, companyID, toInput(req))
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(client))
}

// List handles GET /workspaces/:id/clients.
func (h *ClientHandler) List(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}

	list, err := h.clients.List(c.Request.Context(), userID, companyID)
	if err != nil {
		respondClientError(c, err)
		return
	}

	out := make([]dto.ClientResponse, 0, len(list))
	for i := range list {
		out = append(out, *toResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /workspaces/:id/clients/:clientID.
func (h *ClientHandler) Get(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), userID, companyID, clientID)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(client))
}

// Update handles PUT /workspaces/:id/clients/:clientID.
func (h *ClientHandler) Update(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}
	var req dto.ClientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	client, err := h.clients.Update(c.Request.Context(), userID, companyID, clientID, toInput(req))
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(client))
}

// Delete handles DELETE /workspaces/:id/clients/:clientID.
func (h *ClientHandler) Delete(c *gin.Context) {
	userID, companyID, ok := scope(c)
	if !ok {
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), userID, companyID, clientID); err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "client deleted"})
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

func clientIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("clientID"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid client id"})
		return 0, false
	}
	return uint(id), true
}

func toInput(req dto.ClientReq) usecase.ClientInput {
	return usecase.ClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	}
}

func toResponse(client *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:    client.ID,
		Name:  client.Name,
		Email: client.Email,
		Phone: client.Phone,
		Notes: client.Notes,
	}
}

func respondClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "operation not permitted"})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "client not found"})
	default:
		slog.Error("client operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
