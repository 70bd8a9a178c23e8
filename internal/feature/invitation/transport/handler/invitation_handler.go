// Package handler provides HTTP handlers for the invitation feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"workspace_backend/internal/api"
	"workspace_backend/internal/feature/invitation/domain/entity"
	"workspace_backend/internal/feature/invitation/transport/http/dto"
	"workspace_backend/internal/feature/invitation/usecase"
	wshandler "workspace_backend/internal/feature/workspace/transport/handler"
	jwtmw "workspace_backend/internal/platform/jwt"
)

// InvitationUsecase defines the invitation operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type InvitationUsecase interface {
	Create(ctx context.Context, inviterID, companyID uint, email string) (*entity.Invitation, bool, error)
	Accept(ctx context.Context, tokenValue string, principalID *uint) (*usecase.AcceptResult, error)
	Cancel(ctx context.Context, requestingUserID, companyID, invitationID uint) error
	Resend(ctx context.Context, requestingUserID, companyID, invitationID uint) (*entity.Invitation, bool, error)
	ListPending(ctx context.Context, requestingUserID, companyID uint) ([]entity.Invitation, error)
}

// InvitationHandler handles HTTP requests for invitation management and
// acceptance.
type InvitationHandler struct {
	invitations InvitationUsecase
	now         func() time.Time
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitations InvitationUsecase) *InvitationHandler {
	return &InvitationHandler{invitations: invitations, now: time.Now}
}

// Create handles POST /workspaces/:id/invitations.
func (h *InvitationHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	companyID, ok := wshandler.CompanyIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	inv, delivered, err := h.invitations.Create(c.Request.Context(), userID, companyID, req.Email)
	if err != nil {
		h.respondManagementError(c, err, userID, companyID)
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(inv, &delivered))
}

// List handles GET /workspaces/:id/invitations.
func (h *InvitationHandler) List(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	companyID, ok := wshandler.CompanyIDParam(c)
	if !ok {
		return
	}

	list, err := h.invitations.ListPending(c.Request.Context(), userID, companyID)
	if err != nil {
		h.respondManagementError(c, err, userID, companyID)
		return
	}

	out := make([]dto.InvitationResponse, 0, len(list))
	for i := range list {
		out = append(out, *h.toResponse(&list[i], nil))
	}
	c.JSON(http.StatusOK, out)
}

// Cancel handles DELETE /workspaces/:id/invitations/:invitationID.
func (h *InvitationHandler) Cancel(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	companyID, ok := wshandler.CompanyIDParam(c)
	if !ok {
		return
	}
	invitationID, ok := invitationIDParam(c)
	if !ok {
		return
	}

	if err := h.invitations.Cancel(c.Request.Context(), userID, companyID, invitationID); err != nil {
		h.respondManagementError(c, err, userID, companyID)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "invitation cancelled"})
}

// Resend handles POST /workspaces/:id/invitations/:invitationID/resend.
func (h *InvitationHandler) Resend(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	companyID, ok := wshandler.CompanyIDParam(c)
	if !ok {
		return
	}
	invitationID, ok := invitationIDParam(c)
	if !ok {
		return
	}

	inv, delivered, err := h.invitations.Resend(c.Request.Context(), userID, companyID, invitationID)
	if err != nil {
		h.respondManagementError(c, err, userID, companyID)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(inv, &delivered))
}

// Accept handles POST /invitations/accept. The route carries OptionalAuth:
// a principal is used when present, its absence is a signal, not an error.
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req dto.AcceptInvitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	var principal *uint
	if userID, ok := jwtmw.PrincipalID(c); ok {
		principal = &userID
	}

	res, err := h.invitations.Accept(c.Request.Context(), req.Token, principal)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvitationInvalid), errors.Is(err, usecase.ErrInvitationExpired):
			// One neutral message: lifecycle state is not leaked to holders
			// of dead tokens.
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invitation is invalid or has expired"})
		case errors.Is(err, usecase.ErrAlreadyAccepted):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "invitation already accepted"})
		case errors.Is(err, usecase.ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "invitation already cancelled"})
		default:
			slog.Error("invitation acceptance failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AcceptInvitationResponse{
		Status:    string(res.Outcome),
		CompanyID: res.CompanyID,
	})
}

func (h *InvitationHandler) respondManagementError(c *gin.Context, err error, userID, companyID uint) {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "operation not permitted"})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "invitation not found"})
	case errors.Is(err, usecase.ErrAlreadyAccepted):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "invitation already accepted"})
	case errors.Is(err, usecase.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "invitation already cancelled"})
	case errors.Is(err, usecase.ErrInvitationExpired):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "invitation has expired"})
	default:
		slog.Error("invitation operation failed", "error", err, "user_id", userID, "company_id", companyID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// toResponse renders an invitation with its observed status.
func (h *InvitationHandler) toResponse(inv *entity.Invitation, delivered *bool) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      string(inv.Role),
		Status:    string(inv.EffectiveStatus(h.now())),
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
		Delivered: delivered,
	}
}

func invitationIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("invitationID"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid invitation id"})
		return 0, false
	}
	return uint(id), true
}
