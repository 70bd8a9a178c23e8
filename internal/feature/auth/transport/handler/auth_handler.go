// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"workspace_backend/internal/api"
	"workspace_backend/internal/feature/auth/domain/entity"
	"workspace_backend/internal/feature/auth/transport/http/dto"
	"workspace_backend/internal/feature/auth/usecase"
	jwtmw "workspace_backend/internal/platform/jwt"
)

// AuthUsecase defines the auth operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, email, password string) (*entity.User, error)
	ResendVerification(ctx context.Context, userID uint) error
	CompleteVerification(ctx context.Context, tokenValue string) error
	BeginPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, tokenValue, newPassword string) error
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error)
	Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler handles HTTP requests for registration, verification,
// password reset and sessions.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already registered"})
			return
		}
		slog.Error("signup failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create account"})
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, dto.UserResponse{ID: user.ID, Email: user.Email, Verified: user.Verified()})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	access, refresh, err := h.auth.Login(c.Request.Context(), req.Email, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, api.TokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

// Refresh handles POST /refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	access, refresh, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSessionNotFound),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
		default:
			slog.Error("token refresh failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to refresh token"})
		}
		return
	}

	c.JSON(http.StatusOK, api.TokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		slog.Error("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}

// VerifyEmail handles POST /verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.auth.CompleteVerification(c.Request.Context(), req.Token); err != nil {
		respondTokenError(c, err, "email verification failed")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "email verified"})
}

// ResendVerification handles POST /resend-verification. Requires auth.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	userID, ok := jwtmw.PrincipalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	if err := h.auth.ResendVerification(c.Request.Context(), userID); err != nil {
		if errors.Is(err, usecase.ErrAlreadyVerified) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already verified"})
			return
		}
		slog.Error("verification resend failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to resend verification"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "verification email sent"})
}

// ForgotPassword handles POST /forgot-password. The response shape does not
// depend on whether the account exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.auth.BeginPasswordReset(c.Request.Context(), req.Email); err != nil {
		slog.Error("password reset request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to process request"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "if the account exists, a reset email has been sent"})
}

// ResetPassword handles POST /reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.auth.CompletePasswordReset(c.Request.Context(), req.Token, req.Password); err != nil {
		respondTokenError(c, err, "password reset failed")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password updated"})
}

func respondTokenError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrTokenInvalid):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or already used token"})
	case errors.Is(err, usecase.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "token has expired"})
	default:
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
