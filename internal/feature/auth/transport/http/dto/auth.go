// Package dto defines the request payloads for the auth endpoints.
package dto

// SignupReq is the request body for POST /signup.
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq is the request body for POST /login.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq is the request body for POST /refresh.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutReq is the request body for POST /logout.
type LogoutReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// VerifyEmailReq is the request body for POST /verify-email.
type VerifyEmailReq struct {
	Token string `json:"token" binding:"required"`
}

// ForgotPasswordReq is the request body for POST /forgot-password.
type ForgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordReq is the request body for POST /reset-password.
type ResetPasswordReq struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse is the public shape of a user account.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}
