// Package dto defines the request and response payloads for the
// invitation endpoints.
package dto

import "time"

// CreateInvitationReq is the request body for POST /workspaces/:id/invitations.
type CreateInvitationReq struct {
	Email string `json:"email" binding:"required,email"`
}

// AcceptInvitationReq is the request body for POST /invitations/accept.
type AcceptInvitationReq struct {
	Token string `json:"token" binding:"required"`
}

// InvitationResponse is the admin-facing shape of an invitation. Status
// carries the observed state, so a lapsed pending row reads "expired".
type InvitationResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Delivered *bool     `json:"delivered,omitempty"`
}

// AcceptInvitationResponse tells the client how to proceed.
type AcceptInvitationResponse struct {
	Status    string `json:"status"` // accepted, requires_auth, requires_registration
	CompanyID uint   `json:"company_id"`
}
