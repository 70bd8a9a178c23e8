// Package dto defines data transfer objects for the workspace feature's HTTP transport layer.
package dto

// CreateWorkspaceReq represents the request body for POST /workspaces.
type CreateWorkspaceReq struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateWorkspaceReq represents the request body for PUT /workspaces/:id.
type UpdateWorkspaceReq struct {
	Name        string `json:"name" binding:"omitempty,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// WorkspaceResponse is a single workspace in API responses. Role is the
// requesting user's role and is only set on list responses.
type WorkspaceResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	Role        string `json:"role,omitempty"`
}
