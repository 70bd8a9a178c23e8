// Package dto defines the request and response payloads for the project
// endpoints.
package dto

// ProjectReq is the request body for creating or updating a project.
type ProjectReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=active on_hold done archived"`
	ClientID    *uint  `json:"client_id"`
}

// ProjectResponse is the public shape of a project.
type ProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ClientID    *uint  `json:"client_id,omitempty"`
}
