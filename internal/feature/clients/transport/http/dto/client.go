// Package dto defines the request and response payloads for the client
// endpoints.
package dto

// ClientReq is the request body for creating or updating a client.
type ClientReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// ClientResponse is the public shape of a client.
type ClientResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}
