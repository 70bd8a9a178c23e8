// Package api defines response envelope types shared by all HTTP handlers.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for successful requests
// that carry no payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenPairResponse is the JSON body returned by login and refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
