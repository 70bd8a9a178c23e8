// Package dto defines the response payloads for the file endpoints.
// Uploads arrive as multipart form data, so there is no JSON request
// body to bind.
package dto

import "time"

// FileResponse is the public shape of a stored file. URL is a presigned
// download link and is only populated on list responses.
type FileResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	URL         string    `json:"url,omitempty"`
}
