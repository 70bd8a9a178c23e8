// Package entity defines the domain entities for the workspace feature.
package entity

import "time"

// Company is the tenant boundary. Every business resource (client, project,
// file) carries its ID and every read/write is filtered by it.
type Company struct {
	// ID is the unique identifier for the company.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown in workspace lists.
	Name string `gorm:"size:255;not null"`

	// Description is optional free-form text about the workspace.
	Description string `gorm:"type:text"`

	// Slug is the unique human-readable workspace identifier used in URLs.
	Slug string `gorm:"uniqueIndex;size:255;not null"`

	// CreatedAt is the timestamp when the company was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the company was last updated.
	UpdatedAt time.Time
}
