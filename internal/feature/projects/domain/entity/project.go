// Package entity defines the project domain model.
package entity

import "time"

// Project statuses.
const (
	StatusActive   = "active"
	StatusOnHold   = "on_hold"
	StatusDone     = "done"
	StatusArchived = "archived"
)

// Project is a unit of work scoped to a company, optionally attached to
// one of the company's clients.
type Project struct {
	ID          uint   `gorm:"primaryKey"`
	CompanyID   uint   `gorm:"not null;index"`
	ClientID    *uint  `gorm:"index"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:16;not null;default:active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusOnHold, StatusDone, StatusArchived:
		return true
	}
	return false
}
