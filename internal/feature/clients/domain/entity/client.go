// Package entity defines the client domain model.
package entity

import "time"

// Client is a customer record scoped to a company. Every query against
// this table carries the company filter; a client never leaks across
// tenants.
type Client struct {
	ID        uint   `gorm:"primaryKey"`
	CompanyID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255"`
	Phone     string `gorm:"size:32"`
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
