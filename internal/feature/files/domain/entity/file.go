// Package entity defines the file domain model.
package entity

import "time"

// File is the metadata row for an object stored in the company's bucket
// prefix. The bytes live in object storage; this row is what listings
// and authorization work against.
type File struct {
	ID          uint   `gorm:"primaryKey"`
	CompanyID   uint   `gorm:"not null;index"`
	UploaderID  uint   `gorm:"not null"`
	Name        string `gorm:"size:255;not null"`
	ObjectKey   string `gorm:"size:512;not null;uniqueIndex"`
	ContentType string `gorm:"size:128"`
	Size        int64  `gorm:"not null"`
	CreatedAt   time.Time
}
