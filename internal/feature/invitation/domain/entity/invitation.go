// Package entity defines the invitation domain model.
package entity

import (
	"time"

	wsentity "workspace_backend/internal/feature/workspace/domain/entity"
	"workspace_backend/internal/platform/token"
)

// Status is the stored lifecycle state of an invitation.
//
// Accepted and cancelled are terminal. Expiry is not a stored status: a
// pending row past its expiry reads as expired without being rewritten,
// so the stored value may still say pending until somebody looks.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCancelled Status = "cancelled"

	// StatusExpired is only ever produced by EffectiveStatus, never stored.
	StatusExpired Status = "expired"
)

// Invitation is a pending offer of membership in a company, addressed to
// an email rather than a user so it can precede registration.
type Invitation struct {
	ID        uint          `gorm:"primaryKey"`
	Email     string        `gorm:"size:255;not null;index"`
	CompanyID uint          `gorm:"not null;index"`
	InviterID uint          `gorm:"not null"`
	Role      wsentity.Role `gorm:"size:16;not null"`
	Status    Status        `gorm:"size:16;not null;default:pending;index"`
	Token     *string       `gorm:"size:64;uniqueIndex"`
	ExpiresAt time.Time     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether a still-pending invitation has run out. The
// expiry instant itself counts as expired.
func (i *Invitation) IsExpired(now time.Time) bool {
	return i.Status == StatusPending && token.Expired(i.ExpiresAt, now)
}

// IsTerminal reports whether the stored status can no longer change.
func (i *Invitation) IsTerminal() bool {
	return i.Status == StatusAccepted || i.Status == StatusCancelled
}

// EffectiveStatus is the status as an observer at the given instant sees
// it, with lazy expiry applied.
func (i *Invitation) EffectiveStatus(now time.Time) Status {
	if i.IsExpired(now) {
		return StatusExpired
	}
	return i.Status
}
