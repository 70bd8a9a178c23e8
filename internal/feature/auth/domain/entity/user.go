// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"workspace_backend/internal/platform/token"
)

// User represents a registered user in the system.
// Emails are stored lower-cased so the unique index enforces
// case-insensitive uniqueness at the store level.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users (case-insensitively).
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// EmailVerifiedAt is set exactly once, when the verification token is
	// consumed. Nil means the address is unverified.
	EmailVerifiedAt *time.Time

	// VerificationToken and VerificationTokenExpiresAt are a paired column
	// set: both present while a verification is outstanding, both nil
	// otherwise. Issuing a new token replaces any prior value.
	VerificationToken          *string `gorm:"uniqueIndex;size:64"`
	VerificationTokenExpiresAt *time.Time

	// ResetPasswordToken and ResetPasswordTokenExpiresAt follow the same
	// pairing rule for the password reset flow.
	ResetPasswordToken          *string `gorm:"uniqueIndex;size:64"`
	ResetPasswordTokenExpiresAt *time.Time

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// Verified reports whether the user's email address has been verified.
func (u *User) Verified() bool {
	return u.EmailVerifiedAt != nil
}

// VerificationExpired reports whether the outstanding verification token is
// past its expiry at instant now. False when no token is outstanding.
func (u *User) VerificationExpired(now time.Time) bool {
	if u.VerificationTokenExpiresAt == nil {
		return false
	}
	return token.Expired(*u.VerificationTokenExpiresAt, now)
}

// ResetExpired reports whether the outstanding reset token is past its
// expiry at instant now. False when no token is outstanding.
func (u *User) ResetExpired(now time.Time) bool {
	if u.ResetPasswordTokenExpiresAt == nil {
		return false
	}
	return token.Expired(*u.ResetPasswordTokenExpiresAt, now)
}
