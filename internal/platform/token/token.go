// Package token issues the opaque single-use credentials embedded in
// outbound email links (verification, password reset, invitations).
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Kind identifies what a token authorizes. Each kind has its own TTL.
type Kind string

const (
	KindVerification  Kind = "verification"
	KindPasswordReset Kind = "password_reset"
	KindInvitation    Kind = "invitation"
)

const (
	// DefaultVerificationTTL is the lifetime of email verification tokens.
	DefaultVerificationTTL = 24 * time.Hour

	// DefaultPasswordResetTTL is deliberately short: reset links grant
	// account takeover to whoever holds them.
	DefaultPasswordResetTTL = 1 * time.Hour

	// DefaultInvitationTTL is the lifetime of workspace invitations.
	DefaultInvitationTTL = 7 * 24 * time.Hour
)

// valueBytes is the entropy per token. 32 random bytes encode to a
// 64-character hex string.
const valueBytes = 32

// Issuer mints tokens with per-kind TTLs.
type Issuer struct {
	ttls map[Kind]time.Duration
	now  func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithTTL overrides the TTL for a kind.
func WithTTL(kind Kind, ttl time.Duration) Option {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttls[kind] = ttl
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates an Issuer with the default TTLs.
func NewIssuer(opts ...Option) *Issuer {
	i := &Issuer{
		ttls: map[Kind]time.Duration{
			KindVerification:  DefaultVerificationTTL,
			KindPasswordReset: DefaultPasswordResetTTL,
			KindInvitation:    DefaultInvitationTTL,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue generates a new token value and its absolute expiry for the kind.
func (i *Issuer) Issue(kind Kind) (string, time.Time, error) {
	ttl, ok := i.ttls[kind]
	if !ok {
		return "", time.Time{}, fmt.Errorf("unknown token kind %q", kind)
	}
	value, err := NewValue()
	if err != nil {
		return "", time.Time{}, err
	}
	return value, i.now().Add(ttl), nil
}

// TTL returns the configured lifetime for a kind.
func (i *Issuer) TTL(kind Kind) time.Duration {
	return i.ttls[kind]
}

// NewValue returns a 64-character hex string from crypto/rand.
// Session IDs reuse this generator.
func NewValue() (string, error) {
	b := make([]byte, valueBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Expired reports whether a token with the given expiry is no longer
// valid at instant now. The boundary is inclusive: a token checked at
// exactly its expiry is expired.
func Expired(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt)
}
