// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with
	// an email that already exists. Uniqueness is case-insensitive and
	// enforced by the store, not by a pre-check.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrTokenInvalid is returned when a verification or reset token is
	// unknown - including tokens that were already consumed, which are
	// indistinguishable from tokens that never existed.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned when a token exists but its expiry has
	// passed. The boundary is inclusive: a token checked at exactly its
	// expiry is expired.
	ErrTokenExpired = errors.New("token has expired")

	// ErrAlreadyVerified is returned when requesting a verification email
	// for an address that is already verified.
	ErrAlreadyVerified = errors.New("email is already verified")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")
)
