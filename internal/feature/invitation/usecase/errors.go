package usecase

import "errors"

var (
	// ErrForbidden is returned when the requesting user lacks the invite
	// capability in the invitation's company.
	ErrForbidden = errors.New("operation not permitted")

	// ErrNotFound is returned when no invitation matches the given ID
	// within the given company.
	ErrNotFound = errors.New("invitation not found")

	// ErrInvitationInvalid is returned for tokens that never existed or
	// were already consumed.
	ErrInvitationInvalid = errors.New("invitation token is invalid")

	// ErrInvitationExpired is returned when a pending invitation is past
	// its expiry.
	ErrInvitationExpired = errors.New("invitation has expired")

	// ErrAlreadyAccepted is returned when the invitation was already
	// accepted by someone.
	ErrAlreadyAccepted = errors.New("invitation already accepted")

	// ErrAlreadyCancelled is returned when the invitation was cancelled.
	ErrAlreadyCancelled = errors.New("invitation already cancelled")
)
