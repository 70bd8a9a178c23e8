// Package usecase implements the business logic for the workspace feature.
package usecase

import "errors"

var (
	// ErrWorkspaceNotFound is returned when no company matches the given ID or slug.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrNotMember is returned when a user holds no membership in a company.
	ErrNotMember = errors.New("user is not a member of this workspace")

	// ErrAlreadyMember is returned when adding a membership edge that already exists.
	// The composite unique index on (user, company) enforces this in the store.
	ErrAlreadyMember = errors.New("user is already a member of this workspace")

	// ErrForbidden is returned when the principal's role lacks the required capability.
	ErrForbidden = errors.New("operation not permitted for this role")

	// ErrSlugTaken is returned when a workspace slug is already in use.
	ErrSlugTaken = errors.New("workspace slug already taken")
)
