package usecase

import "errors"

var (
	// ErrForbidden is returned when the requesting user is not a member
	// of the company.
	ErrForbidden = errors.New("operation not permitted")

	// ErrNotFound is returned when no file matches the ID within the
	// company.
	ErrNotFound = errors.New("file not found")
)
