package models

import "errors"

// Sentinel errors shared by all services. Callers match with errors.Is.
var (
	// ErrNotFound is returned when a required record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference is returned when a message links to a meetup
	// that does not belong to the same match.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidTransition is returned when a meetup status change is not
	// permitted from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPermissionDenied is returned when a user acts on a match they are
	// not a member of, or targets a user covered by a block.
	ErrPermissionDenied = errors.New("permission denied")
)
