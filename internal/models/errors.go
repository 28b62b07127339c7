package models

import "errors"

// Domain error kinds. All are recoverable at the request boundary; the
// transport layer maps them to HTTP status codes with errors.Is.
var (
	// ErrPermissionDenied means the actor lacks rights for the requested transition.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidTransition means the action is not legal from the ad's current status.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAuthenticationRequired means a self-filter was requested without identity.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrInvalidArgument means a malformed listing-type or filter value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means the ad id does not resolve.
	ErrNotFound = errors.New("not found")
)
