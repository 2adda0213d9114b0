package domain

import "errors"

// Error kinds surfaced by repos and services. Handlers map each kind to a
// distinct HTTP status; nothing is coerced into a generic failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	// ErrProtected signals a delete blocked by a referencing row.
	ErrProtected = errors.New("referenced by other records")
)
