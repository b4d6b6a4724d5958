package domain

import "errors"

// Expected outcomes, matched with errors.Is at the HTTP boundary.
// Anything else bubbling out of a repository or adapter is an
// infrastructure failure and maps to a generic server error.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
