package repository

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrConflict      = errors.New("participant listed with conflicting age groups")
	ErrMissingColumn = errors.New("roster column not found")
	ErrEmptyName     = errors.New("roster name must not be empty")
)
