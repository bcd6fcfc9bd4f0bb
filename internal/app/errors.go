package service

import "errors"

var (
	// ErrNilManifest is returned when no season manifest is supplied.
	ErrNilManifest = errors.New("nil manifest")
	// ErrDuplicateName is returned in strict mode when a name appears twice
	// in one event's results.
	ErrDuplicateName = errors.New("duplicate name in event")
)
