package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrInvalidCurve = errors.New("invalid points curve")
	ErrEmptyEventID = errors.New("event id must not be empty")
)
