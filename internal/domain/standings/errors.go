package standings

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrDuplicateEntry = errors.New("participant listed more than once in event")
	ErrDuplicateEvent = errors.New("event supplied more than once")
	ErrEmptyEventID   = errors.New("event table has no id")
)
