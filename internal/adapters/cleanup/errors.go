package cleanup

import (
	"errors"
	"fmt"
)

// Sentinel kinds for cleanup errors.
var (
	// ErrConfiguration reports that the tables needed by a format were not
	// supplied, e.g. neither a combined nor a men/women pair.
	ErrConfiguration = errors.New("cleanup configuration error")
	// ErrUnsupportedInput reports that no rule exists for the format or year.
	ErrUnsupportedInput = errors.New("unsupported cleanup input")
	// ErrDataShape reports a missing column, row or unparsable cell.
	ErrDataShape = errors.New("unexpected result table shape")
)

// EventError attaches the event being cleaned to an error.
type EventError struct {
	EventID string
	Year    int
	Format  Format
	Err     error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("event %s (%d, %s): %v", e.EventID, e.Year, e.Format, e.Err)
}

func (e *EventError) Unwrap() error { return e.Err }
