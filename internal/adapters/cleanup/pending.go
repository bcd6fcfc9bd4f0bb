package cleanup

import (
	"context"
	"fmt"
)

// PendingHandler stands in for events whose export layout has no rule yet.
// The event contributes no rows and a warning is returned.
type PendingHandler struct{}

// Clean implements Handler.
func (PendingHandler) Clean(_ context.Context, in Input) (Result, error) {
	name := in.Name
	if name == "" {
		name = in.EventID
	}
	return Result{
		Warnings: []string{fmt.Sprintf("cleanup for event %q is not implemented yet; it contributes no results", name)},
	}, nil
}
