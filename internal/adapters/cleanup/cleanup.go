// Package cleanup turns raw event exports into clean participant results.
//
// Each supported export layout is a Format mapped to a Handler in a Registry.
// Every handler produces the same Result shape, so the scoring core never
// sees layout details.
package cleanup

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/okian/rbrseries/internal/adapters/reader"
	"github.com/okian/rbrseries/internal/domain/model"
)

// Input is everything a handler needs to clean one event.
type Input struct {
	EventID string
	Name    string
	Year    int

	// All is a combined export; Men and Women are gender-separated ones.
	All, Men, Women *reader.Table

	// HeaderRow is the 0-based row holding column names.
	HeaderRow  int
	FooterRows int
	Columns    Columns

	// Categories overrides the built-in category lists for the year.
	Categories Categories
}

// Result holds the cleaned rows of one event per division.
type Result struct {
	Divisions map[model.Division][]model.ParticipantResult
	Warnings  []string
}

// DivisionList returns the divisions present, in a stable order.
func (r Result) DivisionList() []model.Division {
	return slices.Sorted(maps.Keys(r.Divisions))
}

// Handler cleans one export layout.
type Handler interface {
	Clean(ctx context.Context, in Input) (Result, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, in Input) (Result, error)

// Clean implements Handler.
func (f HandlerFunc) Clean(ctx context.Context, in Input) (Result, error) { return f(ctx, in) }

// Registry maps formats to handlers.
type Registry struct {
	handlers map[Format]Handler
}

// NewRegistry creates a registry with every built-in handler.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[Format]Handler)}
	r.Register(FormatPlain, PlainHandler{})
	r.Register(FormatSplitOverall, SplitOverallHandler{})
	r.Register(FormatCategoryBlocks, CategoryBlocksHandler{})
	r.Register(FormatPending, PendingHandler{})
	return r
}

// Register adds or replaces the handler for f.
func (r *Registry) Register(f Format, h Handler) {
	r.handlers[f] = h
}

// Clean runs the handler registered for f. Errors are wrapped in an
// EventError naming the event.
func (r *Registry) Clean(ctx context.Context, f Format, in Input) (Result, error) {
	wrap := func(err error) error {
		return &EventError{EventID: in.EventID, Year: in.Year, Format: f, Err: err}
	}

	h, ok := r.handlers[f]
	if !ok {
		return Result{}, wrap(fmt.Errorf("%w: no handler for format %q", ErrUnsupportedInput, f))
	}
	if err := ctx.Err(); err != nil {
		return Result{}, wrap(err)
	}
	res, err := h.Clean(ctx, in)
	if err != nil {
		return Result{}, wrap(err)
	}
	return res, nil
}
