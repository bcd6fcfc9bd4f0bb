// Package repository holds static participant data such as the age-group roster.
package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/rbrseries/internal/adapters/reader"
	"github.com/okian/rbrseries/internal/domain/model"
)

// Roster is an in-memory age-group table keyed by normalized name.
type Roster struct {
	mu     sync.RWMutex
	groups map[string]string

	nameColumn  string
	groupColumn string
}

// NewRoster creates an empty roster.
func NewRoster(opts ...Option) *Roster {
	r := &Roster{
		groups:      make(map[string]string),
		nameColumn:  DefaultNameColumn,
		groupColumn: DefaultGroupColumn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add records a participant's age group. Listing the same name again with
// the same group is a no-op; with another group it is ErrConflict.
func (r *Roster) Add(_ context.Context, name, group string) error {
	key := model.NormalizeName(name)
	if key == "" {
		return ErrEmptyName
	}
	group = strings.TrimSpace(group)

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.groups[key]; ok && prev != group {
		return fmt.Errorf("%w: %q is %q and %q", ErrConflict, key, prev, group)
	}
	r.groups[key] = group
	return nil
}

// Load adds every row of a table whose first row is the header. Rows with a
// blank name are skipped.
func (r *Roster) Load(ctx context.Context, t *reader.Table) error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrMissingColumn, t.Source)
	}
	nameCol, err := columnIndex(t.Rows[0], r.nameColumn)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Source, err)
	}
	groupCol, err := columnIndex(t.Rows[0], r.groupColumn)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Source, err)
	}

	for i := 1; i < len(t.Rows); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := t.Cell(i, nameCol)
		if strings.TrimSpace(name) == "" {
			continue
		}
		if err := r.Add(ctx, name, t.Cell(i, groupCol)); err != nil {
			return fmt.Errorf("%s row %d: %w", t.Source, i+1, err)
		}
	}
	return nil
}

// AgeGroup implements standings.AgeGroupLookup. A blank group counts as absent.
func (r *Roster) AgeGroup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[name]
	return g, ok && g != ""
}

// Count returns the number of participants in the roster.
func (r *Roster) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}
