// Package dedupe flags participant names that may refer to the same person.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen names so repeated entries within one event can be
// reported.
type Deduper interface {
	// SeenAndRecord atomically checks if name was seen and records it if not.
	// Returns true if name was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, name string) bool

	// Duplicates returns the names recorded more than once, in first-repeat order.
	Duplicates() []string
}

// inMemoryDeduper implements Deduper with a map guarded by a mutex.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]int // name -> times offered
	repeats []string
}

// NewInMemoryDeduper creates a new in-memory deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]int)}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.seen[name]
	d.seen[name] = n + 1
	switch n {
	case 0:
		return false
	case 1:
		d.repeats = append(d.repeats, name)
	}
	return true
}

func (d *inMemoryDeduper) Duplicates() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.repeats))
	copy(out, d.repeats)
	return out
}
