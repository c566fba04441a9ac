// Package collision tracks array and field names written into one file and reports repeats.
package collision

import (
	"slices"

	"github.com/arloliu/posefile/internal/hash"
)

// Tracker records names in first-seen order and detects repeated names.
//
// Names are keyed by their xxHash64 ID. Different names that share an ID are kept apart
// and flag a hash collision, which only matters for callers that persist the IDs.
type Tracker struct {
	ids          map[uint64][]string // ID → distinct names with that ID
	names        []string            // distinct names, first-seen order
	duplicates   []string            // names seen more than once, first repeat order
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:   make(map[uint64][]string),
		names: make([]string, 0),
	}
}

// Track records name and reports whether it was tracked before.
func (t *Tracker) Track(name string) bool {
	id := hash.ID(name)

	existing := t.ids[id]
	if slices.Contains(existing, name) {
		if !slices.Contains(t.duplicates, name) {
			t.duplicates = append(t.duplicates, name)
		}

		return true
	}

	if len(existing) > 0 {
		t.hasCollision = true
	}

	t.ids[id] = append(existing, name)
	t.names = append(t.names, name)

	return false
}

// HasCollision reports whether two distinct names produced the same ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the distinct names in first-seen order.
func (t *Tracker) Names() []string {
	return t.names
}

// Duplicates returns the names tracked more than once.
func (t *Tracker) Duplicates() []string {
	return t.duplicates
}

// Count returns the number of distinct names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked names and collision state, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.ids)
	t.names = t.names[:0]
	t.duplicates = t.duplicates[:0]
	t.hasCollision = false
}

// Duplicates returns the names that occur more than once in names, in first repeat order.
func Duplicates(names []string) []string {
	t := NewTracker()
	for _, name := range names {
		t.Track(name)
	}

	return t.Duplicates()
}
