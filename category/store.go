// Package category implements MODULE C: the ordered sequence of
// prototypes and their metadata that an ART engine grows over time.
package category

import (
	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/pattern"
)

// Category is a single learned prototype (spec §3). ID equals its
// position in the Store at creation and is never reused.
type Category struct {
	ID             int
	Weight         pattern.WeightVector
	CreatedAt      uint64
	UpdateCount    int
	LastActivation float64
	Radius         float64 // used by the Hypersphere kernel only
	// Momentum holds per-weight gradient momentum for the
	// ChoiceByDifference kernel only; nil for every other variant.
	Momentum []float64
}

// Store is the bounded, ordered sequence of Category owned by one engine.
type Store struct {
	categories []*Category
	dim        int
	max        int
	clock      uint64
}

// NewStore creates an empty store for weights of dimension dim, capped at
// maxCategories.
func NewStore(dim, maxCategories int) *Store {
	return &Store{dim: dim, max: maxCategories}
}

// Len returns the current category count.
func (s *Store) Len() int { return len(s.categories) }

// Dim returns the configured weight dimension.
func (s *Store) Dim() int { return s.dim }

// Cap returns the configured capacity.
func (s *Store) Cap() int { return s.max }

// At returns the category at position i. Panics if out of range, mirroring
// slice semantics — callers must check against Len first.
func (s *Store) At(i int) *Category { return s.categories[i] }

// All returns the live category slice. Callers must not retain it past a
// Clear.
func (s *Store) All() []*Category { return s.categories }

// Append allocates a new category from weight w, failing with
// CapacityExceeded once the store is full (spec §3 invariant).
func (s *Store) Append(w pattern.WeightVector) (*Category, error) {
	const op = "category.Store.Append"
	if s.max > 0 && len(s.categories) >= s.max {
		return nil, errs.New(errs.CapacityExceeded, op, "store at max_categories")
	}
	s.clock++
	c := &Category{
		ID:             len(s.categories),
		Weight:         w,
		CreatedAt:      s.clock,
		UpdateCount:    0,
		LastActivation: 1.0,
	}
	s.categories = append(s.categories, c)
	return c, nil
}

// Touch records that a category was accepted and updated this cycle.
func (s *Store) Touch(c *Category, activation float64) {
	c.UpdateCount++
	c.LastActivation = activation
}

// Clear empties the store; no Category reference obtained before Clear may
// be used afterward (spec §3).
func (s *Store) Clear() {
	s.categories = nil
	s.clock = 0
}

// Snapshot returns an immutable-by-convention copy of the current category
// pointer slice (not deep copies of the categories or weights) for a parallel
// scorer to read without synchronization. Callers must not mutate the
// returned weights; only the orchestrating Store.Touch/Append calls do.
func (s *Store) Snapshot() []*Category {
	out := make([]*Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Restore repopulates the store from persisted records (as returned by
// persist.LoadSnapshot, applied through engine.Engine.Restore), replacing
// any existing content.
func (s *Store) Restore(records []Category) {
	cats := make([]*Category, len(records))
	var maxClock uint64
	for i := range records {
		r := records[i]
		cats[i] = &r
		cats[i].ID = i
		if r.CreatedAt > maxClock {
			maxClock = r.CreatedAt
		}
	}
	s.categories = cats
	s.clock = maxClock
}
