// Package artmap implements MODULE F/G: supervised classification by
// pairing two engine.Engine instances (A-side, B-side) through a
// many-to-one MapField, with vigilance-escalating match-tracking.
package artmap

import "sync"

// MapField is spec §3's MapField M: A-category id -> B-category id,
// many-to-one (a Go map already forbids one A-id from holding two
// entries simultaneously; reassignment is the caller's — ARTMAP's —
// responsibility under the match-tracking protocol).
type MapField struct {
	mu sync.Mutex
	m  map[int]int
}

// NewMapField creates an empty map-field.
func NewMapField() *MapField {
	return &MapField{m: make(map[int]int)}
}

// Get returns the B-id mapped from A-id a, if any.
func (mf *MapField) Get(a int) (int, bool) {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	b, ok := mf.m[a]
	return b, ok
}

// Set records a -> b, overwriting any prior entry for a.
func (mf *MapField) Set(a, b int) {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	mf.m[a] = b
}

// Len returns the number of A-ids with a mapping.
func (mf *MapField) Len() int {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	return len(mf.m)
}

// Pairs returns a snapshot copy of the current a->b mapping.
func (mf *MapField) Pairs() map[int]int {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	out := make(map[int]int, len(mf.m))
	for k, v := range mf.m {
		out[k] = v
	}
	return out
}

// Clear empties the map-field.
func (mf *MapField) Clear() {
	mf.mu.Lock()
	defer mf.mu.Unlock()
	mf.m = make(map[int]int)
}
