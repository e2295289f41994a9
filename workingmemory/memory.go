// Package workingmemory implements MODULE J: a bounded working-memory
// sequence with a primacy gradient, and a masking field that chunks it
// via competitive shunting dynamics across three preferred-size scales.
package workingmemory

import (
	"math"

	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/pattern"
)

// Item is spec §3's working-memory entry: a pattern, its primacy-decayed
// strength, its ordinal insertion position, and the logical time it was
// inserted.
type Item struct {
	Pattern  pattern.Pattern
	Strength float64
	Position int
	Time     uint64
}

// Memory is spec §3's WorkingMemory W: a bounded ordered sequence with a
// monotonically decreasing primacy gradient (strength ~ gamma^position).
type Memory struct {
	items    []Item
	capacity int
	gamma    float64
	clock    uint64
}

// New creates a Memory bounded at capacity with primacy decay gamma in
// (0,1).
func New(capacity int, gamma float64) (*Memory, error) {
	const op = "workingmemory.New"
	if capacity <= 0 {
		return nil, errs.New(errs.InvalidParameters, op, "capacity must be positive")
	}
	if gamma <= 0 || gamma >= 1 {
		return nil, errs.New(errs.InvalidParameters, op, "gamma must be in (0,1)")
	}
	return &Memory{capacity: capacity, gamma: gamma}, nil
}

// Len returns the current live item count.
func (m *Memory) Len() int { return len(m.items) }

// Cap returns the configured capacity.
func (m *Memory) Cap() int { return m.capacity }

// Items returns the live item slice. Callers must not mutate it.
func (m *Memory) Items() []Item { return m.items }

// Insert adds p with a base strength (before primacy decay is applied)
// of baseStrength, at the next ordinal position. The item's stored
// Strength is baseStrength * gamma^position, so earlier insertions keep
// a lasting strength advantage over later ones at equal baseStrength
// (spec §8 invariant 9). If already at capacity, the current weakest
// item is evicted first.
func (m *Memory) Insert(p pattern.Pattern, baseStrength float64) Item {
	position := int(m.clock)
	strength := baseStrength * math.Pow(m.gamma, float64(position))
	item := Item{Pattern: p.Clone(), Strength: strength, Position: position, Time: m.clock}
	m.clock++

	if len(m.items) >= m.capacity {
		m.evictWeakest()
	}
	m.items = append(m.items, item)
	return item
}

func (m *Memory) evictWeakest() {
	if len(m.items) == 0 {
		return
	}
	weakest := 0
	for i, it := range m.items {
		if it.Strength < m.items[weakest].Strength {
			weakest = i
		}
	}
	m.items = append(m.items[:weakest], m.items[weakest+1:]...)
}

// Clear empties the memory.
func (m *Memory) Clear() {
	m.items = nil
	m.clock = 0
}

// Strengths returns a freshly allocated copy of every live item's
// strength, in temporal order, convenient as masking-field external
// input.
func (m *Memory) Strengths() []float64 {
	out := make([]float64, len(m.items))
	for i, it := range m.items {
		out[i] = it.Strength
	}
	return out
}
