// Package replay implements MODULE K: a bounded reservoir of
// (pattern, category) experience pairs sampled uniformly at random,
// regardless of stream length (spec §3, §4.9). Uses math/rand/v2, the
// same stdlib RNG generation oblq-art/internal/dataset reaches for when
// it shuffles MNIST samples.
package replay

import (
	"math/rand/v2"

	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/pattern"
)

// Sample is one recorded (input, assigned category) pair.
type Sample struct {
	Pattern    pattern.Pattern
	CategoryID int
}

// Buffer is spec §3's ReplayBuffer R: capacity C, reservoir-sampled over
// an arbitrarily long arrival stream.
type Buffer struct {
	slots    []Sample
	capacity int
	seen     uint64
}

// New creates an empty Buffer bounded at capacity.
func New(capacity int) (*Buffer, error) {
	const op = "replay.New"
	if capacity <= 0 {
		return nil, errs.New(errs.InvalidParameters, op, "capacity must be positive")
	}
	return &Buffer{capacity: capacity}, nil
}

// Len returns the number of samples currently held (<=Cap).
func (b *Buffer) Len() int { return len(b.slots) }

// Cap returns the configured capacity C.
func (b *Buffer) Cap() int { return b.capacity }

// Items returns the live reservoir slice. Callers must not mutate it.
func (b *Buffer) Items() []Sample { return b.slots }

// Add records one arrival under reservoir sampling (spec §4.9): while
// fewer than C samples are held it appends; after that, on arrival k
// (1-indexed) it overwrites a uniformly random slot with probability C/k
// and otherwise discards the arrival.
func (b *Buffer) Add(s Sample) {
	b.seen++
	if len(b.slots) < b.capacity {
		b.slots = append(b.slots, s)
		return
	}
	j := rand.Int64N(int64(b.seen))
	if j < int64(b.capacity) {
		b.slots[j] = s
	}
}

// SampleBatch draws n samples with replacement, uniformly across the
// current reservoir contents. Returns nil if the buffer is empty.
func (b *Buffer) SampleBatch(n int) []Sample {
	if len(b.slots) == 0 {
		return nil
	}
	out := make([]Sample, n)
	for i := 0; i < n; i++ {
		out[i] = b.slots[rand.IntN(len(b.slots))]
	}
	return out
}

// Clear empties the buffer and resets the arrival counter.
func (b *Buffer) Clear() {
	b.slots = nil
	b.seen = 0
}
