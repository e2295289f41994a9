package replay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonantlabs/artengine/pattern"
)

func TestAddFillsUpToCapacity(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		b.Add(Sample{CategoryID: i})
	}
	assert.Equal(t, 3, b.Len())
}

func TestSampleBatchDrawsWithReplacement(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	b.Add(Sample{CategoryID: 0})
	b.Add(Sample{CategoryID: 1})

	batch := b.SampleBatch(10)
	assert.Len(t, batch, 10)
}

func TestSampleBatchEmptyBuffer(t *testing.T) {
	b, err := New(4)
	require.NoError(t, err)
	assert.Nil(t, b.SampleBatch(5))
}

// Reservoir property (spec §8 invariant 8): for capacity C and stream
// length N, P(item i survives) ~= C/N within 1/sqrt(N) across many runs.
func TestReservoirProperty(t *testing.T) {
	const capacity = 10
	const n = 100
	const trials = 2000

	survived := 0
	target := 42 // an arbitrary fixed arrival index to track
	for trial := 0; trial < trials; trial++ {
		b, err := New(capacity)
		require.NoError(t, err)
		for k := 1; k <= n; k++ {
			s := Sample{Pattern: pattern.Pattern{float64(k)}, CategoryID: k}
			b.Add(s)
			if k == target {
				// tracked below by scanning final slots for CategoryID == target
				_ = s
			}
		}
		for _, s := range b.Items() {
			if s.CategoryID == target {
				survived++
				break
			}
		}
	}

	observed := float64(survived) / float64(trials)
	expected := float64(capacity) / float64(n)
	tolerance := 1/math.Sqrt(float64(n)) + 0.02
	assert.InDelta(t, expected, observed, tolerance)
}
