package workingmemory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonantlabs/artengine/pattern"
	"github.com/resonantlabs/artengine/shunting"
)

func TestPrimacyGradient(t *testing.T) {
	m, err := New(10, 0.9)
	require.NoError(t, err)

	first := m.Insert(pattern.Pattern{1, 0}, 1.0)
	second := m.Insert(pattern.Pattern{0, 1}, 1.0)

	assert.Greater(t, first.Strength, second.Strength)
}

func TestEvictsWeakestOnOverflow(t *testing.T) {
	m, err := New(2, 0.5)
	require.NoError(t, err)

	m.Insert(pattern.Pattern{1}, 1.0)
	m.Insert(pattern.Pattern{2}, 1.0)
	m.Insert(pattern.Pattern{3}, 1.0)

	assert.Equal(t, 2, m.Len())
	for _, it := range m.Items() {
		assert.NotEqual(t, 1, it.Position)
	}
}

func oneHot(dim, idx int) pattern.Pattern {
	p := make(pattern.Pattern, dim)
	p[idx] = 1
	return p
}

// S6 — Masking-field phone-number chunking.
func TestMaskingFieldChunking(t *testing.T) {
	const n = 10
	wm, err := New(n, 0.95)
	require.NoError(t, err)

	strengths := make([]float64, n)
	for i := 0; i < n; i++ {
		s := math.Pow(0.9, float64(i))
		wm.Insert(oneHot(n, i), s)
		strengths[i] = s
	}

	decay := make([]float64, n)
	for i := range decay {
		decay[i] = 0.1
	}
	neuronCfg := shunting.Config{
		Decay:             decay,
		Ceiling:           1.0,
		Floor:             0.0,
		SelfExcitation:    0.3,
		ExcStrength:       0.8,
		ExcRange:          1.0,
		InhStrength:       0.4,
		InhRange:          3.0,
		ParallelThreshold: 1 << 30,
		BatchSize:         4,
	}

	mf, err := NewMaskingField(MaskingFieldConfig{
		Dim:              n,
		Neuron:           neuronCfg,
		InhibitionRatio:  2.0,
		WinnerThreshold:  0.05,
		MinChunkInterval: 5,
		ResetAfterEmit:   true,
		MinChunkSize:     3,
		MaxChunkSize:     4,
	})
	require.NoError(t, err)
	defer mf.Close()

	var chunks []ListChunk
	items := wm.Items()
	ext := wm.Strengths()
	for step := 0; step < 100; step++ {
		c := mf.Step(0.01, ext, items)
		if c != nil {
			chunks = append(chunks, *c)
		}
	}

	var totalSpan int
	for _, c := range chunks {
		assert.GreaterOrEqual(t, c.Size, 3)
		assert.LessOrEqual(t, c.Size, 4)
		totalSpan += c.Size
	}
	assert.LessOrEqual(t, totalSpan, n)
}
