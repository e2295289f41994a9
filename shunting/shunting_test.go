package shunting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mexicanHatConfig(dim int) Config {
	decay := make([]float64, dim)
	for i := range decay {
		decay[i] = 0.1
	}
	return Config{
		Decay:             decay,
		Ceiling:           1.0,
		Floor:             0.0,
		SelfExcitation:    0.5,
		ExcStrength:       1.0,
		ExcRange:          1.0,
		InhStrength:       0.5,
		InhRange:          3.0,
		ParallelThreshold: 1 << 30,
		BatchSize:         4,
	}
}

// S5 — Shunting Mexican hat.
func TestMexicanHatPeakSelection(t *testing.T) {
	dim := 7
	na, err := New(dim, mexicanHatConfig(dim), 0.0, nil)
	require.NoError(t, err)
	defer na.Close()

	ext := []float64{0.3, 0.4, 1.0, 0.4, 0.3, 0.2, 0.2}
	zero := make([]float64, dim)

	dt := 0.01
	for i := 0; i < 200; i++ {
		na.Update(dt, ext, zero)
	}

	act := na.Activations()
	maxIdx := 0
	for i, v := range act {
		if v > act[maxIdx] {
			maxIdx = i
		}
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Contains(t, []int{1, 2, 3}, maxIdx)
}

func TestParallelUpdateMatchesSequential(t *testing.T) {
	dim := 64
	seqCfg := mexicanHatConfig(dim)
	seqCfg.ParallelThreshold = 1 << 30

	parCfg := mexicanHatConfig(dim)
	parCfg.ParallelThreshold = 1
	parCfg.BatchSize = 5

	ext := make([]float64, dim)
	ext[dim/2] = 1.0
	zero := make([]float64, dim)

	seq, err := New(dim, seqCfg, 0.0, nil)
	require.NoError(t, err)
	defer seq.Close()
	par, err := New(dim, parCfg, 0.0, nil)
	require.NoError(t, err)
	defer par.Close()

	for i := 0; i < 50; i++ {
		seq.Update(0.01, ext, zero)
		par.Update(0.01, ext, zero)
	}

	for i := range seq.Activations() {
		assert.InDelta(t, seq.Activations()[i], par.Activations()[i], 1e-10)
	}
}

func TestHasConvergedIsSideEffectFree(t *testing.T) {
	dim := 5
	na, err := New(dim, mexicanHatConfig(dim), 0.5, nil)
	require.NoError(t, err)
	defer na.Close()

	before := append([]float64(nil), na.Activations()...)
	_ = na.HasConverged(0.01, make([]float64, dim), make([]float64, dim), 1e-6)
	after := na.Activations()

	assert.Equal(t, before, after)
}
