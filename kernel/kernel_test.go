package kernel

import (
	"testing"

	"github.com/resonantlabs/artengine/pattern"
	"github.com/stretchr/testify/assert"
)

func TestFuzzyActivationAndMatch(t *testing.T) {
	s := NewScorer(Fuzzy, Params{Alpha: 0.01}, nil)
	input := pattern.ComplementCode(pattern.Pattern{0.8, 0.6, 0.4})
	w := pattern.WeightVector(input.Clone())

	fi := make([]float64, len(input))
	act := s.Activate(input, w, fi)
	assert.Greater(t, act.T, 0.0)

	inputNorm := 0.0
	for _, v := range input {
		inputNorm += v
	}
	m := s.Match(act, inputNorm)
	assert.InDelta(t, 1.0, m, 1e-9)
	assert.True(t, s.Accepts(m, 0.8))
}

func TestHypersphereAccepts(t *testing.T) {
	s := NewScorer(Hypersphere, Params{RMax: 1.0}, nil)
	center := pattern.WeightVector{0, 0, 0, 0}
	near := pattern.Pattern{0, 0, 0, 0}
	far := pattern.Pattern{3, 4, 0, 0}

	actNear := s.Activate(near, center, nil)
	mNear := s.Match(actNear, 0)
	assert.True(t, s.Accepts(mNear, 0.8))

	actFar := s.Activate(far, center, nil)
	mFar := s.Match(actFar, 0)
	assert.False(t, s.Accepts(mFar, 0.8))
}

func TestChoiceByDifferenceSign(t *testing.T) {
	s := NewScorer(ChoiceByDifference, Params{Bias: 0}, nil)
	w := pattern.WeightVector{0.5, 0.5}
	input := pattern.Pattern{1, 1}
	dWprev := make([]float64, 2)

	before := w.Clone()
	s.UpdateChoiceByDifference(w, input, 0.5, 1.0, dWprev, UpdateParams{Eta: 0.1, Momentum: 0, WeightDecay: 0, LightInductionBias: 0})

	for i := range w {
		assert.Greater(t, w[i], before[i])
	}
}
