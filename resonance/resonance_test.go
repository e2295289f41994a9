package resonance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateSuppressesBelowThreshold(t *testing.T) {
	s := &State{ConsciousnessLikelihood: 0.4}
	rate, proceed := Gate(s, 0.5, 0.6)
	assert.False(t, proceed)
	assert.Zero(t, rate)
}

func TestGateScalesAtAndAboveThreshold(t *testing.T) {
	s := &State{ConsciousnessLikelihood: 0.6}
	rate, proceed := Gate(s, 0.5, 0.6)
	assert.True(t, proceed)
	assert.InDelta(t, 0.3, rate, 1e-12)

	s.ConsciousnessLikelihood = 0.9
	rate, proceed = Gate(s, 0.5, 0.6)
	assert.True(t, proceed)
	assert.InDelta(t, 0.45, rate, 1e-12)
}

func TestGateNilStateFallsBackToUnconditional(t *testing.T) {
	rate, proceed := Gate(nil, 0.5, 0.6)
	assert.True(t, proceed)
	assert.Equal(t, 0.5, rate)
}
