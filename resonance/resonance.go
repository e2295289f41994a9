// Package resonance implements MODULE §4.10, the optional
// consciousness-likelihood learning-rate gate: a pure function of a
// ResonanceState and a threshold, consumed by engine.Engine's resonant
// learning entry point.
package resonance

// State mirrors spec §3's ResonanceState: the joint match-quality/phase
// signal that can gate or scale a learning update.
type State struct {
	ARTResonance          float64
	PhaseSync             float64
	BothInGamma           bool
	ConsciousnessLikelihood float64 // L, in [0,1]
	MatchQuality          float64
}

// Gate decides whether — and how strongly — a weight update should
// proceed given state against threshold tau (spec §4.10):
//   - L < tau: suppress the update (effectiveRate == 0, proceed == false).
//   - L >= tau: scale the configured learning rate by L.
//
// Exactly at tau the update is permitted (boundary is inclusive).
func Gate(state *State, baseRate, tau float64) (effectiveRate float64, proceed bool) {
	if state == nil {
		return baseRate, true
	}
	if state.ConsciousnessLikelihood < tau {
		return 0, false
	}
	return baseRate * state.ConsciousnessLikelihood, true
}
