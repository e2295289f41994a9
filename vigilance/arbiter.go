// Package vigilance implements MODULE D: the pure accept/reject test a
// candidate category must pass before an ART step engine commits a
// weight update to it.
package vigilance

// Decision is the outcome of testing one candidate category against the
// current vigilance (spec §4.2). It never carries a mutation.
type Decision struct {
	Accepted bool
	Match    float64
	Rho      float64
}

// Arbiter evaluates candidates against one vigilance level. It holds no
// mutable state and is safe to share across goroutines.
type Arbiter struct {
	Rho float64
}

// New builds an Arbiter at the given vigilance level.
func New(rho float64) *Arbiter {
	return &Arbiter{Rho: rho}
}

// Evaluate decides whether match clears the arbiter's vigilance, using the
// caller-supplied accept predicate (kernel.Scorer.Accepts encapsulates the
// per-variant comparison direction: fuzzy/choice-by-difference accept
// match>=rho, hypersphere accepts match<=RMax*(1-rho)).
func (a *Arbiter) Evaluate(match float64, accepts func(match, rho float64) bool) Decision {
	return Decision{
		Accepted: accepts(match, a.Rho),
		Match:    match,
		Rho:      a.Rho,
	}
}

// EvaluateAt is Evaluate against an explicit rho, used by match-tracking
// (spec §4.5) which varies rho per attempt without mutating the engine's
// stored default.
func (a *Arbiter) EvaluateAt(match, rho float64, accepts func(match, rho float64) bool) Decision {
	return Decision{
		Accepted: accepts(match, rho),
		Match:    match,
		Rho:      rho,
	}
}
