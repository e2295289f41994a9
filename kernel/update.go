package kernel

import (
	"math"

	"github.com/resonantlabs/artengine/pattern"
)

// UpdateParams configures the weight update step (spec §4.4).
type UpdateParams struct {
	// Beta is the learning rate shared by Fuzzy and Hypersphere.
	Beta float64
	// Eta is the gradient-descent step size for ChoiceByDifference.
	Eta float64
	// Momentum is mu for ChoiceByDifference.
	Momentum float64
	// WeightDecay is lambda for ChoiceByDifference.
	WeightDecay float64
	// LightInductionBias is epsilon, added to the error term. The
	// correct sign convention (spec §9 Open Question) is
	// W += Eta*(target+eps)*(1-output)*input.
	LightInductionBias float64
}

// UpdateFuzzy moves W toward the fuzzy intersection fi (spec §4.4):
// W' = beta*(I∧W) + (1-beta)*W.
func (s *Scorer) UpdateFuzzy(w pattern.WeightVector, fi []float64, beta float64) {
	s.SIMD.UpdateFuzzyWeights(w, fi, beta)
}

// UpdateHypersphere moves the centroid w toward input by beta and grows
// radius (returned, clamped to rMax) to cover input if needed (spec §4.4).
func (s *Scorer) UpdateHypersphere(w pattern.WeightVector, input pattern.Pattern, beta, currentRadius, rMax float64) (newRadius float64) {
	for i := range w {
		w[i] = w[i] + beta*(input[i]-w[i])
	}
	dist := distance(input, w)
	newRadius = currentRadius
	if dist > newRadius {
		newRadius = dist
	}
	if newRadius > rMax {
		newRadius = rMax
	}
	return newRadius
}

func distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	if sum <= 0 {
		return 0
	}
	return math.Sqrt(sum)
}

// UpdateChoiceByDifference performs one step of gradient descent with
// momentum and weight decay on the gating target (spec §4.4):
//
//	dW_i = eta*(target+eps)*(1-output)*input_i + momentum*dWprev_i - weightDecay*W_i
//
// dWprev is updated in place and must be reused across calls for the same
// category (it is the category's Momentum buffer).
func (s *Scorer) UpdateChoiceByDifference(w pattern.WeightVector, input pattern.Pattern, output, target float64, dWprev []float64, p UpdateParams) {
	errTerm := target + p.LightInductionBias
	factor := errTerm * (1 - output)
	for i := range w {
		dw := p.Eta*factor*input[i] + p.Momentum*dWprev[i] - p.WeightDecay*w[i]
		w[i] += dw
		dWprev[i] = dw
	}
	normalize(w)
}

// normalize prevents unbounded weight growth (spec §4.4's closing
// sentence) by rescaling w to unit L2 norm whenever it exceeds 1.
func normalize(w pattern.WeightVector) {
	var sumSq float64
	for _, v := range w {
		sumSq += v * v
	}
	if sumSq <= 1 {
		return
	}
	n := math.Sqrt(sumSq)
	for i := range w {
		w[i] /= n
	}
}
