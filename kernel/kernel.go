// Package kernel implements the activation/match functions of MODULE B:
// choice/fuzzy-ART, hypersphere, and choice-by-difference, dispatched from
// one closed tagged-union Variant rather than an open subclass tree (spec
// §9 Design Notes).
package kernel

import (
	"math"

	"github.com/resonantlabs/artengine/internal/simd"
	"github.com/resonantlabs/artengine/pattern"
)

// Variant selects which activation formula a Scorer computes.
type Variant int

const (
	// Fuzzy is the choice/fuzzy-ART kernel: T = |I∧W|_1 / (alpha + |W|_1).
	// Requires complement-coded, non-negative inputs and weights.
	Fuzzy Variant = iota
	// Hypersphere: T = max(0, 1 - d(I,W)/RMax).
	Hypersphere
	// ChoiceByDifference: T = sigmoid(W.I + bias). Permits signed weights.
	ChoiceByDifference
)

func (v Variant) String() string {
	switch v {
	case Fuzzy:
		return "fuzzy"
	case Hypersphere:
		return "hypersphere"
	case ChoiceByDifference:
		return "choice-by-difference"
	default:
		return "unknown"
	}
}

// Params configures the active kernel. Only the fields relevant to the
// configured Variant are read.
type Params struct {
	// Alpha is the fuzzy-ART choice tie-breaker (must be > 0).
	Alpha float64
	// RMax is the hypersphere category radius.
	RMax float64
	// Bias is the choice-by-difference sigmoid bias term b.
	Bias float64
}

// Scorer computes activation and match values for one Variant. Activate
// and Match never modify the input or the weight (Activate writes only
// into the caller's scratch buffer); the Update* methods modify the
// weight in place.
type Scorer struct {
	Variant Variant
	Params  Params
	SIMD    simd.Provider
}

// NewScorer builds a Scorer; if provider is nil, the process-wide shared
// SIMD provider is used.
func NewScorer(variant Variant, params Params, provider simd.Provider) *Scorer {
	if provider == nil {
		provider = simd.Shared
	}
	return &Scorer{Variant: variant, Params: params, SIMD: provider}
}

// Activation holds the intermediate quantities computed while scoring one
// category against one input, reused by both Activate and Match so a
// caller doesn't redundantly recompute a fuzzy intersection or a
// Euclidean distance.
type Activation struct {
	// T is the activation value (choice-function value).
	T float64
	// FuzzyIntersection holds I∧W, populated only for Variant == Fuzzy.
	FuzzyIntersection []float64
	// FINorm is |I∧W|_1, populated only for Variant == Fuzzy.
	FINorm float64
	// WNorm is |W|_1, populated only for Variant == Fuzzy.
	WNorm float64
	// Distance is the Euclidean distance d(I,W), populated only for
	// Variant == Hypersphere.
	Distance float64
}

// Activate computes the activation T for input against weight w, writing
// scratch intersection output into fiScratch (ignored for non-fuzzy
// variants; may be nil then).
func (s *Scorer) Activate(input pattern.Pattern, w pattern.WeightVector, fiScratch []float64) Activation {
	switch s.Variant {
	case Fuzzy:
		fiNorm, wNorm := s.SIMD.FuzzyIntersectionNorm(input, w, fiScratch)
		t := fiNorm / (s.Params.Alpha + wNorm)
		return Activation{T: t, FuzzyIntersection: fiScratch, FINorm: fiNorm, WNorm: wNorm}
	case Hypersphere:
		distSq := s.SIMD.SquaredEuclideanDistance(input, w)
		dist := math.Sqrt(distSq)
		t := 1 - dist/s.Params.RMax
		if t < 0 {
			t = 0
		}
		return Activation{T: t, Distance: dist}
	case ChoiceByDifference:
		dot := s.SIMD.DotProduct(w, input)
		t := sigmoid(dot + s.Params.Bias)
		return Activation{T: t}
	default:
		return Activation{}
	}
}

// Match computes the vigilance match ratio M for a previously computed
// Activation (spec §4.2). inputNorm is |I|_1, required only for Fuzzy.
func (s *Scorer) Match(act Activation, inputNorm float64) float64 {
	switch s.Variant {
	case Fuzzy:
		if act.FINorm == 0 && inputNorm == 0 {
			return 1
		}
		if inputNorm == 0 {
			return 0
		}
		return act.FINorm / inputNorm
	case Hypersphere:
		return act.Distance
	default:
		// choice-by-difference has no vigilance match in the spec;
		// treat the activation itself as the match signal.
		return act.T
	}
}

// Accepts reports whether a match value satisfies vigilance rho for the
// active Variant (spec §4.2: fuzzy accepts M>=rho; hypersphere accepts
// distance <= RMax*(1-rho)).
func (s *Scorer) Accepts(match, rho float64) bool {
	switch s.Variant {
	case Hypersphere:
		return match <= s.Params.RMax*(1-rho)
	default:
		return match >= rho
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
