// Package pattern defines the dense numerical vector types consumed by the
// activation kernels: Pattern (MODULE A) and its complement-coded variant.
package pattern

import (
	"math"

	"github.com/resonantlabs/artengine/errs"
)

// Pattern is a finite ordered sequence of real numbers of fixed dimension.
type Pattern []float64

// Dim returns the number of components.
func (p Pattern) Dim() int { return len(p) }

// At returns the i-th component.
func (p Pattern) At(i int) float64 { return p[i] }

// Validate checks p against the invariants a consumer requires: non-nil,
// matching dimension, and (if unitInterval is set) every component in
// [0,1], per spec §3's fuzzy-min kernel precondition.
func (p Pattern) Validate(wantDim int, unitInterval bool) error {
	const op = "pattern.Validate"
	if p == nil {
		return errs.New(errs.InvalidInput, op, "pattern is nil")
	}
	if wantDim > 0 && len(p) != wantDim {
		return errs.New(errs.InvalidInput, op, "dimension mismatch")
	}
	if unitInterval {
		for _, v := range p {
			if v < 0 || v > 1 {
				return errs.New(errs.InvalidInput, op, "component out of [0,1] range")
			}
		}
	}
	return nil
}

// Clone returns an independent copy.
func (p Pattern) Clone() Pattern {
	c := make(Pattern, len(p))
	copy(c, p)
	return c
}

// ComplementCode appends 1-p_i after p_i, doubling the dimension. This is
// the stabilizing preprocessing step fuzzy-ART requires (spec §3, §4.1);
// components are expected to already lie in [0,1].
func ComplementCode(p Pattern) Pattern {
	out := make(Pattern, len(p)*2)
	for i, v := range p {
		out[i] = v
		out[i+len(p)] = 1 - v
	}
	return out
}

// MinMaxNormalize rescales p into [0,1] using its own min/max, the
// normalization ComplementCodedPattern's definition (spec §3) assumes has
// already been applied before complement coding. If all components are
// equal, every output component is 0 — this per-vector form necessarily
// collapses every constant vector to the same point regardless of its
// amplitude, so it is only correct when a pattern's components genuinely
// vary. Use MinMaxNormalizeScale against a shared, dataset-wide (lo, hi)
// when separate patterns must stay distinguishable by amplitude.
func MinMaxNormalize(p Pattern) Pattern {
	if len(p) == 0 {
		return Pattern{}
	}
	lo, hi := p[0], p[0]
	for _, v := range p {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return MinMaxNormalizeScale(p, lo, hi)
}

// MinMaxNormalizeScale rescales p into [0,1] against a caller-supplied
// (lo, hi) shared across every pattern in a stream — the normalization a
// complement-coded fuzzy-ART input actually needs (spec §3): two distinct
// constant vectors at different absolute amplitudes (e.g. spec §8 S2's
// [1,1,1,1] vs [10,10,10,10]) must rescale to two distinct points, which
// per-vector min/max cannot do since every constant vector is its own
// (lo, hi) and collapses to 0. If hi == lo, every output component is 0.
func MinMaxNormalizeScale(p Pattern, lo, hi float64) Pattern {
	out := make(Pattern, len(p))
	span := hi - lo
	for i, v := range p {
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (v - lo) / span
	}
	return out
}
