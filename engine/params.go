package engine

import "github.com/resonantlabs/artengine/errs"

// Params is the per-engine configuration record from spec §6.
type Params struct {
	// Vigilance threshold rho in [0,1].
	Rho float64
	// Learning rate beta in (0,1].
	Beta float64
	// Alpha is the fuzzy-ART choice tie-breaker, > 0.
	Alpha float64
	// RMax is the hypersphere category radius, > 0 when the Hypersphere
	// variant is active.
	RMax float64
	// Bias is the choice-by-difference sigmoid bias.
	Bias float64
	// Eta, Momentum, WeightDecay, LightInductionBias configure the
	// choice-by-difference weight update (spec §4.4).
	Eta                float64
	Momentum           float64
	WeightDecay        float64
	LightInductionBias float64

	// MaxCategories is the hard capacity; <=0 means unbounded.
	MaxCategories int
	// EnableSIMD selects SIMD kernels when available; false forces the
	// generic scalar provider regardless of platform.
	EnableSIMD bool
	// ParallelismLevel is the worker count; <=0 defaults to NumCPU.
	ParallelismLevel int
	// ParallelThreshold is the category count at or above which scoring
	// runs in parallel chunks.
	ParallelThreshold int
	// BatchSize is the minimum chunk size for parallel scoring, to
	// amortize task overhead (spec §4.3).
	BatchSize int
	// MaxCacheSize bounds the derived-feature cache (spec §5).
	MaxCacheSize int
}

// DefaultParams returns spec §6's suggested defaults.
func DefaultParams() Params {
	return Params{
		Rho:               0.75,
		Beta:              0.5,
		Alpha:             0.01,
		RMax:              1.0,
		ParallelThreshold: 128,
		BatchSize:         64,
		MaxCacheSize:      1024,
	}
}

// Validate checks the parameter ranges spec §7 names under
// InvalidParameters.
func (p Params) Validate() error {
	const op = "engine.Params.Validate"
	if p.Rho < 0 || p.Rho > 1 {
		return errs.New(errs.InvalidParameters, op, "vigilance rho must be in [0,1]")
	}
	if p.Beta <= 0 || p.Beta > 1 {
		return errs.New(errs.InvalidParameters, op, "learning rate beta must be in (0,1]")
	}
	if p.Alpha <= 0 {
		return errs.New(errs.InvalidParameters, op, "alpha must be positive")
	}
	if p.MaxCategories < 0 {
		return errs.New(errs.InvalidParameters, op, "max_categories must be non-negative")
	}
	return nil
}
