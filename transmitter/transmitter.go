// Package transmitter implements MODULE I: habituative gating channels
// that deplete under signal traffic and recover toward a baseline,
// following the same explicit-Euler integration shape as shunting for
// consistency within the module.
package transmitter

import "github.com/resonantlabs/artengine/errs"

// Config holds the per-channel habituation parameters of spec §4.7.
type Config struct {
	// Epsilon is the recovery rate toward 1.
	Epsilon float64
	// Lambda is the linear depletion rate.
	Lambda float64
	// Mu is the quadratic depletion rate.
	Mu float64
	// Baseline is the level partialReset blends toward.
	Baseline float64
}

func (c Config) validate() error {
	const op = "transmitter.Config.validate"
	if c.Epsilon <= 0 {
		return errs.New(errs.InvalidParameters, op, "epsilon must be positive")
	}
	if c.Baseline < 0 || c.Baseline > 1 {
		return errs.New(errs.InvalidParameters, op, "baseline must be in [0,1]")
	}
	return nil
}

// Array is spec §3's TransmitterArray Z: one habituation gate per
// channel, each in [0,1].
type Array struct {
	z   []float64
	cfg Config
}

// New creates an Array of dim channels, reset to baseline.
func New(dim int, cfg Config) (*Array, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	a := &Array{z: make([]float64, dim), cfg: cfg}
	a.Reset()
	return a, nil
}

// Dim returns the channel count.
func (a *Array) Dim() int { return len(a.z) }

// Levels returns the live gate levels. Callers must not mutate it.
func (a *Array) Levels() []float64 { return a.z }

// Reset sets every channel to its configured baseline.
func (a *Array) Reset() {
	for i := range a.z {
		a.z[i] = a.cfg.Baseline
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Update advances every channel by one Euler step of size dt given
// non-negative signal strengths s (spec §4.7):
//
//	dZ_i/dt = eps*(1 - Z_i) - Z_i*(lambda*s_i + mu*s_i^2)
func (a *Array) Update(dt float64, s []float64) {
	for i := range a.z {
		dz := a.cfg.Epsilon*(1-a.z[i]) - a.z[i]*(a.cfg.Lambda*s[i]+a.cfg.Mu*s[i]*s[i])
		a.z[i] = clamp01(a.z[i] + dt*dz)
	}
}

// Gate applies multiplicative gating: y_i = x_i * Z_i.
func (a *Array) Gate(x []float64, out []float64) {
	for i := range a.z {
		out[i] = x[i] * a.z[i]
	}
}

// PartialReset blends every channel toward baseline by factor f in
// [0,1] (spec §4.7); the caller is responsible for scaling any
// in-flight signals by (1-f) themselves, since signals are not owned by
// the Array.
func (a *Array) PartialReset(f float64) {
	for i := range a.z {
		a.z[i] = a.z[i] + f*(a.cfg.Baseline-a.z[i])
	}
}
