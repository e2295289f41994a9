// Package shunting implements MODULE H: on-center/off-surround
// (Mexican-hat) shunting competitive dynamics over a fixed-size neuron
// array, parallelized the way the teacher parallelizes category scoring
// — chunk the index range, fork one goroutine per chunk through a
// workerpool.Pool, read only the previous state, then join before any
// neuron's state is committed.
package shunting

import (
	"math"

	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/workerpool"
)

// Config holds the per-array shunting parameters of spec §4.6.
type Config struct {
	// Decay is A_i, one value per neuron.
	Decay []float64
	// Ceiling is B, Floor is C.
	Ceiling, Floor float64
	// SelfExcitation is sigma.
	SelfExcitation float64
	// ExcStrength/ExcRange parametrize the narrow excitatory Gaussian.
	ExcStrength, ExcRange float64
	// InhStrength/InhRange parametrize the broad inhibitory Gaussian.
	InhStrength, InhRange float64
	// ParallelThreshold is the neuron count at or above which
	// Update/HasConverged fork across the pool; below it they run inline
	// on the caller's goroutine.
	ParallelThreshold int
	// BatchSize is the minimum chunk size for a parallel fork (spec §4.6:
	// "above a minimum chunk size, split the index range").
	BatchSize int
}

func (c Config) validate(dim int) error {
	const op = "shunting.Config.validate"
	if len(c.Decay) != dim {
		return errs.New(errs.InvalidParameters, op, "decay must have one entry per neuron")
	}
	if c.Ceiling <= c.Floor {
		return errs.New(errs.InvalidParameters, op, "ceiling must exceed floor")
	}
	if c.ExcRange <= 0 || c.InhRange <= 0 {
		return errs.New(errs.InvalidParameters, op, "excitatory and inhibitory ranges must be positive")
	}
	return nil
}

// NeuronArray is spec §3's NeuronArray: d bounded activations updated by
// explicit Euler integration of the shunting equation.
type NeuronArray struct {
	x        []float64
	scratch  []float64
	cfg      Config
	pool     *workerpool.Pool
	ownsPool bool
}

// New creates a NeuronArray of the given dimension, reset to
// initialActivation. A nil pool makes the array create and own its own.
func New(dim int, cfg Config, initialActivation float64, pool *workerpool.Pool) (*NeuronArray, error) {
	if err := cfg.validate(dim); err != nil {
		return nil, err
	}
	ownsPool := pool == nil
	if ownsPool {
		pool = workerpool.New(0)
	}
	n := &NeuronArray{
		x:        make([]float64, dim),
		scratch:  make([]float64, dim),
		cfg:      cfg,
		pool:     pool,
		ownsPool: ownsPool,
	}
	n.Reset(initialActivation)
	return n, nil
}

// Dim returns the neuron count.
func (n *NeuronArray) Dim() int { return len(n.x) }

// Activations returns the live committed state. Callers must not mutate it.
func (n *NeuronArray) Activations() []float64 { return n.x }

// Reset clamps every neuron to initialActivation.
func (n *NeuronArray) Reset(initialActivation float64) {
	v := n.clamp(initialActivation)
	for i := range n.x {
		n.x[i] = v
	}
}

func (n *NeuronArray) clamp(v float64) float64 {
	if v < n.cfg.Floor {
		return n.cfg.Floor
	}
	if v > n.cfg.Ceiling {
		return n.cfg.Ceiling
	}
	return v
}

func rectify(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func gaussian(distSq, rangeParam float64) float64 {
	return math.Exp(-distSq / (2 * rangeParam * rangeParam))
}

// computeNext fills out[i] with the Euler-stepped activation for neuron i
// given prev as the (frozen) previous state, without touching prev or
// n.x. Parallelized across the pool at or above ParallelThreshold.
func (n *NeuronArray) computeNext(prev, extExc, extInh []float64, dt float64, out []float64) {
	dim := len(prev)
	batch := n.cfg.BatchSize
	if batch <= 0 {
		batch = 32
	}

	step := func(i int) {
		var sPlus, sMinus float64
		for j := 0; j < dim; j++ {
			if j == i {
				continue
			}
			d := float64(i - j)
			sPlus += gaussian(d*d, n.cfg.ExcRange) * n.cfg.ExcStrength * prev[j]
			sMinus += gaussian(d*d, n.cfg.InhRange) * n.cfg.InhStrength * prev[j]
		}
		sPlus = rectify(n.cfg.SelfExcitation*prev[i] + sPlus + extExc[i])
		sMinus = rectify(sMinus + extInh[i])

		dx := -n.cfg.Decay[i]*prev[i] + (n.cfg.Ceiling-prev[i])*sPlus - (prev[i]-n.cfg.Floor)*sMinus
		out[i] = n.clamp(prev[i] + dt*dx)
	}

	if dim < n.cfg.ParallelThreshold || n.pool.Size() <= 1 {
		for i := 0; i < dim; i++ {
			step(i)
		}
		return
	}

	for start := 0; start < dim; start += batch {
		end := start + batch
		if end > dim {
			end = dim
		}
		s, e := start, end
		n.pool.Go(func() {
			for i := s; i < e; i++ {
				step(i)
			}
		})
	}
	n.pool.Wait()
}

// Update advances the array by one Euler step of size dt, given external
// excitatory and inhibitory drive (spec §4.6).
func (n *NeuronArray) Update(dt float64, extExc, extInh []float64) {
	n.computeNext(n.x, extExc, extInh, dt, n.scratch)
	copy(n.x, n.scratch)
}

// HasConverged probes whether one more Euler step would move every
// neuron by less than tol, without committing that step (spec §4.6: the
// probe must be side-effect-free). It reuses the same scratch buffer
// Update commits from, but never copies it back.
func (n *NeuronArray) HasConverged(dt float64, extExc, extInh []float64, tol float64) bool {
	n.computeNext(n.x, extExc, extInh, dt, n.scratch)
	var maxDelta float64
	for i := range n.x {
		d := math.Abs(n.scratch[i] - n.x[i])
		if d > maxDelta {
			maxDelta = d
		}
	}
	return maxDelta < tol
}

// Energy computes spec §4.6's Lyapunov-style functional, used only as a
// testable property (non-increasing on a convergent trajectory), never
// as a per-step invariant.
func (n *NeuronArray) Energy() float64 {
	var e float64
	for i, xi := range n.x {
		e += 0.5 * n.cfg.Decay[i] * xi * xi
	}
	for i := 0; i < len(n.x); i++ {
		for j := i + 1; j < len(n.x); j++ {
			d := float64(i - j)
			gExc := gaussian(d*d, n.cfg.ExcRange) * n.cfg.ExcStrength
			gInh := gaussian(d*d, n.cfg.InhRange) * n.cfg.InhStrength
			e -= (gExc - gInh) * n.x[i] * n.x[j]
		}
	}
	return e
}

// Close releases the owned pool, if this array created one.
func (n *NeuronArray) Close() {
	if n.ownsPool {
		n.pool.Close()
	}
}
