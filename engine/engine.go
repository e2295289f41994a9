// Package engine implements MODULE E, the ART step engine: one
// learn/predict cycle over a growing CategoryStore, generalizing the
// teacher's FuzzyART (oblq-art/fuzzy_art.go) to the three kernel variants
// behind kernel.Scorer and to an injectable workerpool.Pool.
package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/resonantlabs/artengine/cache"
	"github.com/resonantlabs/artengine/category"
	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/internal/simd"
	"github.com/resonantlabs/artengine/kernel"
	"github.com/resonantlabs/artengine/pattern"
	"github.com/resonantlabs/artengine/vigilance"
	"github.com/resonantlabs/artengine/workerpool"
)

// Engine runs one ART variant over one CategoryStore. A single Engine
// instance exclusively owns its store; Learn/Predict calls are serialized
// by an internal mutex (spec §5: "at most one in flight").
type Engine struct {
	ID uuid.UUID

	variant  kernel.Variant
	inputDim int // raw pattern dimension, before any complement coding
	scorer   *kernel.Scorer
	store    *category.Store
	arbiter  *vigilance.Arbiter
	pool     *workerpool.Pool
	ownsPool bool
	params   Params
	cc       *cache.BoundedCache

	mu     sync.Mutex
	closed bool

	fiBuf [][]float64 // per-category fuzzy-intersection scratch, grown lazily
}

// New creates an Engine that owns its own worker pool.
func New(inputDim int, variant kernel.Variant, params Params) (*Engine, error) {
	return newEngine(inputDim, variant, params, nil)
}

// NewWithPool creates an Engine that borrows pool; the Engine will never
// Close it.
func NewWithPool(inputDim int, variant kernel.Variant, params Params, pool *workerpool.Pool) (*Engine, error) {
	return newEngine(inputDim, variant, params, pool)
}

func newEngine(inputDim int, variant kernel.Variant, params Params, pool *workerpool.Pool) (*Engine, error) {
	const op = "engine.New"
	if inputDim <= 0 {
		return nil, errs.New(errs.InvalidParameters, op, "inputDim must be positive")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if variant == kernel.Hypersphere && params.RMax <= 0 {
		return nil, errs.New(errs.InvalidParameters, op, "RMax must be positive for the hypersphere kernel")
	}

	weightDim := inputDim
	if variant == kernel.Fuzzy {
		weightDim = inputDim * 2
	}

	var provider simd.Provider
	if !params.EnableSIMD {
		provider = genericProvider{}
	}
	scorer := kernel.NewScorer(variant, kernel.Params{Alpha: params.Alpha, RMax: params.RMax, Bias: params.Bias}, provider)

	ownsPool := pool == nil
	if ownsPool {
		pool = workerpool.New(params.ParallelismLevel)
	}

	e := &Engine{
		ID:       uuid.New(),
		variant:  variant,
		inputDim: inputDim,
		scorer:   scorer,
		store:    category.NewStore(weightDim, params.MaxCategories),
		arbiter:  vigilance.New(params.Rho),
		pool:     pool,
		ownsPool: ownsPool,
		params:   params,
		cc:       cache.New(params.MaxCacheSize),
	}
	return e, nil
}

// genericProvider forces the scalar SIMD path regardless of platform,
// used when Params.EnableSIMD is false.
type genericProvider struct{}

func (genericProvider) FuzzyIntersectionNorm(a, w, out []float64) (float64, float64) {
	var fiNorm, wNorm float64
	for i := range a {
		m := a[i]
		if w[i] < m {
			m = w[i]
		}
		out[i] = m
		fiNorm += m
		wNorm += w[i]
	}
	return fiNorm, wNorm
}

func (genericProvider) SumFloat64(arr []float64) float64 {
	var sum float64
	for _, v := range arr {
		sum += v
	}
	return sum
}

func (genericProvider) UpdateFuzzyWeights(w, fi []float64, beta float64) {
	for i := range w {
		w[i] = beta*fi[i] + (1-beta)*w[i]
	}
}

func (genericProvider) SquaredEuclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func (genericProvider) DotProduct(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func (genericProvider) Name() string { return "generic-forced" }

// CategoryCount returns the number of categories currently learned.
func (e *Engine) CategoryCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

// Category returns the weight vector for category i.
func (e *Engine) Category(i int) (pattern.WeightVector, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= e.store.Len() {
		return nil, errs.New(errs.InvalidInput, "engine.Category", "category index out of range")
	}
	return e.store.At(i).Weight, nil
}

// Records returns a value-copy snapshot of every learned category, for
// persist.SaveSnapshot to serialize without holding a reference into the
// live store.
func (e *Engine) Records() []category.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	all := e.store.All()
	out := make([]category.Category, len(all))
	for i, c := range all {
		out[i] = *c
	}
	return out
}

// Restore replaces the store's contents with previously persisted
// records (persist.LoadSnapshot), bypassing vigilance search entirely.
func (e *Engine) Restore(records []category.Category) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Restore(records)
	e.cc.Clear()
	e.fiBuf = nil
}

// Variant returns the kernel variant this Engine was constructed with.
func (e *Engine) Variant() kernel.Variant { return e.variant }

// InputDim returns the raw (pre-complement-coding) input dimension.
func (e *Engine) InputDim() int { return e.inputDim }

// Clear resets the store to empty (spec §6).
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Clear()
	e.cc.Clear()
	e.fiBuf = nil
}

// Close drains outstanding work, releases the pool if owned, and clears
// caches. Idempotent (spec §5).
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.ownsPool {
		e.pool.Close()
	}
	e.cc.Clear()
	return nil
}
