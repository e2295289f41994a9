package engine

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/resonantlabs/artengine/category"
	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/kernel"
	"github.com/resonantlabs/artengine/pattern"
	"github.com/resonantlabs/artengine/resonance"
)

// candidate is one scored category, held only for the duration of one
// learnInternal call.
type candidate struct {
	cat *category.Category
	act kernel.Activation
	t   float64
	m   float64
}

// Learn presents input for learning at the engine's configured vigilance.
func (e *Engine) Learn(input pattern.Pattern) (Result, error) {
	return e.learnInternal(input, e.params.Rho, nil, true, 1.0)
}

// Predict presents input read-only: no category is created or updated.
func (e *Engine) Predict(input pattern.Pattern) (Result, error) {
	return e.learnInternal(input, e.params.Rho, nil, false, 1.0)
}

// LearnAt learns with an explicit vigilance override and an exclusion set
// of category ids that must not be (re-)accepted this call — the hook
// ARTMAP match-tracking (spec §4.5) uses to retry at a raised rho without
// mutating the engine's stored default.
func (e *Engine) LearnAt(input pattern.Pattern, rho float64, excluded map[int]bool) (Result, error) {
	return e.learnInternal(input, rho, excluded, true, 1.0)
}

// ProposeAt runs the vigilance walk at rho with the given exclusion set
// but never mutates the store: it reports the winning candidate (or
// NoMatch) without committing a weight update or allocating a new
// category. ARTMAP match-tracking uses this to inspect the match value
// of a tentative winner before deciding whether to commit it.
func (e *Engine) ProposeAt(input pattern.Pattern, rho float64, excluded map[int]bool) (Result, error) {
	return e.learnInternal(input, rho, excluded, false, 1.0)
}

// Allocate unconditionally creates a new category from input, bypassing
// vigilance search entirely. Used by ARTMAP match-tracking (spec §4.5
// step 4) once max_attempts is exhausted.
func (e *Engine) Allocate(input pattern.Pattern) (Result, error) {
	const op = "engine.Allocate"
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return Result{}, errs.Wrap(errs.ResourceClosed, op, errs.ErrResourceClosed)
	}
	if err := input.Validate(e.inputDim, e.variant == kernel.Fuzzy); err != nil {
		return Result{}, errs.Wrap(errs.InvalidInput, op, err)
	}
	prepared, _ := e.prepare(input)
	return e.allocate(prepared)
}

// LearnResonant applies spec §4.10's consciousness-likelihood gate before
// learning: below threshold tau the call is a no-op predict (weights
// unchanged), at or above tau the effective learning rate is scaled by
// state.ConsciousnessLikelihood. A nil state falls back to unconditional
// learning at rate 1.0.
func (e *Engine) LearnResonant(input pattern.Pattern, state *resonance.State, tau float64) (Result, error) {
	rate, proceed := resonance.Gate(state, 1.0, tau)
	if !proceed {
		return e.learnInternal(input, e.params.Rho, nil, false, 1.0)
	}
	return e.learnInternal(input, e.params.Rho, nil, true, rate)
}

func (e *Engine) learnInternal(raw pattern.Pattern, rho float64, excluded map[int]bool, doLearn bool, rateScale float64) (Result, error) {
	const op = "engine.learnInternal"

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return Result{}, errs.Wrap(errs.ResourceClosed, op, errs.ErrResourceClosed)
	}
	if err := raw.Validate(e.inputDim, e.variant == kernel.Fuzzy); err != nil {
		return Result{}, errs.Wrap(errs.InvalidInput, op, err)
	}

	input, inputNorm := e.prepare(raw)

	n := e.store.Len()
	if n > len(e.fiBuf) {
		grown := make([][]float64, n)
		copy(grown, e.fiBuf)
		for i := len(e.fiBuf); i < n; i++ {
			grown[i] = make([]float64, len(input))
		}
		e.fiBuf = grown
	}

	cands := make([]candidate, n)
	cats := e.store.All()

	if n >= e.params.ParallelThreshold && e.pool.Size() > 1 {
		e.scoreParallel(input, cats, cands)
	} else {
		for i, c := range cats {
			act := e.scorer.Activate(input, c.Weight, e.fiBuf[i])
			cands[i] = candidate{cat: c, act: act, t: act.T, m: e.scorer.Match(act, inputNorm)}
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].t != cands[j].t {
			return cands[i].t > cands[j].t
		}
		return cands[i].cat.ID < cands[j].cat.ID
	})

	for _, cand := range cands {
		if excluded != nil && excluded[cand.cat.ID] {
			continue
		}
		decision := e.arbiter.EvaluateAt(cand.m, rho, e.scorer.Accepts)
		if !decision.Accepted {
			continue
		}
		if !doLearn {
			return Result{Outcome: Success, ID: cand.cat.ID, T: cand.t, M: cand.m, Weight: cand.cat.Weight}, nil
		}
		e.commit(cand, input, rateScale)
		return Result{Outcome: Success, ID: cand.cat.ID, T: cand.t, M: cand.m, Weight: cand.cat.Weight}, nil
	}

	if !doLearn {
		return Result{Outcome: NoMatch}, nil
	}

	return e.allocate(input)
}

// allocate appends a new category seeded from the already-prepared input
// (complement-coded for Fuzzy, raw otherwise). Shared by learnInternal's
// fall-through path and the exported Allocate.
func (e *Engine) allocate(input pattern.Pattern) (Result, error) {
	const op = "engine.allocate"
	w := make(pattern.WeightVector, len(input))
	copy(w, input)
	cat, err := e.store.Append(w)
	if err != nil {
		return Result{}, errs.Wrap(errs.CapacityExceeded, op, err)
	}
	if e.variant == kernel.ChoiceByDifference {
		cat.Momentum = make([]float64, len(w))
	}
	if e.variant == kernel.Hypersphere {
		cat.Radius = 0
	}
	e.store.Touch(cat, 1.0)
	return Result{Outcome: Success, ID: cat.ID, T: 1.0, M: 1.0, Weight: cat.Weight, New: true}, nil
}

// commit applies the variant-appropriate weight update to cand's category
// and records the touch. rateScale multiplies the effective learning
// rate (spec §4.10's resonance gate); ordinary Learn/LearnAt calls pass
// 1.0.
func (e *Engine) commit(cand candidate, input pattern.Pattern, rateScale float64) {
	switch e.variant {
	case kernel.Fuzzy:
		e.scorer.UpdateFuzzy(cand.cat.Weight, cand.act.FuzzyIntersection, e.params.Beta*rateScale)
	case kernel.Hypersphere:
		cand.cat.Radius = e.scorer.UpdateHypersphere(cand.cat.Weight, input, e.params.Beta*rateScale, cand.cat.Radius, e.params.RMax)
	case kernel.ChoiceByDifference:
		if cand.cat.Momentum == nil {
			cand.cat.Momentum = make([]float64, len(cand.cat.Weight))
		}
		up := kernel.UpdateParams{
			Eta:                e.params.Eta * rateScale,
			Momentum:           e.params.Momentum,
			WeightDecay:        e.params.WeightDecay,
			LightInductionBias: e.params.LightInductionBias,
		}
		// target (O*) is 1.0, not cand.t: commit only ever runs on the
		// candidate the vigilance search just accepted as this step's
		// resonant winner, so the supervised gating signal is "this
		// category should fire fully." Passing cand.t (== cand.act.T,
		// the category's own pre-update output O) would make O*==O and
		// collapse (O*+eps)(1-O) into a constant independent of how well
		// the category actually matches — no real backprop step at all.
		e.scorer.UpdateChoiceByDifference(cand.cat.Weight, input, cand.act.T, 1.0, cand.cat.Momentum, up)
	}
	e.store.Touch(cand.cat, cand.act.T)
}

// scoreParallel fills cands[i] for every cats[i], chunked across the
// engine's pool. Each goroutine writes only its own disjoint slice of
// cands and reads its own disjoint slice of e.fiBuf, so no synchronization
// is needed beyond the final Wait — the merge (sort) stays sequential and
// is independent of chunk layout or worker count (spec §4.3).
func (e *Engine) scoreParallel(input pattern.Pattern, cats []*category.Category, cands []candidate) {
	n := len(cats)
	batch := e.params.BatchSize
	if batch <= 0 {
		batch = 64
	}
	inputNorm := e.scorer.SIMD.SumFloat64(input)

	for start := 0; start < n; start += batch {
		end := start + batch
		if end > n {
			end = n
		}
		s, en := start, end
		e.pool.Go(func() {
			for i := s; i < en; i++ {
				c := cats[i]
				act := e.scorer.Activate(input, c.Weight, e.fiBuf[i])
				cands[i] = candidate{cat: c, act: act, t: act.T, m: e.scorer.Match(act, inputNorm)}
			}
		})
	}
	e.pool.Wait()
}

// prepare derives the feature vector the kernel actually scores: raw input
// for Hypersphere/ChoiceByDifference, complement-coded input for Fuzzy
// (mirroring the teacher's FuzzyART.Fit, which complement-codes inside the
// learning call rather than requiring pre-coded callers). Complement-coded
// results are memoized in the engine's bounded cache, keyed by the input's
// exact bit pattern, since replay-buffer training commonly re-presents the
// same sample many times.
func (e *Engine) prepare(raw pattern.Pattern) (pattern.Pattern, float64) {
	if e.variant != kernel.Fuzzy {
		return raw, e.scorer.SIMD.SumFloat64(raw)
	}

	key := floatKey(raw)
	if cached, ok := e.cc.Get(key); ok {
		return pattern.Pattern(cached), e.scorer.SIMD.SumFloat64(cached)
	}
	coded := pattern.ComplementCode(raw)
	e.cc.Put(key, coded)
	return coded, e.scorer.SIMD.SumFloat64(coded)
}

// floatKey builds an exact, collision-free string key from a float64
// slice's bit representation.
func floatKey(p pattern.Pattern) string {
	buf := make([]byte, len(p)*8)
	for i, v := range p {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return string(buf)
}
