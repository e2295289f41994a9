package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/kernel"
	"github.com/resonantlabs/artengine/pattern"
	"github.com/resonantlabs/artengine/resonance"
)

func fuzzyParams() Params {
	p := DefaultParams()
	p.Rho = 0.8
	p.Beta = 0.5
	p.Alpha = 0.01
	return p
}

// S1 — Fuzzy-ART single-category merge.
func TestFuzzySingleCategoryMerge(t *testing.T) {
	e, err := New(3, kernel.Fuzzy, fuzzyParams())
	require.NoError(t, err)
	defer e.Close()

	r1, err := e.Learn(pattern.Pattern{0.8, 0.6, 0.4})
	require.NoError(t, err)
	assert.Equal(t, 0, r1.ID)

	r2, err := e.Learn(pattern.Pattern{0.75, 0.55, 0.35})
	require.NoError(t, err)
	assert.Equal(t, 0, r2.ID)

	assert.Equal(t, 1, e.CategoryCount())
}

// S2 — Fuzzy-ART separation.
func TestFuzzySeparation(t *testing.T) {
	e, err := New(4, kernel.Fuzzy, fuzzyParams())
	require.NoError(t, err)
	defer e.Close()

	// Normalized against a shared (0, 10) scale, not each vector's own
	// min/max — per-vector min/max would collapse both constant inputs to
	// [0,0,0,0] regardless of amplitude, the opposite of what S2 tests.
	a := pattern.MinMaxNormalizeScale(pattern.Pattern{1.0, 1.0, 1.0, 1.0}, 0, 10)
	b := pattern.MinMaxNormalizeScale(pattern.Pattern{10.0, 10.0, 10.0, 10.0}, 0, 10)

	r1, err := e.Learn(a)
	require.NoError(t, err)
	r2, err := e.Learn(b)
	require.NoError(t, err)

	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Equal(t, 2, e.CategoryCount())
}

// S3 — Hypersphere radius limit. Capped at one category so the second
// training point cannot be absorbed by widening or allocation: it must
// simply fail vigilance against category 0 at predict time.
func TestHypersphereRadiusLimit(t *testing.T) {
	params := DefaultParams()
	params.Rho = 0.8
	params.RMax = 1.0
	params.Beta = 0.5
	params.MaxCategories = 1

	e, err := New(4, kernel.Hypersphere, params)
	require.NoError(t, err)
	defer e.Close()

	origin := pattern.Pattern{0, 0, 0, 0}
	far := pattern.Pattern{3, 4, 0, 0}

	_, err = e.Learn(origin)
	require.NoError(t, err)
	_, err = e.Learn(far)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CapacityExceeded))

	rOrigin, err := e.Predict(origin)
	require.NoError(t, err)
	assert.Equal(t, 0, rOrigin.ID)
	assert.Equal(t, Success, rOrigin.Outcome)

	rFar, err := e.Predict(far)
	require.NoError(t, err)
	assert.Equal(t, NoMatch, rFar.Outcome)
}

func TestLearnAfterCloseIsResourceClosed(t *testing.T) {
	e, err := New(3, kernel.Fuzzy, fuzzyParams())
	require.NoError(t, err)
	require.NoError(t, e.Close())

	_, err = e.Learn(pattern.Pattern{0.1, 0.2, 0.3})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ResourceClosed))
}

func TestCapacityExceeded(t *testing.T) {
	params := fuzzyParams()
	params.MaxCategories = 1
	// high rho forces every distinct pattern to allocate a fresh category
	params.Rho = 0.999

	e, err := New(2, kernel.Fuzzy, params)
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Learn(pattern.Pattern{0.9, 0.1})
	require.NoError(t, err)

	_, err = e.Learn(pattern.Pattern{0.1, 0.9})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CapacityExceeded))
}

func TestLearnAtExcludesCategory(t *testing.T) {
	e, err := New(3, kernel.Fuzzy, fuzzyParams())
	require.NoError(t, err)
	defer e.Close()

	r1, err := e.Learn(pattern.Pattern{0.8, 0.6, 0.4})
	require.NoError(t, err)

	excluded := map[int]bool{r1.ID: true}
	r2, err := e.LearnAt(pattern.Pattern{0.79, 0.59, 0.41}, 0.0, excluded)
	require.NoError(t, err)
	assert.NotEqual(t, r1.ID, r2.ID)
	assert.True(t, r2.New)
}

func TestParallelScoringMatchesSequential(t *testing.T) {
	seqParams := fuzzyParams()
	seqParams.ParallelThreshold = 1 << 30 // never parallel
	seqParams.MaxCategories = 0

	parParams := fuzzyParams()
	parParams.ParallelThreshold = 1
	parParams.BatchSize = 2
	parParams.ParallelismLevel = 4

	seq, err := New(3, kernel.Fuzzy, seqParams)
	require.NoError(t, err)
	defer seq.Close()
	par, err := New(3, kernel.Fuzzy, parParams)
	require.NoError(t, err)
	defer par.Close()

	inputs := []pattern.Pattern{
		{0.9, 0.1, 0.2}, {0.1, 0.9, 0.2}, {0.2, 0.2, 0.9},
		{0.85, 0.12, 0.22}, {0.15, 0.88, 0.18}, {0.22, 0.18, 0.92},
	}
	for _, in := range inputs {
		rSeq, err := seq.Learn(in)
		require.NoError(t, err)
		rPar, err := par.Learn(in)
		require.NoError(t, err)
		assert.Equal(t, rSeq.ID, rPar.ID)
		assert.Equal(t, rSeq.New, rPar.New)
	}
	assert.Equal(t, seq.CategoryCount(), par.CategoryCount())
}

func TestLearnResonantSuppressesBelowThreshold(t *testing.T) {
	e, err := New(3, kernel.Fuzzy, fuzzyParams())
	require.NoError(t, err)
	defer e.Close()

	state := &resonance.State{ConsciousnessLikelihood: 0.2}
	r, err := e.LearnResonant(pattern.Pattern{0.8, 0.6, 0.4}, state, 0.5)
	require.NoError(t, err)
	assert.Equal(t, NoMatch, r.Outcome)
	assert.Equal(t, 0, e.CategoryCount())
}

func TestLearnResonantProceedsAtThreshold(t *testing.T) {
	e, err := New(3, kernel.Fuzzy, fuzzyParams())
	require.NoError(t, err)
	defer e.Close()

	state := &resonance.State{ConsciousnessLikelihood: 0.5}
	r, err := e.LearnResonant(pattern.Pattern{0.8, 0.6, 0.4}, state, 0.5)
	require.NoError(t, err)
	assert.Equal(t, Success, r.Outcome)
	assert.Equal(t, 1, e.CategoryCount())
}
