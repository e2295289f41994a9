package pattern

import (
	"testing"

	"github.com/resonantlabs/artengine/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplementCode(t *testing.T) {
	p := Pattern{0.8, 0.6, 0.4}
	cc := ComplementCode(p)
	require.Len(t, cc, 6)
	assert.InDelta(t, 0.8, cc[0], 1e-9)
	assert.InDelta(t, 0.2, cc[3], 1e-9)
	assert.InDelta(t, 0.4, cc[2], 1e-9)
	assert.InDelta(t, 0.6, cc[5], 1e-9)
}

func TestValidate(t *testing.T) {
	p := Pattern{0.1, 1.5}
	err := p.Validate(2, true)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidInput))

	err = p.Validate(3, false)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.InvalidInput))

	ok := Pattern{0.1, 0.9}
	assert.NoError(t, ok.Validate(2, true))
}

func TestMinMaxNormalize(t *testing.T) {
	p := Pattern{10, 10, 10}
	n := MinMaxNormalize(p)
	for _, v := range n {
		assert.Equal(t, 0.0, v)
	}

	p2 := Pattern{0, 5, 10}
	n2 := MinMaxNormalize(p2)
	assert.InDelta(t, 0.0, n2[0], 1e-9)
	assert.InDelta(t, 0.5, n2[1], 1e-9)
	assert.InDelta(t, 1.0, n2[2], 1e-9)
}

func TestMinMaxNormalizeScaleKeepsConstantVectorsDistinct(t *testing.T) {
	a := MinMaxNormalizeScale(Pattern{1, 1, 1, 1}, 0, 10)
	b := MinMaxNormalizeScale(Pattern{10, 10, 10, 10}, 0, 10)
	assert.NotEqual(t, a, b)
	for _, v := range a {
		assert.InDelta(t, 0.1, v, 1e-9)
	}
	for _, v := range b {
		assert.InDelta(t, 1.0, v, 1e-9)
	}
}
