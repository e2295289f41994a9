package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordLearnCountsCategories(t *testing.T) {
	r := New()
	r.RecordLearn(true)
	r.RecordLearn(false)
	r.RecordLearn(true)

	s := r.Snapshot()
	assert.Equal(t, 3, s.TotalInputs)
	assert.Equal(t, 2, s.CategoriesLearned)
}

func TestRecordPredictionComputesAccuracy(t *testing.T) {
	r := New()
	r.RecordPrediction(true)
	r.RecordPrediction(true)
	r.RecordPrediction(false)

	s := r.Snapshot()
	assert.InDelta(t, 2.0/3.0, s.AccuracyRate, 1e-9)
}

func TestRecordMatchTrackingRetry(t *testing.T) {
	r := New()
	r.RecordMatchTrackingRetry()
	r.RecordMatchTrackingRetry()

	s := r.Snapshot()
	assert.Equal(t, 2, s.MatchTrackingRetries)
}

func TestResetZeroesCounters(t *testing.T) {
	r := New()
	r.RecordLearn(true)
	r.RecordPrediction(false)
	r.Reset()

	s := r.Snapshot()
	assert.Equal(t, 0, s.TotalInputs)
	assert.Equal(t, 0.0, s.AccuracyRate)
}
