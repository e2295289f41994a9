// Package metrics tracks running counters over an engine's lifetime — the
// same plain-struct-plus-mutex shape DeltaCLI-Delta/art2_manager.go's
// ART2Stats uses for its command-history ART-2 layer, ported here from
// "CLI assistant stats" to "ART engine stats": inputs seen, categories
// learned, match-tracking retries, and prediction accuracy.
package metrics

import (
	"sync"
	"time"
)

// Recorder accumulates counters under a single mutex, mirroring
// ART2Stats/ART2Manager.stats in DeltaCLI: one struct, RWMutex-guarded
// reads and writes, no locking in the caller.
type Recorder struct {
	mu sync.RWMutex

	totalInputs          int
	categoriesLearned    int
	correctPredictions   int
	incorrectPredictions int
	matchTrackingRetries int
	lastUpdate           time.Time
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{lastUpdate: time.Time{}}
}

// RecordLearn records one Learn/Train call outcome. newCategory marks
// whether it allocated a fresh category.
func (r *Recorder) RecordLearn(newCategory bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totalInputs++
	if newCategory {
		r.categoriesLearned++
	}
	r.lastUpdate = recordTime()
}

// RecordPrediction records one Predict call outcome against a known label.
func (r *Recorder) RecordPrediction(correct bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totalInputs++
	if correct {
		r.correctPredictions++
	} else {
		r.incorrectPredictions++
	}
	r.lastUpdate = recordTime()
}

// RecordMatchTrackingRetry records one vigilance-escalation retry inside
// ARTMAP's Train loop (spec §4.5).
func (r *Recorder) RecordMatchTrackingRetry() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchTrackingRetries++
}

// Snapshot is an immutable point-in-time copy of the counters, safe to
// serialize or print without holding the Recorder's lock.
type Snapshot struct {
	TotalInputs          int
	CategoriesLearned    int
	CorrectPredictions   int
	IncorrectPredictions int
	MatchTrackingRetries int
	AccuracyRate         float64
	LastUpdate           time.Time
}

// Snapshot copies out the current counters and derives the accuracy rate,
// matching ART2Stats.AccuracyRate's role as a computed-on-read field.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot{
		TotalInputs:          r.totalInputs,
		CategoriesLearned:    r.categoriesLearned,
		CorrectPredictions:   r.correctPredictions,
		IncorrectPredictions: r.incorrectPredictions,
		MatchTrackingRetries: r.matchTrackingRetries,
		LastUpdate:           r.lastUpdate,
	}
	total := r.correctPredictions + r.incorrectPredictions
	if total > 0 {
		s.AccuracyRate = float64(r.correctPredictions) / float64(total)
	}
	return s
}

// Reset zeroes every counter.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totalInputs = 0
	r.categoriesLearned = 0
	r.correctPredictions = 0
	r.incorrectPredictions = 0
	r.matchTrackingRetries = 0
}

// recordTime is split out so tests can't observe nondeterministic values
// creeping into equality assertions on the rest of the struct; callers
// needing the actual wall clock use Snapshot().LastUpdate.
func recordTime() time.Time {
	return time.Now()
}
