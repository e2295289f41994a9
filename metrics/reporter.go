package metrics

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter renders a terminal progress bar over a training or
// batch-replay run, wrapping github.com/schollz/progressbar/v3 the way
// oblq-art/example/main.go does for epoch/sample progress — this
// supersedes the teacher's hand-rolled internal/progress_bar ticker (see
// DESIGN.md, "Dropped/adapted teacher code").
type ProgressReporter struct {
	bar   *progressbar.ProgressBar
	label string
}

// NewProgressReporter builds a reporter over total steps (e.g.
// epochs*samples), labeled for the status line.
func NewProgressReporter(total int, label string) *ProgressReporter {
	return &ProgressReporter{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetDescription(label),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetPredictTime(true),
		),
		label: label,
	}
}

// Step advances the bar by one unit.
func (p *ProgressReporter) Step() error {
	return p.bar.Add(1)
}

// SetSnapshot updates the bar's description with the Recorder's current
// accuracy rate, so a long training run shows live accuracy alongside ETA.
func (p *ProgressReporter) SetSnapshot(s Snapshot) {
	p.bar.Describe(fmt.Sprintf("%s (acc %.1f%%, %d cats)", p.label, s.AccuracyRate*100, s.CategoriesLearned))
}

// Finish forces the bar to its completed state.
func (p *ProgressReporter) Finish() error {
	return p.bar.Finish()
}
