package engine

import "github.com/resonantlabs/artengine/pattern"

// Outcome is the non-error branch of an engine operation's result (spec
// §6: Success | NoMatch, with CapacityExceeded/InvalidInput surfaced as
// errors instead — see errs.Kind).
type Outcome int

const (
	// Success: a category was updated or allocated.
	Success Outcome = iota
	// NoMatch: predict found nothing accepted by vigilance; nothing was
	// mutated.
	NoMatch
)

func (o Outcome) String() string {
	if o == NoMatch {
		return "NoMatch"
	}
	return "Success"
}

// Result is returned by Learn/Predict/LearnAt on the non-error path.
type Result struct {
	Outcome Outcome
	ID      int
	T       float64
	// M is the vigilance match value (spec §4.2), distinct from T for the
	// Fuzzy and Hypersphere kernels; used by ARTMAP match-tracking to
	// compute its next escalated rho.
	M      float64
	Weight pattern.WeightVector
	// New reports whether ID names a category allocated by this call.
	New bool
}
