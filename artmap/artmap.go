package artmap

import (
	"math"
	"sync"

	"github.com/resonantlabs/artengine/engine"
	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/pattern"
)

// Config is the match-tracking state of spec §4.5: baseline vigilance
// rho0, the per-attempt increment delta, the ceiling rho_max, and the
// bounded retry count.
type Config struct {
	RhoBase     float64
	Delta       float64
	RhoMax      float64
	MaxAttempts int
	// MapVigilance is rho_map (spec §6, §8 S4): the confidence threshold
	// the map-field check M[a]==b is required to meet. Step 3 of §4.5's
	// protocol only ever accepts an exact b match, so MapVigilance does
	// not gate arithmetic here the way RhoBase/RhoMax do for ART_A — it
	// is carried on Config and validated because the parameter surface
	// names it, not because a partial-match variant of the map-field
	// check is implemented.
	MapVigilance float64
}

// Validate checks the ranges spec §7 requires under InvalidParameters.
func (c Config) Validate() error {
	const op = "artmap.Config.Validate"
	if c.RhoBase < 0 || c.RhoBase > 1 {
		return errs.New(errs.InvalidParameters, op, "rho_base must be in [0,1]")
	}
	if c.RhoMax < c.RhoBase || c.RhoMax > 1 {
		return errs.New(errs.InvalidParameters, op, "rho_max must be in [rho_base,1]")
	}
	if c.Delta <= 0 {
		return errs.New(errs.InvalidParameters, op, "delta must be positive")
	}
	if c.MaxAttempts <= 0 {
		return errs.New(errs.InvalidParameters, op, "max_attempts must be positive")
	}
	if c.MapVigilance < 0 || c.MapVigilance > 1 {
		return errs.New(errs.InvalidParameters, op, "map_vigilance must be in [0,1]")
	}
	return nil
}

// TrainResult is the non-error outcome of Train/Predict: the committed
// (A-id, B-id) pair and whether the A-step allocated a fresh category.
// Outcome is engine.NoMatch when Predict found nothing; Train always
// returns engine.Success or an error.
type TrainResult struct {
	Outcome engine.Outcome
	A, B    int
	NewA    bool
	Tries   int
}

// ARTMAP pairs an A-side and B-side engine.Engine through a MapField,
// implementing spec §4.5's match-tracking escalation loop. Grounded on
// DeltaCLI's ART2Manager (art2_manager.go), which wraps two weight
// layers and retries findBestMatch at an escalating threshold — ARTMAP
// generalizes that single-field retry into a true many-to-one map-field
// with exclusion-based retries and a bounded-loop Success/Exhausted
// result in place of the source's exception-style early exit (spec §9
// Design Notes).
type ARTMAP struct {
	A, B *engine.Engine
	Map  *MapField
	cfg  Config
	mu   sync.Mutex
}

// New builds an ARTMAP over the given A/B engines.
func New(a, b *engine.Engine, cfg Config) (*ARTMAP, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ARTMAP{A: a, B: b, Map: NewMapField(), cfg: cfg}, nil
}

// Train runs the match-tracking protocol of spec §4.5 on one (I_A, I_B)
// pair and returns the committed (a, b) on success.
func (am *ARTMAP) Train(ia, ib pattern.Pattern) (TrainResult, error) {
	const op = "artmap.Train"

	am.mu.Lock()
	defer am.mu.Unlock()

	resB, err := am.B.Learn(ib)
	if err != nil {
		return TrainResult{}, errs.Wrap(errs.Internal, op, err)
	}
	b := resB.ID

	rho := am.cfg.RhoBase
	excluded := make(map[int]bool)

	for attempt := 0; attempt < am.cfg.MaxAttempts; attempt++ {
		prop, err := am.A.ProposeAt(ia, rho, excluded)
		if err != nil {
			return TrainResult{}, errs.Wrap(errs.Internal, op, err)
		}
		if prop.Outcome == engine.NoMatch {
			break
		}

		a := prop.ID
		existing, mapped := am.Map.Get(a)
		if !mapped || existing == b {
			commit, err := am.A.LearnAt(ia, rho, excluded)
			if err != nil {
				return TrainResult{}, errs.Wrap(errs.Internal, op, err)
			}
			am.Map.Set(a, b)
			return TrainResult{Outcome: engine.Success, A: a, B: b, NewA: commit.New, Tries: attempt + 1}, nil
		}

		rho = math.Min(am.cfg.RhoMax, prop.M+am.cfg.Delta)
		excluded[a] = true
	}

	alloc, err := am.A.Allocate(ia)
	if err != nil {
		return TrainResult{}, errs.Wrap(errs.MatchTrackingExhausted, op, err)
	}
	am.Map.Set(alloc.ID, b)
	return TrainResult{Outcome: engine.Success, A: alloc.ID, B: b, NewA: true, Tries: am.cfg.MaxAttempts}, nil
}

// Predict finds the best-matching A-category for ia at the baseline
// vigilance and returns its mapped B-id, or engine.NoMatch if either the
// A-side rejects ia or a has no map-field entry yet.
func (am *ARTMAP) Predict(ia pattern.Pattern) (TrainResult, error) {
	const op = "artmap.Predict"

	am.mu.Lock()
	defer am.mu.Unlock()

	resA, err := am.A.ProposeAt(ia, am.cfg.RhoBase, nil)
	if err != nil {
		return TrainResult{}, errs.Wrap(errs.Internal, op, err)
	}
	if resA.Outcome == engine.NoMatch {
		return TrainResult{Outcome: engine.NoMatch}, nil
	}
	b, ok := am.Map.Get(resA.ID)
	if !ok {
		return TrainResult{Outcome: engine.NoMatch, A: resA.ID}, nil
	}
	return TrainResult{Outcome: engine.Success, A: resA.ID, B: b}, nil
}
