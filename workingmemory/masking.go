package workingmemory

import (
	"github.com/resonantlabs/artengine/errs"
	"github.com/resonantlabs/artengine/shunting"
)

// scale names the three masking-field competitive bands (spec §4.8).
type scale int

const (
	scaleItem scale = iota
	scaleChunk
	scaleList
	numScales
)

// preferredSize gives each scale's (min, max) chunk size band.
var preferredSize = [numScales][2]int{
	scaleItem:  {1, 2},
	scaleChunk: {3, 4},
	scaleList:  {5, 7},
}

// MaskingFieldConfig configures the three-scale competition.
type MaskingFieldConfig struct {
	Dim             int
	Neuron          shunting.Config
	InhibitionRatio float64 // larger scale inhibits smaller by this factor
	WinnerThreshold float64
	MinChunkInterval uint64
	ResetAfterEmit   bool
	// MinChunkSize/MaxChunkSize, when MaxChunkSize > 0, override the
	// winning scale's intrinsic preferred-size band at emit time — the
	// caller-facing chunk-size contract spec §4.8's end-to-end scenario
	// configures directly, independent of which of the three internal
	// scales happened to win the competition.
	MinChunkSize, MaxChunkSize int
}

func (c MaskingFieldConfig) validate() error {
	const op = "workingmemory.MaskingFieldConfig.validate"
	if c.Dim <= 0 {
		return errs.New(errs.InvalidParameters, op, "dim must be positive")
	}
	if c.InhibitionRatio <= 1 {
		return errs.New(errs.InvalidParameters, op, "inhibition_ratio must exceed 1 (larger scales inhibit smaller ones more)")
	}
	return nil
}

// MaskingField runs shunting dynamics over three scales (item, chunk,
// list), interacting through asymmetric lateral inhibition: larger
// scales inhibit smaller ones InhibitionRatio times more strongly than
// the reverse (spec §4.8).
type MaskingField struct {
	cfg      MaskingFieldConfig
	scales   [numScales]*shunting.NeuronArray
	clock    uint64
	lastEmit uint64
	hasEmitted bool
	// consumed is how many leading items of the working-memory sequence
	// have already been claimed by a prior emission (chunked, or skipped
	// as an unreachable gap ahead of a centered winner). emit only ever
	// draws from items[consumed:] and advances consumed monotonically,
	// so the field segments a bounded buffer once instead of re-chunking
	// the same items indefinitely after every ResetAfterEmit (spec §4.8,
	// §8 S6: "total span <= working-memory capacity").
	consumed int
}

// NewMaskingField builds a three-scale field of the given dimension.
func NewMaskingField(cfg MaskingFieldConfig) (*MaskingField, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	mf := &MaskingField{cfg: cfg}
	for s := scale(0); s < numScales; s++ {
		na, err := shunting.New(cfg.Dim, cfg.Neuron, 0.0, nil)
		if err != nil {
			return nil, err
		}
		mf.scales[s] = na
	}
	return mf, nil
}

// Close releases every scale's owned worker pool.
func (mf *MaskingField) Close() {
	for _, na := range mf.scales {
		na.Close()
	}
}

// inhibitionFactor returns how strongly scale `from` inhibits scale
// `to`: InhibitionRatio when from is larger than to, 1/InhibitionRatio
// when from is smaller, 0 on the diagonal.
func (mf *MaskingField) inhibitionFactor(from, to scale) float64 {
	if from == to {
		return 0
	}
	if from > to {
		return mf.cfg.InhibitionRatio
	}
	return 1 / mf.cfg.InhibitionRatio
}

// Step runs one Euler step of all three scales against externalExc
// (typically working-memory item strengths, zero-padded/truncated to
// Dim), computes cross-scale inhibition from each scale's previous
// activation, and returns a non-nil ListChunk — always meeting the
// winning scale's minimum size — if a scale won the competition this
// step and there was enough unconsumed buffer left to fill its band;
// otherwise nil (spec §4.8: "the mechanism emits a non-null chunk list
// without error" when it does emit).
func (mf *MaskingField) Step(dt float64, externalExc []float64, items []Item) *ListChunk {
	mf.clock++

	prevActivations := [numScales][]float64{}
	for s := scale(0); s < numScales; s++ {
		prevActivations[s] = append([]float64(nil), mf.scales[s].Activations()...)
	}

	for s := scale(0); s < numScales; s++ {
		inh := make([]float64, mf.cfg.Dim)
		for other := scale(0); other < numScales; other++ {
			if other == s {
				continue
			}
			factor := mf.inhibitionFactor(other, s)
			for i := 0; i < mf.cfg.Dim && i < len(prevActivations[other]); i++ {
				inh[i] += factor * prevActivations[other][i]
			}
		}
		exc := make([]float64, mf.cfg.Dim)
		for i := 0; i < mf.cfg.Dim && i < len(externalExc); i++ {
			exc[i] = externalExc[i]
		}
		mf.scales[s].Update(dt, exc, inh)
	}

	if mf.hasEmitted && mf.clock-mf.lastEmit < mf.cfg.MinChunkInterval {
		return nil
	}

	winner, winnerIdx, winnerVal := mf.bestScale()
	if winnerVal <= mf.cfg.WinnerThreshold {
		return nil
	}

	chunk := mf.emit(winner, winnerIdx, items)
	if chunk.Size == 0 {
		// Nothing left to chunk (or the winning band can't be filled
		// from what remains) — not an emission, so don't start the
		// MinChunkInterval cooldown or reset the scales over it.
		return nil
	}
	mf.lastEmit = mf.clock
	mf.hasEmitted = true
	if mf.cfg.ResetAfterEmit {
		for _, na := range mf.scales {
			na.Reset(0.0)
		}
	}
	return &chunk
}

func (mf *MaskingField) bestScale() (scale, int, float64) {
	var bestScale scale
	bestIdx := -1
	bestVal := -1.0
	for s := scale(0); s < numScales; s++ {
		act := mf.scales[s].Activations()
		for i, v := range act {
			if v > bestVal {
				bestVal = v
				bestIdx = i
				bestScale = s
			}
		}
	}
	return bestScale, bestIdx, bestVal
}

// emit builds a ListChunk centered on winnerIdx, sized within the winning
// scale's preferred band, drawn only from the unconsumed tail
// items[mf.consumed:] so a previously chunked (or skipped) item is never
// claimed twice. On a non-empty result it advances mf.consumed past the
// chunk (and past any gap skipped to center on winnerIdx), bounding the
// sum of every chunk's Size, across the field's whole lifetime, to
// len(items) (spec §8 S6).
func (mf *MaskingField) emit(winner scale, winnerIdx int, items []Item) ListChunk {
	minSize, maxSize := preferredSize[winner][0], preferredSize[winner][1]
	if mf.cfg.MaxChunkSize > 0 {
		minSize, maxSize = mf.cfg.MinChunkSize, mf.cfg.MaxChunkSize
	}

	available := items[mf.consumed:]
	if len(available) == 0 {
		return NewListChunk(nil)
	}

	size := maxSize
	if size > len(available) {
		size = len(available)
	}
	if size < minSize {
		return NewListChunk(nil)
	}

	relIdx := winnerIdx - mf.consumed
	if relIdx < 0 {
		relIdx = 0
	}
	if relIdx >= len(available) {
		relIdx = len(available) - 1
	}

	start := relIdx - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > len(available) {
		end = len(available)
		start = end - size
		if start < 0 {
			start = 0
		}
	}
	if start >= end {
		return NewListChunk(nil)
	}

	chunk := NewListChunk(available[start:end])
	mf.consumed += end
	return chunk
}
