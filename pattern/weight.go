package pattern

// WeightVector is a prototype owned by exactly one Category (spec §3). Its
// dimension matches its consumer kernel: 2x the input dimension for
// complement-coded fuzzy weights, or the raw input dimension for
// hypersphere/choice-by-difference weights.
type WeightVector []float64

// Dim returns the number of components.
func (w WeightVector) Dim() int { return len(w) }

// Clone returns an independent copy.
func (w WeightVector) Clone() WeightVector {
	c := make(WeightVector, len(w))
	copy(c, w)
	return c
}
