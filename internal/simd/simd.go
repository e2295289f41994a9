package simd

// Provider defines the interface for platform-specific SIMD operations used
// by the activation kernels. Every method must produce the same result
// (within the tolerance documented at each call site) regardless of which
// Provider backs it.
type Provider interface {
	// FuzzyIntersectionNorm computes element-wise min between vectors and returns norms
	FuzzyIntersectionNorm(A, w []float64, fuzzyIntersectionOut []float64) (fiNorm float64, wNorm float64)

	// SumFloat64 computes the sum of all elements in an array
	SumFloat64(arr []float64) float64

	// UpdateFuzzyWeights updates weights according to the ART learning rule
	UpdateFuzzyWeights(W, fi []float64, beta float64)

	// SquaredEuclideanDistance computes sum((a[i]-b[i])^2).
	SquaredEuclideanDistance(a, b []float64) float64

	// DotProduct computes sum(a[i]*b[i]).
	DotProduct(a, b []float64) float64

	// Name identifies the backing implementation, for diagnostics.
	Name() string
}

var Shared Provider

func init() {
	Shared = GetProvider()
	if Shared == nil {
		Shared = new(generic)
	}
}
