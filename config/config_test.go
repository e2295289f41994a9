package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleParameterSet() *ParameterSet {
	return &ParameterSet{
		VariantA: KernelFuzzy,
		VariantB: KernelFuzzy,
		EngineA: EngineParams{
			Rho: 0.8, Beta: 0.5, Alpha: 0.01, MaxCategories: 100,
		},
		EngineB: EngineParams{
			Rho: 0.9, Beta: 0.5, Alpha: 0.01, MaxCategories: 100,
		},
		ARTMAP: ARTMAPParams{RhoBase: 0.5, Delta: 0.05, RhoMax: 0.95, MaxAttempts: 10, MapVigilance: 0.9},
		Shunting: ShuntingParams{
			Decay: []float64{0.1, 0.1}, Ceiling: 1, SelfExcitation: 0.3,
			ExcStrength: 0.8, ExcRange: 1, InhStrength: 0.4, InhRange: 3,
		},
		Transmitter: TransmitterParams{Epsilon: 0.1, Lambda: 0.3, Mu: 0.1, Baseline: 0.8},
		Memory:      WorkingMemoryParams{Capacity: 10, Gamma: 0.9, InhibitionRatio: 2, MinChunkSize: 3, MaxChunkSize: 4},
		Replay:      ReplayParams{Capacity: 500},
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")

	want := sampleParameterSet()
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsUnknownVariant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, Save(path, &ParameterSet{VariantA: "nonsense", VariantB: KernelFuzzy}))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/params.yaml")
	assert.Error(t, err)
}
