package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonantlabs/artengine/category"
	"github.com/resonantlabs/artengine/kernel"
)

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.bin")

	id := uuid.New()
	records := []category.Category{
		{ID: 0, Weight: []float64{1, 0, 0, 1}, CreatedAt: 1, UpdateCount: 2, LastActivation: 0.9, Radius: 0},
		{ID: 1, Weight: []float64{0, 1, 1, 0}, CreatedAt: 2, UpdateCount: 0, LastActivation: 1.0, Radius: 0.5,
			Momentum: []float64{0.1, 0.2}},
	}

	require.NoError(t, SaveSnapshot(path, id, kernel.Fuzzy, 2, records, nil))

	hdr, got, mapPairs, err := LoadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, id, hdr.ID)
	assert.Equal(t, kernel.Fuzzy, hdr.Variant)
	assert.Equal(t, 2, hdr.InputDim)
	assert.Equal(t, 2, hdr.Count)
	assert.Equal(t, 0, hdr.MapCount)
	assert.Equal(t, records, got)
	assert.Nil(t, mapPairs)
}

// An ARTMAP A-side snapshot also round-trips its map-field's a->b entries.
func TestSaveThenLoadRoundTripsMapField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artmap-snapshot.bin")

	id := uuid.New()
	records := []category.Category{
		{ID: 0, Weight: []float64{1, 0}, CreatedAt: 1, UpdateCount: 1, LastActivation: 1.0},
		{ID: 1, Weight: []float64{0, 1}, CreatedAt: 2, UpdateCount: 1, LastActivation: 1.0},
	}
	mapPairs := map[int]int{0: 0, 1: 1}

	require.NoError(t, SaveSnapshot(path, id, kernel.Fuzzy, 2, records, mapPairs))

	hdr, got, gotMap, err := LoadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, 2, hdr.MapCount)
	assert.Equal(t, records, got)
	assert.Equal(t, mapPairs, gotMap)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 1, 2, 3}, 0644))

	_, _, _, err := LoadSnapshot(path)
	assert.Error(t, err)
}
