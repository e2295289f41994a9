package metrics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStoreRecordAndRecent(t *testing.T) {
	dir := t.TempDir()
	hs, err := OpenHistoryStore(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	defer hs.Close()

	r := New()
	r.RecordLearn(true)
	r.RecordPrediction(true)
	require.NoError(t, hs.Record("engine-a", r.Snapshot()))

	r.RecordPrediction(false)
	require.NoError(t, hs.Record("engine-a", r.Snapshot()))

	recent, err := hs.Recent("engine-a", 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].TotalInputs)
}

func TestHistoryStoreSeparatesEngines(t *testing.T) {
	dir := t.TempDir()
	hs, err := OpenHistoryStore(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	defer hs.Close()

	require.NoError(t, hs.Record("engine-a", Snapshot{TotalInputs: 1}))
	require.NoError(t, hs.Record("engine-b", Snapshot{TotalInputs: 5}))

	recent, err := hs.Recent("engine-b", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 5, recent[0].TotalInputs)
}
