package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/goofspiel/internal/simulator"
	"github.com/lox/goofspiel/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *simulator.Result {
	stats := statistics.New(2, true)
	stats.Add(statistics.PlaythroughResult{Returns: []float64{1, -1}, Points: []int{4, 2}, Winners: []int{0}, Rounds: 3})
	stats.Add(statistics.PlaythroughResult{Returns: []float64{0, 0}, Points: []int{3, 3}, Winners: []int{0, 1}, Rounds: 3, TiedRounds: 1})
	return &simulator.Result{
		RunID:    "01h5n0et5q6mt3v7ms1234abcd",
		Game:     "goofspiel(num_cards=3)",
		Policies: []string{"random", "match"},
		Seed:     7,
		Stats:    stats,
		Elapsed:  1500 * time.Millisecond,
	}
}

func TestFromResult(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := FromResult(sampleResult(), now)

	assert.Equal(t, 2, r.Playthroughs)
	assert.Equal(t, 1, r.Draws)
	assert.Equal(t, 1, r.TiedRounds)
	assert.Equal(t, int64(1500), r.ElapsedMS)
	require.Len(t, r.Players, 2)
	assert.Equal(t, "match", r.Players[1].Policy)
	assert.InDelta(t, 0.5, r.Players[0].MeanReturn, 1e-9)
	assert.InDelta(t, 3.5, r.Players[0].MeanPoints, 1e-9)
	assert.Equal(t, 1, r.Players[0].Wins)
	assert.Equal(t, now, r.GeneratedAt)
}

func TestWriteAndRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	want := FromResult(sampleResult(), time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, Write(path, want))
	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	// Overwrite and make sure no temp files are left behind.
	want.Seed = 8
	require.NoError(t, Write(path, want))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run.json", entries[0].Name())

	got, err = Read(path)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.Seed)
}

func TestWriteInvalidDir(t *testing.T) {
	t.Parallel()

	err := Write(filepath.Join(t.TempDir(), "missing", "run.json"), Report{})
	assert.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
