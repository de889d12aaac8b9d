package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(returns []float64, winners ...int) PlaythroughResult {
	points := make([]int, len(returns))
	return PlaythroughResult{Returns: returns, Points: points, Winners: winners, Rounds: 3}
}

func TestStatistics_Empty(t *testing.T) {
	stats := New(2, true)

	assert.Zero(t, stats.Mean(0))
	assert.Zero(t, stats.Variance(0))
	assert.Zero(t, stats.StdDev(1))
	assert.Zero(t, stats.StdError(1))
	assert.Zero(t, stats.Median(0))
	assert.Zero(t, stats.MeanPoints(0))
	assert.Error(t, stats.Validate())
}

func TestStatistics_WinsAndDraws(t *testing.T) {
	stats := New(3, true)
	stats.Add(result([]float64{1, -0.5, -0.5}, 0))
	stats.Add(result([]float64{0.5, -1, 0.5}, 0, 2))
	stats.Add(result([]float64{0, 0, 0}, 0, 1, 2))

	assert.Equal(t, 3, stats.Playthroughs)
	assert.Equal(t, 1, stats.Players[0].Wins)
	assert.Equal(t, 1, stats.Players[0].Shared)
	assert.Equal(t, 1, stats.Players[2].Shared)
	assert.Equal(t, 1, stats.Draws)
	assert.InDelta(t, 0.5, stats.Mean(0), 1e-9)
	assert.InDelta(t, -0.5, stats.Mean(1), 1e-9)
	require.NoError(t, stats.Validate())
}

func TestStatistics_VarianceAndInterval(t *testing.T) {
	stats := New(2, true)
	for _, v := range []float64{1, 3, 5} {
		stats.Add(result([]float64{v, -v}, 0))
	}

	assert.InDelta(t, 3.0, stats.Mean(0), 1e-9)
	assert.InDelta(t, 4.0, stats.Variance(0), 1e-9)
	assert.InDelta(t, 2.0, stats.StdDev(0), 1e-9)
	assert.InDelta(t, 4.0, stats.Variance(1), 1e-9)

	low, high := stats.ConfidenceInterval95(0)
	assert.InDelta(t, stats.Mean(0), (low+high)/2, 1e-9)
	assert.Greater(t, high-low, 0.0)
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := New(2, false)
	for i := 1; i <= 5; i++ {
		stats.Add(result([]float64{float64(i), 0}, 0))
	}

	tests := []struct {
		q    float64
		want float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, stats.Percentile(0, tt.q), 1e-9, "q=%v", tt.q)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := New(2, true)
	a.Add(result([]float64{1, -1}, 0))
	a.Add(result([]float64{-1, 1}, 1))

	b := New(2, true)
	b.Add(result([]float64{0, 0}, 0, 1))
	b.TiedRounds = 2

	a.Merge(b)
	assert.Equal(t, 3, a.Playthroughs)
	assert.Equal(t, 1, a.Draws)
	assert.Equal(t, 2, a.TiedRounds)
	assert.Equal(t, 9, a.Rounds)
	assert.Len(t, a.Players[0].Values, 3)
	require.NoError(t, a.Validate())

	assert.Panics(t, func() { a.Merge(New(3, true)) })
}

func TestStatistics_Validate(t *testing.T) {
	t.Run("zero-sum drift", func(t *testing.T) {
		stats := New(2, true)
		stats.Add(result([]float64{4, 2}, 0))
		assert.ErrorContains(t, stats.Validate(), "zero-sum")

		general := New(2, false)
		general.Add(result([]float64{4, 2}, 0))
		assert.NoError(t, general.Validate())
	})

	t.Run("values mismatch", func(t *testing.T) {
		stats := New(2, true)
		stats.Add(result([]float64{1, -1}, 0))
		stats.Playthroughs = 2
		assert.ErrorContains(t, stats.Validate(), "values")
	})

	t.Run("tied rounds exceed rounds", func(t *testing.T) {
		stats := New(2, true)
		stats.Add(result([]float64{0, 0}, 0, 1))
		stats.TiedRounds = 4
		assert.ErrorContains(t, stats.Validate(), "tied rounds")
	})

	t.Run("wrong arity panics", func(t *testing.T) {
		stats := New(2, true)
		assert.Panics(t, func() { stats.Add(result([]float64{1, 0, -1}, 0)) })
	})
}
