package statistics

import (
	"fmt"
	"math"
	"sort"
)

// PlaythroughResult is the outcome of one complete game.
type PlaythroughResult struct {
	Seed       int64     // RNG seed for this play-through (for replay)
	Returns    []float64 // Terminal utility per player
	Points     []int     // Final point total per player
	Winners    []int     // Players holding the maximum point total
	TiedRounds int       // Rounds where the top bid was shared
	Rounds     int
}

// PlayerStats tracks one seat across play-throughs.
type PlayerStats struct {
	Sum    float64
	Sum2   float64 // Sum of squares for variance calculation
	Values []float64
	Wins   int // Play-throughs where this player was the sole winner
	Shared int // Play-throughs won jointly with others
	Points int
}

// Statistics aggregates play-through results per player.
type Statistics struct {
	Playthroughs int
	Players      []PlayerStats
	// ZeroSum makes Validate check that every play-through's returns sum to 0.
	ZeroSum bool

	Draws      int // Every player tied on points
	TiedRounds int
	Rounds     int
	// ReturnSum accumulates |sum of returns| per play-through.
	ReturnSum float64
}

// New returns empty statistics for the given number of players.
func New(players int, zeroSum bool) *Statistics {
	return &Statistics{
		Players: make([]PlayerStats, players),
		ZeroSum: zeroSum,
	}
}

// Add incorporates one play-through.
func (s *Statistics) Add(result PlaythroughResult) {
	if len(result.Returns) != len(s.Players) {
		panic(fmt.Sprintf("statistics: result has %d returns, want %d", len(result.Returns), len(s.Players)))
	}
	s.Playthroughs++
	total := 0.0
	for p, r := range result.Returns {
		ps := &s.Players[p]
		ps.Sum += r
		ps.Sum2 += r * r
		ps.Values = append(ps.Values, r)
		total += r
		if p < len(result.Points) {
			ps.Points += result.Points[p]
		}
	}
	s.ReturnSum += math.Abs(total)

	switch {
	case len(result.Winners) == len(s.Players):
		s.Draws++
	case len(result.Winners) == 1:
		s.Players[result.Winners[0]].Wins++
	default:
		for _, w := range result.Winners {
			s.Players[w].Shared++
		}
	}
	s.TiedRounds += result.TiedRounds
	s.Rounds += result.Rounds
}

// Merge folds other into s. Both must track the same number of players.
func (s *Statistics) Merge(other *Statistics) {
	if len(other.Players) != len(s.Players) {
		panic(fmt.Sprintf("statistics: merging %d players into %d", len(other.Players), len(s.Players)))
	}
	s.Playthroughs += other.Playthroughs
	for p := range s.Players {
		dst, src := &s.Players[p], other.Players[p]
		dst.Sum += src.Sum
		dst.Sum2 += src.Sum2
		dst.Values = append(dst.Values, src.Values...)
		dst.Wins += src.Wins
		dst.Shared += src.Shared
		dst.Points += src.Points
	}
	s.Draws += other.Draws
	s.TiedRounds += other.TiedRounds
	s.Rounds += other.Rounds
	s.ReturnSum += other.ReturnSum
}

// Mean returns player p's average return.
func (s *Statistics) Mean(p int) float64 {
	if s.Playthroughs == 0 {
		return 0
	}
	return s.Players[p].Sum / float64(s.Playthroughs)
}

// Variance returns the sample variance of player p's returns.
func (s *Statistics) Variance(p int) float64 {
	n := s.Playthroughs
	if n < 2 {
		return 0
	}
	mean := s.Mean(p)
	v := (s.Players[p].Sum2 - float64(n)*mean*mean) / float64(n-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation of player p's returns.
func (s *Statistics) StdDev(p int) float64 {
	return math.Sqrt(s.Variance(p))
}

// StdError returns the standard error of player p's mean.
func (s *Statistics) StdError(p int) float64 {
	if s.Playthroughs == 0 {
		return 0
	}
	return s.StdDev(p) / math.Sqrt(float64(s.Playthroughs))
}

// ConfidenceInterval95 returns the 95% confidence interval for player p's mean.
func (s *Statistics) ConfidenceInterval95(p int) (float64, float64) {
	mean := s.Mean(p)
	margin := 1.96 * s.StdError(p)
	return mean - margin, mean + margin
}

// MeanPoints returns player p's average final point total.
func (s *Statistics) MeanPoints(p int) float64 {
	if s.Playthroughs == 0 {
		return 0
	}
	return float64(s.Players[p].Points) / float64(s.Playthroughs)
}

// Percentile returns the value at the given percentile (0.0 to 1.0) of
// player p's returns.
func (s *Statistics) Percentile(p int, q float64) float64 {
	values := s.Players[p].Values
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	index := q * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Median returns the median of player p's returns.
func (s *Statistics) Median(p int) float64 {
	return s.Percentile(p, 0.5)
}

// Validate checks the aggregate for internal consistency.
func (s *Statistics) Validate() error {
	if s.Playthroughs <= 0 {
		return fmt.Errorf("invalid play-through count: %d", s.Playthroughs)
	}
	wins := s.Draws
	for p, ps := range s.Players {
		if len(ps.Values) != s.Playthroughs {
			return fmt.Errorf("player %d has %d values for %d play-throughs", p, len(ps.Values), s.Playthroughs)
		}
		wins += ps.Wins
	}
	if wins > s.Playthroughs {
		return fmt.Errorf("outright wins and draws (%d) exceed play-throughs (%d)", wins, s.Playthroughs)
	}
	if s.TiedRounds > s.Rounds {
		return fmt.Errorf("tied rounds (%d) exceed rounds played (%d)", s.TiedRounds, s.Rounds)
	}
	if s.ZeroSum && s.ReturnSum > 1e-6*float64(s.Playthroughs) {
		return fmt.Errorf("returns of a zero-sum game drifted by %.9f over %d play-throughs", s.ReturnSum, s.Playthroughs)
	}
	return nil
}
