package randutil

import (
	rand "math/rand/v2"

	"github.com/lox/goofspiel/game"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG seeds are derived from the one value so that every run with the
// same seed replays the same chance draws and bids.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for the n-th independent stream of a run.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// SampleOutcome draws one action from a chance distribution. Probabilities
// need not sum exactly to one; the last outcome absorbs rounding.
func SampleOutcome(rng *rand.Rand, outcomes []game.Outcome) game.Action {
	if len(outcomes) == 0 {
		panic("randutil: sampling from an empty distribution")
	}
	r := rng.Float64()
	acc := 0.0
	for _, o := range outcomes {
		acc += o.Probability
		if r < acc {
			return o.Action
		}
	}
	return outcomes[len(outcomes)-1].Action
}
