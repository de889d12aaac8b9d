package game

import "fmt"

// ReturnsType selects how final point totals become utilities.
type ReturnsType uint8

const (
	// ReturnsWinLoss gives winners +1/|winners| and losers -1/|losers|.
	ReturnsWinLoss ReturnsType = iota
	// ReturnsPointDifference gives each player points minus the mean.
	ReturnsPointDifference
	// ReturnsTotalPoints gives each player their points. General-sum.
	ReturnsTotalPoints
)

func (r ReturnsType) String() string {
	switch r {
	case ReturnsWinLoss:
		return "win_loss"
	case ReturnsPointDifference:
		return "point_difference"
	case ReturnsTotalPoints:
		return "total_points"
	default:
		return "unknown"
	}
}

// ParseReturnsType parses the returns_type parameter.
func ParseReturnsType(s string) (ReturnsType, error) {
	switch s {
	case "win_loss":
		return ReturnsWinLoss, nil
	case "point_difference":
		return ReturnsPointDifference, nil
	case "total_points":
		return ReturnsTotalPoints, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized %s %q", ErrInvalidConfig, ParamReturnsType, s)
	}
}

// Utility reports the utility structure induced by the returns type.
func (r ReturnsType) Utility() Utility {
	if r == ReturnsTotalPoints {
		return UtilityGeneralSum
	}
	return UtilityZeroSum
}

// topScorers returns every player holding the maximum point total.
func topScorers(points []int) []Player {
	best := -1
	var winners []Player
	for p, pts := range points {
		switch {
		case pts > best:
			best = pts
			winners = winners[:0]
			winners = append(winners, Player(p))
		case pts == best:
			winners = append(winners, Player(p))
		}
	}
	return winners
}

// returns computes the terminal utility vector.
func (r ReturnsType) returns(points []int, winners []Player) []float64 {
	n := len(points)
	out := make([]float64, n)
	switch r {
	case ReturnsWinLoss:
		if len(winners) == n {
			return out
		}
		lose := -1.0 / float64(n-len(winners))
		for p := range out {
			out[p] = lose
		}
		win := 1.0 / float64(len(winners))
		for _, w := range winners {
			out[w] = win
		}
	case ReturnsPointDifference:
		sum := 0.0
		for _, pts := range points {
			sum += float64(pts)
		}
		mean := sum / float64(n)
		for p, pts := range points {
			out[p] = float64(pts) - mean
		}
	case ReturnsTotalPoints:
		for p, pts := range points {
			out[p] = float64(pts)
		}
	default:
		panic(fmt.Sprintf("goofspiel: unrecognized returns type %d", r))
	}
	return out
}

// totalPoints is 1 + 2 + ... + numCards.
func totalPoints(numCards int) int {
	return numCards * (numCards + 1) / 2
}

func (r ReturnsType) minUtility(numCards, numPlayers int) float64 {
	switch r {
	case ReturnsWinLoss:
		return -1
	case ReturnsPointDifference:
		// A player scoring nothing while the others share everything.
		return -float64(totalPoints(numCards)) / float64(numPlayers)
	default:
		return 0
	}
}

func (r ReturnsType) maxUtility(numCards, numPlayers int) float64 {
	sum := float64(totalPoints(numCards))
	switch r {
	case ReturnsWinLoss:
		return 1
	case ReturnsPointDifference:
		return float64(numPlayers-1) * sum / float64(numPlayers)
	default:
		return sum
	}
}
