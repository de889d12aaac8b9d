package game

import (
	"fmt"

	"github.com/lox/goofspiel/cards"
)

// PointsOrder controls the order in which point cards are revealed.
type PointsOrder uint8

const (
	PointsOrderRandom PointsOrder = iota
	PointsOrderAscending
	PointsOrderDescending
)

func (o PointsOrder) String() string {
	switch o {
	case PointsOrderRandom:
		return "random"
	case PointsOrderAscending:
		return "ascending"
	case PointsOrderDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// ParsePointsOrder parses the points_order parameter.
func ParsePointsOrder(s string) (PointsOrder, error) {
	switch s {
	case "random":
		return PointsOrderRandom, nil
	case "ascending":
		return PointsOrderAscending, nil
	case "descending":
		return PointsOrderDescending, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized %s %q", ErrInvalidConfig, ParamPointsOrder, s)
	}
}

// IsRandom reports whether point cards are drawn at chance nodes.
func (o PointsOrder) IsRandom() bool {
	return o == PointsOrderRandom
}

// nextPointCard returns the determined next card among the undealt ones.
// Random ordering has no determined card.
func (o PointsOrder) nextPointCard(undealt cards.Hand) (cards.Card, bool) {
	switch o {
	case PointsOrderAscending:
		return undealt.Lowest()
	case PointsOrderDescending:
		return undealt.Highest()
	default:
		return 0, false
	}
}

// Outcome is a chance outcome with its probability.
type Outcome struct {
	Action      Action
	Probability float64
}

// chanceOutcomes is the uniform distribution over undealt point cards.
func chanceOutcomes(undealt cards.Hand) []Outcome {
	n := undealt.Count()
	if n == 0 {
		panic("goofspiel: chance outcomes requested with no point cards left")
	}
	p := 1.0 / float64(n)
	outcomes := make([]Outcome, 0, n)
	for _, c := range undealt.Cards() {
		outcomes = append(outcomes, Outcome{Action: Action(c), Probability: p})
	}
	return outcomes
}
