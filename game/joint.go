package game

import (
	"fmt"
	"math"
	"strings"
)

// Flat joint actions number the cross product of every player's legal bids
// in mixed radix, player 0 being the least significant digit.

// NumFlatJointActions is the size of the joint action space at a
// simultaneous node, zero elsewhere.
func (s *State) NumFlatJointActions() int {
	if s.kind != SimultaneousNode {
		return 0
	}
	n := 1
	for p, h := range s.hands {
		count := h.Count()
		if count != 0 && n > math.MaxInt/count {
			panic(fmt.Sprintf("goofspiel: joint action space overflows at player %d", p))
		}
		n *= count
	}
	return n
}

// LegalFlatJointActions enumerates every flat joint action index.
func (s *State) LegalFlatJointActions() []Action {
	n := s.NumFlatJointActions()
	out := make([]Action, n)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// FlatJointToActions decodes a flat joint action into one bid per player.
func (s *State) FlatJointToActions(flat Action) []Action {
	n := s.NumFlatJointActions()
	if flat < 0 || int(flat) >= n {
		panic(fmt.Sprintf("goofspiel: flat joint action %d out of range [0, %d)", flat, n))
	}
	rest := int(flat)
	actions := make([]Action, s.game.numPlayers)
	for p, h := range s.hands {
		count := h.Count()
		c, _ := h.Nth(rest % count)
		actions[p] = Action(c)
		rest /= count
	}
	return actions
}

// ActionsToFlatJoint encodes one bid per player as a flat joint action.
func (s *State) ActionsToFlatJoint(actions []Action) Action {
	if s.kind != SimultaneousNode {
		panic(fmt.Sprintf("goofspiel: joint action encoded at %s node", s.kind))
	}
	s.checkJoint(actions)
	flat := 0
	radix := 1
	for p, a := range actions {
		legal := s.LegalActions(Player(p))
		digit := -1
		for i, la := range legal {
			if la == a {
				digit = i
				break
			}
		}
		flat += digit * radix
		radix *= len(legal)
	}
	return Action(flat)
}

// FlatJointActionToString renders each player's part of a joint action.
func (s *State) FlatJointActionToString(flat Action) string {
	actions := s.FlatJointToActions(flat)
	parts := make([]string, len(actions))
	for p, a := range actions {
		parts[p] = s.ActionToString(Player(p), a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
