package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/goofspiel/cards"
)

// NodeKind tags which kind of decision a State is waiting on.
type NodeKind uint8

const (
	ChanceNode NodeKind = iota
	SimultaneousNode
	TerminalNode
)

func (k NodeKind) String() string {
	switch k {
	case ChanceNode:
		return "chance"
	case SimultaneousNode:
		return "simultaneous"
	case TerminalNode:
		return "terminal"
	default:
		return "unknown"
	}
}

// PlayerAction is one externally applied move.
type PlayerAction struct {
	Player Player
	Action Action
}

// State is one play-through. It is owned by a single caller and is not safe
// for concurrent mutation; use Clone to branch.
type State struct {
	game *Game
	kind NodeKind

	hands  []cards.Hand
	points []int

	// undealt holds the point cards not yet revealed.
	undealt      cards.Hand
	pointCard    cards.Card
	hasPointCard bool

	pointCardSequence []cards.Card
	winSequence       []Player
	actionsHistory    [][]Action

	turns   int
	winners []Player
	history []PlayerAction
}

func newState(g *Game) *State {
	s := &State{
		game:    g,
		hands:   make([]cards.Hand, g.numPlayers),
		points:  make([]int, g.numPlayers),
		undealt: cards.FullHand(g.numCards),
	}
	for p := range s.hands {
		s.hands[p] = cards.FullHand(g.numCards)
	}
	if g.order.IsRandom() {
		s.kind = ChanceNode
		return s
	}
	first, _ := g.order.nextPointCard(s.undealt)
	s.dealPointCard(first)
	s.kind = SimultaneousNode
	return s
}

// Game returns the configuration the state was created from.
func (s *State) Game() *Game { return s.game }

// Kind returns the node kind.
func (s *State) Kind() NodeKind { return s.kind }

func (s *State) IsTerminal() bool         { return s.kind == TerminalNode }
func (s *State) IsChanceNode() bool       { return s.kind == ChanceNode }
func (s *State) IsSimultaneousNode() bool { return s.kind == SimultaneousNode }

// CurrentPlayer returns ChancePlayerID, SimultaneousPlayerID or
// TerminalPlayerID; no node in this game belongs to a single player.
func (s *State) CurrentPlayer() Player {
	switch s.kind {
	case ChanceNode:
		return ChancePlayerID
	case SimultaneousNode:
		return SimultaneousPlayerID
	default:
		return TerminalPlayerID
	}
}

func (s *State) NumPlayers() int   { return s.game.numPlayers }
func (s *State) RoundsPlayed() int { return s.turns }

// Hand returns a copy of the player's remaining cards.
func (s *State) Hand(p Player) cards.Hand {
	s.game.checkPlayer(p)
	return s.hands[p]
}

// Points returns the player's running point total.
func (s *State) Points(p Player) int {
	s.game.checkPlayer(p)
	return s.points[p]
}

// AllPoints returns a copy of every player's point total.
func (s *State) AllPoints() []int {
	return append([]int(nil), s.points...)
}

// PointCard returns the face-up point card, if one is revealed.
func (s *State) PointCard() (cards.Card, bool) {
	return s.pointCard, s.hasPointCard
}

// CurrentPointValue is the value of the face-up card, or 0 when none is.
func (s *State) CurrentPointValue() int {
	if !s.hasPointCard {
		return 0
	}
	return s.pointCard.Value()
}

// PointCardSequence returns every revealed point card in order.
func (s *State) PointCardSequence() []cards.Card {
	return append([]cards.Card(nil), s.pointCardSequence...)
}

// UndealtPointCards returns the point cards still to be revealed.
func (s *State) UndealtPointCards() cards.Hand { return s.undealt }

// WinSequence returns the winner of each completed round, InvalidPlayer for
// tied rounds.
func (s *State) WinSequence() []Player {
	return append([]Player(nil), s.winSequence...)
}

// ActionsHistory returns the joint bids of each completed round.
func (s *State) ActionsHistory() [][]Action {
	out := make([][]Action, len(s.actionsHistory))
	for i, joint := range s.actionsHistory {
		out[i] = append([]Action(nil), joint...)
	}
	return out
}

// Winners returns the players with the maximum final score. Empty until the
// state is terminal.
func (s *State) Winners() []Player {
	return append([]Player(nil), s.winners...)
}

// History returns the externally applied moves. Moves the engine applies
// itself in the forced last round are not included.
func (s *State) History() []PlayerAction {
	return append([]PlayerAction(nil), s.history...)
}

// LegalActions returns the legal moves for p. For a player index these are
// the cards still held, and only at simultaneous nodes.
func (s *State) LegalActions(p Player) []Action {
	switch p {
	case SimultaneousPlayerID:
		return s.LegalFlatJointActions()
	case ChancePlayerID:
		return s.LegalChanceOutcomes()
	case TerminalPlayerID:
		return nil
	}
	s.game.checkPlayer(p)
	if s.kind != SimultaneousNode {
		return nil
	}
	held := s.hands[p].Cards()
	out := make([]Action, len(held))
	for i, c := range held {
		out[i] = Action(c)
	}
	return out
}

// ChanceOutcomes returns the distribution over the next point card.
func (s *State) ChanceOutcomes() []Outcome {
	if s.kind != ChanceNode {
		panic(fmt.Sprintf("goofspiel: chance outcomes requested at %s node", s.kind))
	}
	return chanceOutcomes(s.undealt)
}

// LegalChanceOutcomes returns the actions of ChanceOutcomes, or nil when the
// state is not a chance node.
func (s *State) LegalChanceOutcomes() []Action {
	if s.kind != ChanceNode {
		return nil
	}
	outcomes := s.ChanceOutcomes()
	out := make([]Action, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Action
	}
	return out
}

// ApplyAction applies a chance outcome at chance nodes or a flat joint
// action at simultaneous nodes. Illegal actions panic.
func (s *State) ApplyAction(a Action) {
	switch s.kind {
	case ChanceNode:
		s.history = append(s.history, PlayerAction{Player: ChancePlayerID, Action: a})
		s.applyChance(a)
	case SimultaneousNode:
		s.ApplyActions(s.FlatJointToActions(a))
	default:
		panic("goofspiel: action applied to terminal state")
	}
}

// ApplyActions applies one bid per player at a simultaneous node.
func (s *State) ApplyActions(actions []Action) {
	if s.kind != SimultaneousNode {
		panic(fmt.Sprintf("goofspiel: joint action applied at %s node", s.kind))
	}
	s.checkJoint(actions)
	for p, a := range actions {
		s.history = append(s.history, PlayerAction{Player: Player(p), Action: a})
	}
	s.applyBids(actions)
}

func (s *State) checkJoint(actions []Action) {
	if len(actions) != s.game.numPlayers {
		panic(fmt.Sprintf("goofspiel: joint action has %d entries, want %d", len(actions), s.game.numPlayers))
	}
	for p, a := range actions {
		if a < 0 || int(a) >= s.game.numCards {
			panic(fmt.Sprintf("goofspiel: player %d bid %d out of range [0, %d)", p, a, s.game.numCards))
		}
		if !s.hands[p].Has(cards.Card(a)) {
			panic(fmt.Sprintf("goofspiel: player %d bid card %d which is not in hand", p, a))
		}
	}
}

func (s *State) applyChance(a Action) {
	if a < 0 || int(a) >= s.game.numCards || !s.undealt.Has(cards.Card(a)) {
		panic(fmt.Sprintf("goofspiel: chance outcome %d is not an undealt point card", a))
	}
	s.dealPointCard(cards.Card(a))
	s.kind = SimultaneousNode
}

func (s *State) dealPointCard(c cards.Card) {
	s.pointCard = c
	s.hasPointCard = true
	s.undealt.Remove(c)
	s.pointCardSequence = append(s.pointCardSequence, c)
}

// applyBids resolves a validated joint bid and moves to the next node.
func (s *State) applyBids(actions []Action) {
	winner := resolveBids(actions)
	if winner != InvalidPlayer {
		s.points[winner] += s.CurrentPointValue()
	}
	s.winSequence = append(s.winSequence, winner)
	s.actionsHistory = append(s.actionsHistory, append([]Action(nil), actions...))
	for p, a := range actions {
		s.hands[p].Remove(cards.Card(a))
	}
	s.turns++

	if s.turns == s.game.numCards {
		s.kind = TerminalNode
		s.winners = topScorers(s.points)
		return
	}

	if s.game.order.IsRandom() {
		s.kind = ChanceNode
		s.hasPointCard = false
	} else {
		next, _ := s.game.order.nextPointCard(s.undealt)
		s.dealPointCard(next)
	}

	if s.turns == s.game.numCards-1 {
		s.playForcedRound()
	}
}

// playForcedRound plays the last round, where chance and every player have
// exactly one choice left. The moves bypass the external history.
func (s *State) playForcedRound() {
	if s.kind == ChanceNode {
		last, ok := s.undealt.Lowest()
		if !ok || s.undealt.Count() != 1 {
			panic("goofspiel: forced round expects exactly one undealt point card")
		}
		s.applyChance(Action(last))
	}
	actions := make([]Action, s.game.numPlayers)
	for p, h := range s.hands {
		c, ok := h.Lowest()
		if !ok || h.Count() != 1 {
			panic(fmt.Sprintf("goofspiel: forced round expects player %d to hold one card, has %d", p, h.Count()))
		}
		actions[p] = Action(c)
	}
	s.applyBids(actions)
}

// Returns is the utility vector; all zeros before the state is terminal.
func (s *State) Returns() []float64 {
	if s.kind != TerminalNode {
		return make([]float64, s.game.numPlayers)
	}
	return s.game.returns.returns(s.points, s.winners)
}

// Rewards equals Returns at terminal states. Rewards are only paid at the
// end of the game.
func (s *State) Rewards() []float64 {
	return s.Returns()
}

// Clone returns a deep copy. Mutating the copy never affects s.
func (s *State) Clone() *State {
	c := *s
	c.hands = append([]cards.Hand(nil), s.hands...)
	c.points = append([]int(nil), s.points...)
	c.pointCardSequence = append([]cards.Card(nil), s.pointCardSequence...)
	c.winSequence = append([]Player(nil), s.winSequence...)
	c.actionsHistory = s.ActionsHistory()
	c.winners = append([]Player(nil), s.winners...)
	c.history = append([]PlayerAction(nil), s.history...)
	return &c
}

// ActionToString describes an action from p's point of view.
func (s *State) ActionToString(p Player, a Action) string {
	if p == SimultaneousPlayerID {
		return s.FlatJointActionToString(a)
	}
	if a < 0 || int(a) >= s.game.numCards {
		panic(fmt.Sprintf("goofspiel: action %d out of range [0, %d)", a, s.game.numCards))
	}
	if p == ChancePlayerID {
		return "Deal " + strconv.Itoa(int(a)+1)
	}
	return fmt.Sprintf("[P%d]Bid: %d", p, int(a)+1)
}

// String renders the full state, including hidden information.
func (s *State) String() string {
	var sb strings.Builder
	for p := range s.hands {
		writeHand(&sb, Player(p), s.hands[p])
	}

	if s.game.impInfo {
		for p := range s.hands {
			fmt.Fprintf(&sb, "P%d actions: ", p)
			for _, joint := range s.actionsHistory {
				fmt.Fprintf(&sb, "%d ", joint[p])
			}
			sb.WriteByte('\n')
		}
	}

	sb.WriteString("Point card sequence: ")
	for _, c := range s.pointCardSequence {
		fmt.Fprintf(&sb, "%d ", c.Value())
	}
	sb.WriteByte('\n')

	writePoints(&sb, s.points)
	return sb.String()
}

func writeHand(sb *strings.Builder, p Player, h cards.Hand) {
	fmt.Fprintf(sb, "P%d hand: ", p)
	for _, v := range h.Values() {
		fmt.Fprintf(sb, "%d ", v)
	}
	sb.WriteByte('\n')
}

func writePoints(sb *strings.Builder, points []int) {
	sb.WriteString("Points: ")
	for _, pts := range points {
		fmt.Fprintf(sb, "%d ", pts)
	}
	sb.WriteByte('\n')
}
