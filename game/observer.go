package game

import (
	"fmt"
	"strings"
)

// PrivateInfoType selects whose private information an observer reveals.
type PrivateInfoType uint8

const (
	PrivateInfoNone PrivateInfoType = iota
	PrivateInfoSinglePlayer
)

func (t PrivateInfoType) String() string {
	if t == PrivateInfoSinglePlayer {
		return "single-player"
	}
	return "none"
}

// ObservationType configures what an Observer renders.
type ObservationType struct {
	// PublicInfo includes point totals, the win sequence and the point cards.
	PublicInfo bool
	// PerfectRecall includes full sequences instead of the current snapshot.
	PerfectRecall bool
	// PrivateInfo includes the observing player's own hand and bids. It only
	// applies to imperfect-information games.
	PrivateInfo PrivateInfoType
}

// Standard observation types.
var (
	DefaultObservation   = ObservationType{PublicInfo: true, PerfectRecall: false, PrivateInfo: PrivateInfoSinglePlayer}
	InfoStateObservation = ObservationType{PublicInfo: true, PerfectRecall: true, PrivateInfo: PrivateInfoSinglePlayer}
	PublicObservation    = ObservationType{PublicInfo: true, PerfectRecall: false, PrivateInfo: PrivateInfoNone}
	PrivateObservation   = ObservationType{PublicInfo: false, PerfectRecall: false, PrivateInfo: PrivateInfoSinglePlayer}
)

// Tensor block names.
const (
	BlockPointTotals          = "point_totals"
	BlockPlayerHands          = "player_hands"
	BlockWinSequence          = "win_sequence"
	BlockPointCardSequence    = "point_card_sequence"
	BlockPointCard            = "point_card"
	BlockPlayerHand           = "player_hand"
	BlockPlayerActionSequence = "player_action_sequence"
)

// Observer renders a State as a string and as a tensor. It holds no mutable
// state; one Observer can serve any number of states concurrently.
type Observer struct {
	obsType ObservationType
}

// NewObserver creates an observer for the given observation type.
func NewObserver(obsType ObservationType) *Observer {
	return &Observer{obsType: obsType}
}

// MakeObserver creates an observer for this game.
func (g *Game) MakeObserver(obsType ObservationType) *Observer {
	return NewObserver(obsType)
}

// Type returns the observation type.
func (o *Observer) Type() ObservationType { return o.obsType }

func (o *Observer) revealsPrivate(g *Game) bool {
	return g.impInfo && o.obsType.PrivateInfo == PrivateInfoSinglePlayer
}

// Layout lists the tensor blocks written for g, in buffer order. It depends
// only on the game configuration.
func (o *Observer) Layout(g *Game) []TensorBlock {
	n, p := g.numCards, g.numPlayers
	var blocks []TensorBlock
	add := func(name string, shape ...int) {
		off := 0
		if len(blocks) > 0 {
			last := blocks[len(blocks)-1]
			off = last.Offset + last.Size()
		}
		blocks = append(blocks, TensorBlock{Name: name, Shape: shape, Offset: off})
	}

	if o.obsType.PublicInfo {
		add(BlockPointTotals, p, g.MaxPointSlots())
		if !g.impInfo {
			add(BlockPlayerHands, p, n)
		}
		add(BlockWinSequence, g.NumRounds(), p)
		if o.obsType.PerfectRecall {
			add(BlockPointCardSequence, g.NumRounds(), n)
		} else {
			add(BlockPointCard, n)
		}
	}

	if o.revealsPrivate(g) {
		add(BlockPlayerHand, n)
		if o.obsType.PerfectRecall {
			add(BlockPlayerActionSequence, g.NumRounds(), n)
		}
	}
	return blocks
}

// TensorSize is the number of values WriteTensor produces for g.
func (o *Observer) TensorSize(g *Game) int {
	size := 0
	for _, b := range o.Layout(g) {
		size += b.Size()
	}
	return size
}

// TensorShape is the block shape when there is exactly one block, and the
// flat size otherwise.
func (o *Observer) TensorShape(g *Game) []int {
	blocks := o.Layout(g)
	if len(blocks) == 1 {
		return append([]int(nil), blocks[0].Shape...)
	}
	return []int{o.TensorSize(g)}
}

// WriteTensor writes player's view of s through alloc. Rows of per-player
// blocks start at the observing player: row n describes player
// (player+n) mod P.
func (o *Observer) WriteTensor(s *State, player Player, alloc Allocator) {
	g := s.game
	g.checkPlayer(player)
	numPlayers := g.numPlayers
	rotated := func(n int) Player { return Player((int(player) + n) % numPlayers) }

	for _, b := range o.Layout(g) {
		out := alloc.Get(b.Name, b.Shape)
		switch b.Name {
		case BlockPointTotals:
			for n := 0; n < numPlayers; n++ {
				out.Set(1, n, s.points[rotated(n)])
			}
		case BlockPlayerHands:
			for n := 0; n < numPlayers; n++ {
				for _, c := range s.hands[rotated(n)].Cards() {
					out.Set(1, n, int(c))
				}
			}
		case BlockWinSequence:
			for round, w := range s.winSequence {
				if w != InvalidPlayer {
					out.Set(1, round, int(w))
				}
			}
		case BlockPointCardSequence:
			for round, c := range s.pointCardSequence {
				out.Set(1, round, int(c))
			}
		case BlockPointCard:
			if c, ok := s.PointCard(); ok {
				out.Set(1, int(c))
			}
		case BlockPlayerHand:
			for _, c := range s.hands[player].Cards() {
				out.Set(1, int(c))
			}
		case BlockPlayerActionSequence:
			for round, joint := range s.actionsHistory {
				out.Set(1, round, int(joint[player]))
			}
		default:
			panic(fmt.Sprintf("goofspiel: unknown tensor block %q", b.Name))
		}
	}
}

// Tensor writes player's view of s into buf, which must hold at least
// TensorSize values. It returns the number of values written.
func (o *Observer) Tensor(s *State, player Player, buf []float32) int {
	alloc := NewContiguousAllocator(buf)
	o.WriteTensor(s, player, alloc)
	return alloc.Offset()
}

// StringFrom renders player's view of s.
func (o *Observer) StringFrom(s *State, player Player) string {
	g := s.game
	g.checkPlayer(player)
	var sb strings.Builder

	if o.revealsPrivate(g) {
		writeHand(&sb, player, s.hands[player])
		if o.obsType.PerfectRecall {
			// Two bid sequences can reach the same hand and outcomes when
			// opponents choose differently, so the bids themselves are
			// part of the information state.
			fmt.Fprintf(&sb, "P%d action sequence: ", player)
			for _, joint := range s.actionsHistory {
				fmt.Fprintf(&sb, "%d ", joint[player])
			}
			sb.WriteByte('\n')
		}
	}

	if o.obsType.PublicInfo {
		if o.obsType.PerfectRecall {
			sb.WriteString("Point card sequence: ")
			for _, c := range s.pointCardSequence {
				fmt.Fprintf(&sb, "%d ", c.Value())
			}
			sb.WriteByte('\n')
		} else {
			fmt.Fprintf(&sb, "Current point card: %d\n", s.CurrentPointValue())
		}

		if !g.impInfo {
			for p := range s.hands {
				writeHand(&sb, Player(p), s.hands[p])
			}
		}

		sb.WriteString("Win sequence: ")
		for _, w := range s.winSequence {
			fmt.Fprintf(&sb, "%d ", w)
		}
		sb.WriteByte('\n')

		writePoints(&sb, s.points)
	}
	return sb.String()
}

// ObservationString renders the default observation for player.
func (s *State) ObservationString(player Player) string {
	return s.game.defaultObserver.StringFrom(s, player)
}

// ObservationTensor writes the default observation for player into buf.
func (s *State) ObservationTensor(player Player, buf []float32) {
	s.game.defaultObserver.Tensor(s, player, buf)
}

// InformationStateString renders player's perfect-recall information state.
func (s *State) InformationStateString(player Player) string {
	return s.game.infoStateObserver.StringFrom(s, player)
}

// InformationStateTensor writes player's perfect-recall information state
// into buf.
func (s *State) InformationStateTensor(player Player, buf []float32) {
	s.game.infoStateObserver.Tensor(s, player, buf)
}

// PublicObservationString renders only the public part of the state.
func (s *State) PublicObservationString() string {
	return s.game.publicObserver.StringFrom(s, 0)
}

// PrivateObservationString renders only player's private information.
func (s *State) PrivateObservationString(player Player) string {
	return s.game.privateObserver.StringFrom(s, player)
}
