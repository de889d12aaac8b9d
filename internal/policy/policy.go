// Package policy provides bidding strategies that drive play-throughs.
package policy

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/goofspiel/cards"
	"github.com/lox/goofspiel/game"
)

var ErrUnknownPolicy = errors.New("unknown policy")

// View is what one player may base a bid on: their own hand and the public
// record. It never includes another player's hand.
type View struct {
	Player            game.Player
	Hand              cards.Hand
	PointCard         cards.Card
	Round             int
	Points            []int
	PointCardSequence []cards.Card
	WinSequence       []game.Player
}

// NewView captures p's view of a simultaneous node.
func NewView(s *game.State, p game.Player) View {
	pc, ok := s.PointCard()
	if !ok || !s.IsSimultaneousNode() {
		panic(fmt.Sprintf("policy: view requested at %s node", s.Kind()))
	}
	return View{
		Player:            p,
		Hand:              s.Hand(p),
		PointCard:         pc,
		Round:             s.RoundsPlayed(),
		Points:            s.AllPoints(),
		PointCardSequence: s.PointCardSequence(),
		WinSequence:       s.WinSequence(),
	}
}

// Policy chooses a card to bid. The returned card must be in v.Hand.
type Policy interface {
	Name() string
	Bid(v View, rng *rand.Rand) cards.Card
}

// Bids asks each player's policy for a bid at a simultaneous node.
func Bids(s *game.State, policies []Policy, rng *rand.Rand) []game.Action {
	if len(policies) != s.NumPlayers() {
		panic(fmt.Sprintf("policy: %d policies for %d players", len(policies), s.NumPlayers()))
	}
	bids := make([]game.Action, len(policies))
	for p, pol := range policies {
		bids[p] = game.Action(pol.Bid(NewView(s, game.Player(p)), rng))
	}
	return bids
}

// Random bids a uniformly random held card.
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Bid(v View, rng *rand.Rand) cards.Card {
	c, _ := v.Hand.Nth(rng.IntN(v.Hand.Count()))
	return c
}

// MatchValue bids the card equal to the point card when it is still held,
// otherwise the lowest held card.
type MatchValue struct{}

func (MatchValue) Name() string { return "match" }

func (MatchValue) Bid(v View, _ *rand.Rand) cards.Card {
	if v.Hand.Has(v.PointCard) {
		return v.PointCard
	}
	c, _ := v.Hand.Lowest()
	return c
}

// Highest always bids its highest held card.
type Highest struct{}

func (Highest) Name() string { return "highest" }

func (Highest) Bid(v View, _ *rand.Rand) cards.Card {
	c, _ := v.Hand.Highest()
	return c
}

// Spec names a policy and, for scripted policies, its script path.
type Spec struct {
	Name   string
	Script string
}

var builtins = map[string]func() Policy{
	"random":  func() Policy { return Random{} },
	"match":   func() Policy { return MatchValue{} },
	"highest": func() Policy { return Highest{} },
}

// Names lists every policy name New accepts.
func Names() []string {
	names := []string{"lua"}
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a fresh policy instance. Scripted policies own a Lua VM and
// must not be shared between goroutines; call Close when done.
func New(spec Spec, logger *log.Logger) (Policy, error) {
	if spec.Name == "lua" {
		if spec.Script == "" {
			return nil, fmt.Errorf("lua policy needs a script")
		}
		return NewLuaFile(spec.Script, logger)
	}
	if mk, ok := builtins[spec.Name]; ok {
		return mk(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, spec.Name)
}

// Close releases resources held by any policy that owns them.
func Close(policies []Policy) error {
	var errs []error
	for _, p := range policies {
		if c, ok := p.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
