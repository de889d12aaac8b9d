package policy

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/goofspiel/cards"
	lua "github.com/yuin/gopher-lua"
)

// Lua bids by calling a script's global function
//
//	bid(hand, point_card, round, points) -> card value
//
// hand is an array of held card values (1-based), point_card the face-up
// value, round the number of completed rounds and points an array of every
// player's total. The script may call random(n) for a uniform integer in
// [1, n] drawn from the play-through's RNG.
//
// An illegal return falls back to the lowest held card.
type Lua struct {
	L      *lua.LState
	bid    lua.LValue
	rng    *rand.Rand
	logger *log.Logger
}

// NewLua compiles a script held in memory.
func NewLua(src string, logger *log.Logger) (*Lua, error) {
	return newLua(logger, func(L *lua.LState) error { return L.DoString(src) })
}

// NewLuaFile compiles a script from disk.
func NewLuaFile(path string, logger *log.Logger) (*Lua, error) {
	return newLua(logger, func(L *lua.LState) error { return L.DoFile(path) })
}

func newLua(logger *log.Logger, load func(*lua.LState) error) (*Lua, error) {
	p := &Lua{L: lua.NewState(), logger: logger}
	p.L.SetGlobal("random", p.L.NewFunction(p.random))
	if err := load(p.L); err != nil {
		p.L.Close()
		return nil, fmt.Errorf("load bid script: %w", err)
	}
	p.bid = p.L.GetGlobal("bid")
	if p.bid.Type() != lua.LTFunction {
		p.L.Close()
		return nil, fmt.Errorf("bid script does not define a bid function")
	}
	return p, nil
}

func (p *Lua) random(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 {
		L.ArgError(1, "random needs a positive bound")
		return 0
	}
	if p.rng == nil {
		L.RaiseError("random called outside bid")
		return 0
	}
	L.Push(lua.LNumber(p.rng.IntN(n) + 1))
	return 1
}

func (p *Lua) Name() string { return "lua" }

func (p *Lua) Bid(v View, rng *rand.Rand) cards.Card {
	p.rng = rng
	defer func() { p.rng = nil }()

	hand := p.L.NewTable()
	for _, value := range v.Hand.Values() {
		hand.Append(lua.LNumber(value))
	}
	points := p.L.NewTable()
	for _, pts := range v.Points {
		points.Append(lua.LNumber(pts))
	}

	err := p.L.CallByParam(lua.P{Fn: p.bid, NRet: 1, Protect: true},
		hand, lua.LNumber(v.PointCard.Value()), lua.LNumber(v.Round), points)
	if err != nil {
		p.logger.Warn("Bid script failed, bidding lowest card", "player", v.Player, "error", err)
		return p.fallback(v)
	}
	ret := p.L.Get(-1)
	p.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		p.logger.Warn("Bid script returned a non-number, bidding lowest card", "player", v.Player, "value", ret.String())
		return p.fallback(v)
	}
	c, ok := cards.FromValue(int(n))
	if !ok || float64(n) != float64(int(n)) || !v.Hand.Has(c) {
		p.logger.Warn("Bid script returned a card not in hand, bidding lowest card", "player", v.Player, "value", float64(n), "hand", v.Hand)
		return p.fallback(v)
	}
	return c
}

func (p *Lua) fallback(v View) cards.Card {
	c, _ := v.Hand.Lowest()
	return c
}

// Close shuts down the Lua VM.
func (p *Lua) Close() error {
	p.L.Close()
	return nil
}
