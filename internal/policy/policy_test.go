package policy

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/goofspiel/cards"
	"github.com/lox/goofspiel/game"
	"github.com/lox/goofspiel/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func view(point cards.Card, held ...cards.Card) View {
	return View{Player: 0, Hand: cards.NewHand(held...), PointCard: point, Round: 2, Points: []int{3, 1}}
}

func TestBuiltinPolicies(t *testing.T) {
	t.Parallel()
	rng := randutil.New(1)

	v := view(2, 0, 2, 5)
	assert.Equal(t, cards.Card(2), MatchValue{}.Bid(v, rng))
	assert.Equal(t, cards.Card(5), Highest{}.Bid(v, rng))

	v = view(3, 0, 2, 5)
	assert.Equal(t, cards.Card(0), MatchValue{}.Bid(v, rng))

	seen := map[cards.Card]bool{}
	for i := 0; i < 200; i++ {
		c := Random{}.Bid(v, rng)
		require.True(t, v.Hand.Has(c))
		seen[c] = true
	}
	assert.Len(t, seen, 3)
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"random", "match", "highest"} {
		p, err := New(Spec{Name: name}, quietLogger())
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := New(Spec{Name: "bluff"}, quietLogger())
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	_, err = New(Spec{Name: "lua"}, quietLogger())
	assert.Error(t, err)

	assert.Equal(t, []string{"highest", "lua", "match", "random"}, Names())
}

func TestLuaPolicy(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2)

	p, err := NewLua(`
function bid(hand, point_card, round, points)
  for _, v in ipairs(hand) do
    if v == point_card then return v end
  end
  return hand[#hand]
end`, quietLogger())
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, cards.Card(2), p.Bid(view(2, 0, 2, 5), rng))
	assert.Equal(t, cards.Card(5), p.Bid(view(3, 0, 2, 5), rng))
}

func TestLuaPolicyFallsBackToLowest(t *testing.T) {
	t.Parallel()
	rng := randutil.New(3)

	scripts := map[string]string{
		"card not held":  `function bid(hand) return 99 end`,
		"not a number":   `function bid(hand) return "high" end`,
		"fractional":     `function bid(hand) return hand[1] + 0.5 end`,
		"runtime error":  `function bid(hand) error("boom") end`,
		"random misused": `function bid(hand) return random(0) end`,
	}
	for name, src := range scripts {
		t.Run(name, func(t *testing.T) {
			p, err := NewLua(src, quietLogger())
			require.NoError(t, err)
			defer p.Close()
			assert.Equal(t, cards.Card(1), p.Bid(view(0, 1, 4), rng))
		})
	}
}

func TestLuaPolicyRandom(t *testing.T) {
	t.Parallel()
	rng := randutil.New(4)

	p, err := NewLua(`function bid(hand) return hand[random(#hand)] end`, quietLogger())
	require.NoError(t, err)
	defer p.Close()

	v := view(0, 1, 3, 6, 7)
	for i := 0; i < 50; i++ {
		assert.True(t, v.Hand.Has(p.Bid(v, rng)))
	}
}

func TestLuaPolicyLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := NewLua(`function bid(`, quietLogger())
	assert.Error(t, err)

	_, err = NewLua(`x = 1`, quietLogger())
	assert.ErrorContains(t, err, "bid function")

	_, err = NewLuaFile(filepath.Join(t.TempDir(), "missing.lua"), quietLogger())
	assert.Error(t, err)
}

func TestLuaPolicyFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "highest.lua")
	require.NoError(t, os.WriteFile(path, []byte(`function bid(hand) return hand[#hand] end`), 0o644))

	p, err := New(Spec{Name: "lua", Script: path}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "lua", p.Name())
	assert.Equal(t, cards.Card(4), p.Bid(view(0, 1, 4), randutil.New(5)))
	assert.NoError(t, Close([]Policy{p, Random{}}))
}

func TestBids(t *testing.T) {
	t.Parallel()

	g := game.MustNew(game.Params{NumCards: 4, Players: 2, PointsOrder: "descending", ReturnsType: "win_loss"})
	s := g.NewInitialState()
	bids := Bids(s, []Policy{Highest{}, MatchValue{}}, randutil.New(6))
	assert.Equal(t, []game.Action{3, 3}, bids)

	v := NewView(s, 1)
	assert.Equal(t, cards.Card(3), v.PointCard)
	assert.Equal(t, 4, v.Hand.Count())

	assert.Panics(t, func() { Bids(s, []Policy{Random{}}, randutil.New(6)) })

	random := game.MustNew(game.Params{NumCards: 4, Players: 2, PointsOrder: "random", ReturnsType: "win_loss"})
	assert.Panics(t, func() { NewView(random.NewInitialState(), 0) })
}
