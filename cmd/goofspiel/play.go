package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/goofspiel/game"
	"github.com/lox/goofspiel/internal/policy"
	"github.com/lox/goofspiel/internal/randutil"
	"github.com/lox/goofspiel/internal/simulator"
)

// PlayCmd plays one game and prints every state it passes through.
type PlayCmd struct {
	Seed         *int64   `help:"RNG seed (defaults to the config file seed)"`
	Policy       []string `short:"P" help:"Policy per player: random, match, highest or lua:script.lua"`
	Observations bool     `short:"o" help:"Print each player's observation after every move"`
	InfoState    bool     `help:"Print each player's information state after every move"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	e, err := globals.setup()
	if err != nil {
		return err
	}
	g := e.game

	seed := e.cfg.Simulation.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	specs := e.cfg.Simulation.PolicySpecs()
	if len(c.Policy) > 0 {
		specs = parsePolicies(c.Policy)
	}
	if len(specs) != 1 && len(specs) != g.NumPlayers() {
		return fmt.Errorf("need 1 or %d policies, got %d", g.NumPlayers(), len(specs))
	}

	policies := make([]policy.Policy, g.NumPlayers())
	defer func() { policy.Close(policies) }()
	for p := range policies {
		spec := specs[0]
		if len(specs) > 1 {
			spec = specs[p]
		}
		if policies[p], err = policy.New(spec, e.logger.With("player", p)); err != nil {
			return err
		}
	}

	e.logger.Debug("Playing", "game", g.String(), "seed", seed)
	t := transcript{w: os.Stdout, obs: c.Observations, infoState: c.InfoState}
	fmt.Fprintln(t.w, HeaderStyle.Render(fmt.Sprintf("%s seed=%d", g.String(), seed)))
	final, _ := simulator.Play(g, policies, randutil.New(seed), t.visit)
	t.finish(final)
	return nil
}

type transcript struct {
	w         io.Writer
	obs       bool
	infoState bool
	seen      int
}

func (t *transcript) visit(s *game.State) {
	history := s.History()
	var moves []string
	for _, m := range history[t.seen:] {
		moves = append(moves, s.ActionToString(m.Player, m.Action))
	}
	t.seen = len(history)

	if len(moves) > 0 {
		fmt.Fprintln(t.w, ActionsStyle.Render(strings.Join(moves, "  ")))
	}
	fmt.Fprintln(t.w, RoundStyle.Render(fmt.Sprintf("Round %d, %s node", s.RoundsPlayed()+1, s.Kind())))
	fmt.Fprint(t.w, StateStyle.Render(strings.TrimRight(s.String(), "\n"))+"\n")

	for p := 0; p < s.NumPlayers(); p++ {
		if t.obs {
			fmt.Fprintf(t.w, "%s\n", ObservationStyle.Render(fmt.Sprintf("P%d observation:\n%s", p, strings.TrimRight(s.ObservationString(game.Player(p)), "\n"))))
		}
		if t.infoState {
			fmt.Fprintf(t.w, "%s\n", ObservationStyle.Render(fmt.Sprintf("P%d information state:\n%s", p, strings.TrimRight(s.InformationStateString(game.Player(p)), "\n"))))
		}
	}
}

func (t *transcript) finish(s *game.State) {
	fmt.Fprintln(t.w, HeaderStyle.Render("Result"))
	winners := map[game.Player]bool{}
	for _, w := range s.Winners() {
		winners[w] = true
	}
	for p, r := range s.Returns() {
		line := fmt.Sprintf("P%d points=%d return=%+.3f", p, s.Points(game.Player(p)), r)
		if winners[game.Player(p)] {
			fmt.Fprintln(t.w, WinnerStyle.Render(line+" winner"))
		} else {
			fmt.Fprintln(t.w, LoserStyle.Render(line))
		}
	}
}
