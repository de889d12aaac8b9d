package main

import (
	"fmt"
	"time"

	"github.com/lox/goofspiel/internal/report"
	"github.com/lox/goofspiel/internal/simulator"
)

// SimulateCmd runs the parallel simulator.
type SimulateCmd struct {
	Playthroughs  *int           `short:"n" help:"Number of play-throughs"`
	Workers       *int           `short:"w" help:"Parallel workers"`
	Seed          *int64         `help:"Base RNG seed"`
	Policy        []string       `short:"P" help:"Policy per player: random, match, highest or lua:script.lua"`
	ProgressEvery *time.Duration `help:"Progress log interval (0 disables)"`
	Out           string         `type:"path" help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	e, err := globals.setup()
	if err != nil {
		return err
	}
	sc := e.cfg.Simulation

	cfg := simulator.Config{
		Game:          e.game,
		Playthroughs:  sc.Playthroughs,
		Workers:       sc.Workers,
		Seed:          sc.Seed,
		Policies:      sc.PolicySpecs(),
		ProgressEvery: sc.ProgressInterval(),
		Logger:        e.logger,
	}
	if c.Playthroughs != nil {
		cfg.Playthroughs = *c.Playthroughs
	}
	if c.Workers != nil {
		cfg.Workers = *c.Workers
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if len(c.Policy) > 0 {
		cfg.Policies = parsePolicies(c.Policy)
	}
	if c.ProgressEvery != nil {
		cfg.ProgressEvery = *c.ProgressEvery
	}

	sim, err := simulator.New(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(e.logger)
	defer cancel()

	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	printSummary(res)

	if c.Out != "" {
		if err := report.Write(c.Out, report.FromResult(res, time.Now())); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		e.logger.Info("Report written", "path", c.Out, "run", res.RunID)
	}
	return nil
}

func printSummary(res *simulator.Result) {
	st := res.Stats
	fmt.Println(HeaderStyle.Render(fmt.Sprintf("%s run %s", res.Game, res.RunID)))
	fmt.Printf("%s %d in %s\n", LabelStyle.Render("Play-throughs"), st.Playthroughs, res.Elapsed.Round(time.Millisecond))
	fmt.Printf("%s %d\n", LabelStyle.Render("Draws"), st.Draws)
	if st.Rounds > 0 {
		fmt.Printf("%s %d (%.1f%%)\n", LabelStyle.Render("Tied rounds"), st.TiedRounds, 100*float64(st.TiedRounds)/float64(st.Rounds))
	}
	for p := range st.Players {
		low, high := st.ConfidenceInterval95(p)
		name := ""
		if p < len(res.Policies) {
			name = res.Policies[p]
		}
		fmt.Println(RoundStyle.Render(fmt.Sprintf("P%d %s", p, name)))
		fmt.Printf("  %s %+.4f (sd %.4f, 95%% CI [%+.4f, %+.4f])\n", LabelStyle.Render("Mean return"), st.Mean(p), st.StdDev(p), low, high)
		fmt.Printf("  %s %.2f\n", LabelStyle.Render("Mean points"), st.MeanPoints(p))
		fmt.Printf("  %s %d outright, %d shared\n", LabelStyle.Render("Wins"), st.Players[p].Wins, st.Players[p].Shared)
	}
}
