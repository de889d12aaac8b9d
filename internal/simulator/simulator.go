package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/goofspiel/game"
	"github.com/lox/goofspiel/internal/gameid"
	"github.com/lox/goofspiel/internal/policy"
	"github.com/lox/goofspiel/internal/randutil"
	"github.com/lox/goofspiel/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Game         *game.Game
	Playthroughs int
	Workers      int
	Seed         int64
	// Policies holds one spec per player, or a single spec used by every
	// player.
	Policies      []policy.Spec
	ProgressEvery time.Duration
	Logger        *log.Logger
	Clock         quartz.Clock

	// NewPolicies overrides how a worker builds its policies. Each worker
	// calls it once; the returned policies are used by that worker only.
	NewPolicies func(worker int) ([]policy.Policy, error)
}

// Validate checks the configuration before any worker starts.
func (c Config) Validate() error {
	if c.Game == nil {
		return errors.New("simulator needs a game")
	}
	if c.Playthroughs <= 0 {
		return fmt.Errorf("playthroughs must be positive, got %d", c.Playthroughs)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("progress interval must not be negative, got %s", c.ProgressEvery)
	}
	if c.NewPolicies == nil {
		if n := len(c.Policies); n != 1 && n != c.Game.NumPlayers() {
			return fmt.Errorf("need 1 or %d policies, got %d", c.Game.NumPlayers(), n)
		}
	}
	return nil
}

// Result is the outcome of a simulation run.
type Result struct {
	RunID    string
	Game     string
	Policies []string
	Seed     int64
	Stats    *statistics.Statistics
	Elapsed  time.Duration
}

// Simulator runs many play-throughs of one game in parallel.
type Simulator struct {
	config    Config
	completed atomic.Int64
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{config: config}, nil
}

// Completed is the number of play-throughs finished so far.
func (s *Simulator) Completed() int {
	return int(s.completed.Load())
}

// Run plays every play-through and returns the aggregated statistics.
// Play-through i always uses the seed derived from (Seed, i), so results do
// not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	g := cfg.Game
	runID := gameid.Generate()
	logger := cfg.Logger.With("run", runID)
	start := cfg.Clock.Now()

	logger.Info("Starting simulation",
		"game", g.String(),
		"playthroughs", cfg.Playthroughs,
		"workers", cfg.Workers,
		"seed", cfg.Seed)

	if cfg.ProgressEvery > 0 {
		tickCtx, stopTicker := context.WithCancel(ctx)
		defer stopTicker()
		cfg.Clock.TickerFunc(tickCtx, cfg.ProgressEvery, func() error {
			done := s.Completed()
			logger.Info("Simulation progress",
				"completed", done,
				"total", cfg.Playthroughs,
				"elapsed", cfg.Clock.Since(start).Round(time.Millisecond))
			return nil
		}, "simulator", "progress")
	}

	_, zeroSum := g.UtilitySum()
	total := statistics.New(g.NumPlayers(), zeroSum)
	var (
		mu    sync.Mutex
		names []string
	)

	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		eg.Go(func() error {
			policies, err := s.policies(w)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			defer policy.Close(policies)

			stats := statistics.New(g.NumPlayers(), zeroSum)
			for i := w; i < cfg.Playthroughs; i += cfg.Workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				seed := randutil.Derive(cfg.Seed, i)
				_, result := Play(g, policies, randutil.New(seed), nil)
				result.Seed = seed
				stats.Add(result)
				s.completed.Add(1)
			}
			logger.Debug("Worker finished", "worker", w, "playthroughs", stats.Playthroughs)

			mu.Lock()
			defer mu.Unlock()
			total.Merge(stats)
			if names == nil {
				for _, p := range policies {
					names = append(names, p.Name())
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("simulation %s stopped after %d play-throughs: %w", runID, s.Completed(), err)
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := cfg.Clock.Since(start)
	logger.Info("Simulation finished", "playthroughs", total.Playthroughs, "elapsed", elapsed.Round(time.Millisecond))

	return &Result{
		RunID:    runID,
		Game:     g.String(),
		Policies: names,
		Seed:     cfg.Seed,
		Stats:    total,
		Elapsed:  elapsed,
	}, nil
}

func (s *Simulator) policies(worker int) ([]policy.Policy, error) {
	cfg := s.config
	if cfg.NewPolicies != nil {
		policies, err := cfg.NewPolicies(worker)
		if err != nil {
			return nil, err
		}
		if len(policies) != cfg.Game.NumPlayers() {
			policy.Close(policies)
			return nil, fmt.Errorf("got %d policies for %d players", len(policies), cfg.Game.NumPlayers())
		}
		return policies, nil
	}

	policies := make([]policy.Policy, cfg.Game.NumPlayers())
	for p := range policies {
		spec := cfg.Policies[0]
		if len(cfg.Policies) > 1 {
			spec = cfg.Policies[p]
		}
		pol, err := policy.New(spec, cfg.Logger.With("player", p))
		if err != nil {
			policy.Close(policies[:p])
			return nil, err
		}
		policies[p] = pol
	}
	return policies, nil
}

// Play runs one play-through to the end. visit, when non-nil, is called with
// every state reached, starting with the initial one.
func Play(g *game.Game, policies []policy.Policy, rng *rand.Rand, visit func(*game.State)) (*game.State, statistics.PlaythroughResult) {
	s := g.NewInitialState()
	if visit != nil {
		visit(s)
	}
	for !s.IsTerminal() {
		if s.IsChanceNode() {
			s.ApplyAction(randutil.SampleOutcome(rng, s.ChanceOutcomes()))
		} else {
			s.ApplyActions(policy.Bids(s, policies, rng))
		}
		if visit != nil {
			visit(s)
		}
	}

	result := statistics.PlaythroughResult{
		Returns: s.Returns(),
		Points:  s.AllPoints(),
		Rounds:  s.RoundsPlayed(),
	}
	for _, w := range s.Winners() {
		result.Winners = append(result.Winners, int(w))
	}
	for _, w := range s.WinSequence() {
		if w == game.InvalidPlayer {
			result.TiedRounds++
		}
	}
	return s, result
}
