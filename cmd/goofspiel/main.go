package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/goofspiel/game"
	"github.com/lox/goofspiel/internal/config"
	"github.com/lox/goofspiel/internal/policy"
	"github.com/lox/goofspiel/registry"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string            `short:"c" default:"goofspiel.hcl" type:"path" help:"HCL configuration file (optional)"`
	Debug  bool              `help:"Enable debug logging"`
	Game   string            `help:"Registered game name (overrides the config file)"`
	Param  map[string]string `short:"p" help:"Game parameter override, name=value (repeatable)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Games    GamesCmd         `cmd:"" help:"List registered games and their parameters"`
	Shape    ShapeCmd         `cmd:"" help:"Show observation tensor layouts"`
	Play     PlayCmd          `cmd:"" help:"Play one seeded game and print the transcript"`
	Simulate SimulateCmd      `cmd:"" help:"Run many play-throughs and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("goofspiel"),
		kong.Description("Goofspiel engine, observers and simulation tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// env is what a command needs after flags and config are merged.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	game   *game.Game
}

func (g *Globals) setup() (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", g.Config, err)
	}

	level := cfg.Level()
	if g.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	name := cfg.Game.Name
	if g.Game != "" {
		name = g.Game
	}
	params := cfg.Game.Params()
	for k, v := range g.Param {
		params[k] = v
	}
	gm, err := registry.Builtin().Load(name, params)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded game", "game", gm.String(), "config", g.Config)
	return &env{cfg: cfg, logger: logger, game: gm}, nil
}

// parsePolicies accepts "name" or "lua:path/to/script.lua".
func parsePolicies(raw []string) []policy.Spec {
	specs := make([]policy.Spec, len(raw))
	for i, r := range raw {
		name, script, _ := strings.Cut(r, ":")
		specs[i] = policy.Spec{Name: name, Script: script}
	}
	return specs
}

// signalContext is cancelled on interrupt so long runs stop between
// play-throughs.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Debug("Shutting down", "reason", context.Cause(ctx))
	}()
	return ctx, cancel
}
