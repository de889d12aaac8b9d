// Package config loads the HCL configuration file shared by the CLI commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/goofspiel/game"
	"github.com/lox/goofspiel/internal/policy"
)

// Config represents the complete configuration file
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	Game       *GameConfig       `hcl:"game,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// GameConfig selects a registered game and overrides its parameters. Unset
// attributes keep the game's defaults.
type GameConfig struct {
	Name        string  `hcl:"name,label"`
	NumCards    *int    `hcl:"num_cards,optional"`
	Players     *int    `hcl:"players,optional"`
	PointsOrder *string `hcl:"points_order,optional"`
	ReturnsType *string `hcl:"returns_type,optional"`
	ImpInfo     *bool   `hcl:"imp_info,optional"`
}

// SimulationConfig configures the simulate command
type SimulationConfig struct {
	Playthroughs  int            `hcl:"playthroughs,optional"`
	Workers       int            `hcl:"workers,optional"`
	Seed          int64          `hcl:"seed,optional"`
	ProgressEvery string         `hcl:"progress_every,optional"`
	Policies      []PolicyConfig `hcl:"policy,block"`
}

// PolicyConfig names the bidding policy for one seat. A single policy block
// applies to every seat.
type PolicyConfig struct {
	Name   string `hcl:"name,label"`
	Script string `hcl:"script,optional"`
}

const (
	DefaultLogLevel      = "info"
	DefaultGame          = "goofspiel"
	DefaultPlaythroughs  = 1000
	DefaultSeed          = 1
	DefaultProgressEvery = "5s"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(src, filename)
	if err != nil {
		return nil, err
	}
	// Scripts are resolved relative to the config file.
	for i, p := range c.Simulation.Policies {
		if p.Script != "" && !filepath.IsAbs(p.Script) {
			c.Simulation.Policies[i].Script = filepath.Join(filepath.Dir(filename), p.Script)
		}
	}
	return c, nil
}

// Parse decodes HCL source and applies defaults for missing values.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	diags = gohcl.DecodeBody(file.Body, nil, &c)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Game == nil {
		c.Game = &GameConfig{Name: DefaultGame}
	}
	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	s := c.Simulation
	if s.Playthroughs == 0 {
		s.Playthroughs = DefaultPlaythroughs
	}
	if s.Workers == 0 {
		s.Workers = runtime.NumCPU()
	}
	if s.Seed == 0 {
		s.Seed = DefaultSeed
	}
	if s.ProgressEvery == "" {
		s.ProgressEvery = DefaultProgressEvery
	}
	if len(s.Policies) == 0 {
		s.Policies = []PolicyConfig{{Name: "random"}}
	}
}

// Validate checks ranges and names. Game parameters are checked when the
// game is built.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	s := c.Simulation
	if s.Playthroughs < 1 {
		return fmt.Errorf("playthroughs must be positive, got %d", s.Playthroughs)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", s.Workers)
	}
	if d, err := time.ParseDuration(s.ProgressEvery); err != nil || d < 0 {
		return fmt.Errorf("invalid progress_every %q", s.ProgressEvery)
	}
	names := policy.Names()
	for _, p := range s.Policies {
		if !slices.Contains(names, p.Name) {
			return fmt.Errorf("unknown policy %q (want one of %v)", p.Name, names)
		}
		if p.Name == "lua" && p.Script == "" {
			return fmt.Errorf("lua policy needs a script")
		}
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Params renders the explicitly set game parameters by name.
func (g *GameConfig) Params() map[string]string {
	params := map[string]string{}
	if g.NumCards != nil {
		params[game.ParamNumCards] = strconv.Itoa(*g.NumCards)
	}
	if g.Players != nil {
		params[game.ParamPlayers] = strconv.Itoa(*g.Players)
	}
	if g.PointsOrder != nil {
		params[game.ParamPointsOrder] = *g.PointsOrder
	}
	if g.ReturnsType != nil {
		params[game.ParamReturnsType] = *g.ReturnsType
	}
	if g.ImpInfo != nil {
		params[game.ParamImpInfo] = strconv.FormatBool(*g.ImpInfo)
	}
	return params
}

// ProgressInterval returns the parsed progress_every duration.
func (s *SimulationConfig) ProgressInterval() time.Duration {
	d, _ := time.ParseDuration(s.ProgressEvery)
	return d
}

// PolicySpecs converts the policy blocks for the simulator.
func (s *SimulationConfig) PolicySpecs() []policy.Spec {
	specs := make([]policy.Spec, len(s.Policies))
	for i, p := range s.Policies {
		specs[i] = policy.Spec{Name: p.Name, Script: p.Script}
	}
	return specs
}
