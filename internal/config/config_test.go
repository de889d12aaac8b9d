package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/goofspiel/cards"
	"github.com/lox/goofspiel/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	c, err := Load(filepath.Join(t.TempDir(), "goofspiel.hcl"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, log.InfoLevel, c.Level())
	assert.Equal(t, "goofspiel", c.Game.Name)
	assert.Empty(t, c.Game.Params())
	assert.Equal(t, DefaultPlaythroughs, c.Simulation.Playthroughs)
	assert.Positive(t, c.Simulation.Workers)
	assert.Equal(t, 5*time.Second, c.Simulation.ProgressInterval())
	assert.Equal(t, []policy.Spec{{Name: "random"}}, c.Simulation.PolicySpecs())
}

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(`
log_level = "debug"

game "goofspiel" {
  num_cards    = 5
  points_order = "descending"
  imp_info     = true
}

simulation {
  playthroughs   = 250
  workers        = 3
  seed           = 42
  progress_every = "250ms"

  policy "match" {}
  policy "lua" {
    script = "/opt/bots/bid.lua"
  }
}
`), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, log.DebugLevel, c.Level())
	assert.Equal(t, map[string]string{
		"num_cards":    "5",
		"points_order": "descending",
		"imp_info":     "true",
	}, c.Game.Params())

	s := c.Simulation
	assert.Equal(t, 250, s.Playthroughs)
	assert.Equal(t, 3, s.Workers)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 250*time.Millisecond, s.ProgressInterval())
	assert.Equal(t, []policy.Spec{{Name: "match"}, {Name: "lua", Script: "/opt/bots/bid.lua"}}, s.PolicySpecs())
}

func TestLoadResolvesScriptsRelativeToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "goofspiel.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation {
  policy "lua" {
    script = "bots/bid.lua"
  }
}
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bots", "bid.lua"), c.Simulation.Policies[0].Script)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`game "goofspiel" {`), "broken.hcl")
	assert.ErrorContains(t, err, "parse")

	_, err = Parse([]byte(`game "goofspiel" { deck = 52 }`), "unknown.hcl")
	assert.ErrorContains(t, err, "decode")

	_, err = Parse([]byte(`game "goofspiel" { num_cards = "many" }`), "type.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"playthroughs", func(c *Config) { c.Simulation.Playthroughs = -1 }},
		{"workers", func(c *Config) { c.Simulation.Workers = -2 }},
		{"progress", func(c *Config) { c.Simulation.ProgressEvery = "soon" }},
		{"policy name", func(c *Config) { c.Simulation.Policies = []PolicyConfig{{Name: "oracle"}} }},
		{"lua without script", func(c *Config) { c.Simulation.Policies = []PolicyConfig{{Name: "lua"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadExampleConfig(t *testing.T) {
	t.Parallel()

	c, err := Load(filepath.Join("..", "..", "configs", "example.hcl"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 10000, c.Simulation.Playthroughs)
	assert.Equal(t, 2*time.Second, c.Simulation.ProgressInterval())
	specs := c.Simulation.PolicySpecs()
	require.Len(t, specs, 2)
	assert.Equal(t, "match", specs[1].Name)

	greedy, err := policy.New(specs[0], log.NewWithOptions(io.Discard, log.Options{}))
	require.NoError(t, err)
	defer policy.Close([]policy.Policy{greedy})

	hand := cards.FullHand(3)
	assert.Equal(t, cards.Card(2), greedy.Bid(policy.View{Hand: hand, PointCard: 1}, nil))
	assert.Equal(t, cards.Card(0), greedy.Bid(policy.View{Hand: hand, PointCard: 2}, nil))
}
