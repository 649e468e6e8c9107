package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/royalpoker/internal/evaluator"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	require.NoError(t, c.Validate())
	assert.Equal(t, 1000, c.Game.StartingChips)
	assert.Equal(t, evaluator.DefaultSimulations, c.Estimator.Simulations)
	assert.Equal(t, evaluator.TieRuleHoleCard, c.TieRule())
	assert.Equal(t, log.InfoLevel, c.LogLevel())
	assert.Equal(t, "royalpoker.log", c.Log.File)
	assert.True(t, c.ColorEnabled())
	assert.Empty(t, c.Players)
}

func TestLoadFile(t *testing.T) {
	src := `
game {
  starting_chips = 500
  river_betting  = true
  tie_rule       = "full-hand"
  seed           = 42
}

estimator {
  simulations = 2000
  workers     = 2
}

log {
  level = "debug"
}

display {
  color = false
}

player "Alice" {}

player "Robo" {
  agent = "odds"
  chips = 250
}
`
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 500, c.Game.StartingChips)
	assert.True(t, c.Game.RiverBetting)
	assert.Equal(t, evaluator.TieRuleFullHand, c.TieRule())
	assert.Equal(t, int64(42), c.Game.Seed)
	assert.Equal(t, 2000, c.Estimator.Simulations)
	assert.Equal(t, 2, c.Estimator.Workers)
	assert.Equal(t, log.DebugLevel, c.LogLevel())
	assert.Equal(t, "royalpoker.log", c.Log.File)
	assert.False(t, c.ColorEnabled())
	assert.Equal(t, 18, c.Display.BarWidth)
	assert.Equal(t, []PlayerConfig{
		{Name: "Alice", Agent: "human", Chips: 500},
		{Name: "Robo", Agent: "odds", Chips: 250},
	}, c.Players)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`game {`), "broken.hcl")
	assert.ErrorContains(t, err, "parse")

	_, err = Parse([]byte(`game { unknown = 1 }`), "unknown.hcl")
	assert.ErrorContains(t, err, "decode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"too few chips", func(c *Config) { c.Game.StartingChips = 9 }, "at least 10"},
		{"unknown tie rule", func(c *Config) { c.Game.TieRule = "coin-flip" }, "tie rule"},
		{"no simulations", func(c *Config) { c.Estimator.Simulations = -1 }, "simulations"},
		{"negative workers", func(c *Config) { c.Estimator.Workers = -1 }, "workers"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"one player", func(c *Config) {
			c.Players = []PlayerConfig{{Name: "A", Agent: "human", Chips: 100}}
		}, "2 to 6"},
		{"duplicate player", func(c *Config) {
			c.Players = []PlayerConfig{{Name: "A", Agent: "human", Chips: 100}, {Name: "A", Agent: "call", Chips: 100}}
		}, "twice"},
		{"unknown agent", func(c *Config) {
			c.Players = []PlayerConfig{{Name: "A", Agent: "human", Chips: 100}, {Name: "B", Agent: "psychic", Chips: 100}}
		}, "unknown agent"},
		{"poor player", func(c *Config) {
			c.Players = []PlayerConfig{{Name: "A", Agent: "human", Chips: 100}, {Name: "B", Agent: "call", Chips: 5}}
		}, "chips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.errMsg)
		})
	}
}
