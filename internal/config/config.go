// Package config loads the royalpoker HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/royalpoker/internal/evaluator"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "royalpoker.hcl"

// MinStartingChips is the smallest stack a player may sit down with.
const MinStartingChips = 10

// AgentKinds lists the agent names a player block may use.
var AgentKinds = []string{"human", "call", "fold", "random", "odds"}

// Config is the complete royalpoker configuration.
type Config struct {
	Game      GameSettings
	Estimator EstimatorSettings
	Log       LogSettings
	Display   DisplaySettings
	Players   []PlayerConfig
}

// GameSettings controls the table.
type GameSettings struct {
	StartingChips int    `hcl:"starting_chips,optional"`
	RiverBetting  bool   `hcl:"river_betting,optional"`
	TieRule       string `hcl:"tie_rule,optional"`
	Seed          int64  `hcl:"seed,optional"`
}

// EstimatorSettings controls the Monte Carlo estimator.
type EstimatorSettings struct {
	Simulations int `hcl:"simulations,optional"`
	Workers     int `hcl:"workers,optional"` // 0 picks one per CPU
}

// LogSettings controls the log file.
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// DisplaySettings controls terminal rendering.
type DisplaySettings struct {
	Color    *bool `hcl:"color,optional"`
	BarWidth int   `hcl:"bar_width,optional"`
}

// PlayerConfig seats a named player.
type PlayerConfig struct {
	Name  string `hcl:"name,label"`
	Agent string `hcl:"agent,optional"`
	Chips int    `hcl:"chips,optional"`
}

// file mirrors the HCL layout; every block is optional.
type file struct {
	Game      *GameSettings      `hcl:"game,block"`
	Estimator *EstimatorSettings `hcl:"estimator,block"`
	Log       *LogSettings       `hcl:"log,block"`
	Display   *DisplaySettings   `hcl:"display,block"`
	Players   []PlayerConfig     `hcl:"player,block"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c := &Config{Players: raw.Players}
	if raw.Game != nil {
		c.Game = *raw.Game
	}
	if raw.Estimator != nil {
		c.Estimator = *raw.Estimator
	}
	if raw.Log != nil {
		c.Log = *raw.Log
	}
	if raw.Display != nil {
		c.Display = *raw.Display
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Game.StartingChips == 0 {
		c.Game.StartingChips = 1000
	}
	if c.Game.TieRule == "" {
		c.Game.TieRule = evaluator.TieRuleHoleCard.String()
	}
	if c.Estimator.Simulations == 0 {
		c.Estimator.Simulations = evaluator.DefaultSimulations
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "royalpoker.log"
	}
	if c.Display.Color == nil {
		on := true
		c.Display.Color = &on
	}
	if c.Display.BarWidth == 0 {
		c.Display.BarWidth = 18
	}
	for i := range c.Players {
		if c.Players[i].Agent == "" {
			c.Players[i].Agent = "human"
		}
		if c.Players[i].Chips == 0 {
			c.Players[i].Chips = c.Game.StartingChips
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.StartingChips < MinStartingChips {
		return fmt.Errorf("starting chips must be at least %d, got %d", MinStartingChips, c.Game.StartingChips)
	}
	if _, err := evaluator.ParseTieRule(c.Game.TieRule); err != nil {
		return err
	}
	if c.Estimator.Simulations <= 0 {
		return fmt.Errorf("simulations must be positive, got %d", c.Estimator.Simulations)
	}
	if c.Estimator.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Estimator.Workers)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Display.BarWidth < 1 {
		return fmt.Errorf("bar width must be positive, got %d", c.Display.BarWidth)
	}

	if n := len(c.Players); n != 0 && (n < 2 || n > 6) {
		return fmt.Errorf("need 2 to 6 players, got %d", n)
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("player %q is configured twice", p.Name)
		}
		seen[p.Name] = true
		if !slices.Contains(AgentKinds, p.Agent) {
			return fmt.Errorf("player %s: unknown agent %q", p.Name, p.Agent)
		}
		if p.Chips < MinStartingChips {
			return fmt.Errorf("player %s: chips must be at least %d", p.Name, MinStartingChips)
		}
	}
	return nil
}

// TieRule returns the parsed tie rule. Call Validate first.
func (c *Config) TieRule() evaluator.TieRule {
	rule, _ := evaluator.ParseTieRule(c.Game.TieRule)
	return rule
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ColorEnabled reports whether output should be coloured.
func (c *Config) ColorEnabled() bool {
	return c.Display.Color == nil || *c.Display.Color
}
