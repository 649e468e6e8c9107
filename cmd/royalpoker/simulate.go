package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/royalpoker/internal/config"
	"github.com/lox/royalpoker/internal/game"
	"github.com/lox/royalpoker/internal/simulator"
)

type SimulateCmd struct {
	Hands   int           `default:"500" help:"Number of hands to play"`
	Bots    []string      `sep:"," default:"call,random,odds" help:"Bots to seat, e.g. --bots call,random,odds"`
	Chips   int           `help:"Stack every bot starts each hand with"`
	Workers int           `help:"Hands played in parallel (0 for one per CPU)"`
	Timeout time.Duration `default:"30s" help:"Give up on a single hand after this long"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	e, err := g.setup(os.Stdout)
	if err != nil {
		return err
	}
	defer e.close()

	chips := e.cfg.Game.StartingChips
	if c.Chips != 0 {
		if c.Chips < config.MinStartingChips {
			return fmt.Errorf("chips must be at least %d, got %d", config.MinStartingChips, c.Chips)
		}
		chips = c.Chips
	}

	sim, err := simulator.New(simulator.Config{
		Hands:   c.Hands,
		Bots:    c.Bots,
		Chips:   chips,
		Seed:    e.cfg.Game.Seed,
		Timeout: c.Timeout,
		Workers: c.Workers,
		Logger:  e.logger,
		Options: []game.Option{
			game.WithTieRule(e.cfg.TieRule()),
			game.WithRiverBetting(e.cfg.Game.RiverBetting),
		},
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	e.logger.Info("Simulation complete", "hands", report.Hands, "duration", elapsed)

	fmt.Fprintf(e.out, "Played %d hands in %s (seed %d)\n", report.Hands, elapsed.Round(time.Millisecond), e.cfg.Game.Seed)
	report.WriteSummary(e.out)
	return nil
}
