package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/royalpoker/internal/config"
	"github.com/lox/royalpoker/internal/display"
	"github.com/lox/royalpoker/internal/evaluator"
	"github.com/lox/royalpoker/internal/game"
	"github.com/lox/royalpoker/internal/randutil"
)

// Globals are flags shared by every command. Set flags override the file.
type Globals struct {
	Config      string `short:"c" default:"royalpoker.hcl" type:"path" help:"HCL configuration file"`
	NoColor     bool   `help:"Disable coloured output"`
	LogLevel    string `help:"Log level (debug|info|warn|error)"`
	LogFile     string `type:"path" help:"Log file, '-' for stderr"`
	Seed        int64  `help:"Random seed for reproducible games (0 picks one)"`
	Simulations int    `short:"n" help:"Monte Carlo simulations per estimate"`
	TieRule     string `help:"Tie break rule (hole-card|full-hand)"`
}

// env is everything a command needs once flags and the file are merged.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	theme  *display.Theme
	out    io.Writer
	close  func()
}

func (g *Globals) setup(out io.Writer) (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	g.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", g.Config, err)
	}
	cfg.Game.Seed = randutil.Seed(cfg.Game.Seed)

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Starting royalpoker", "version", version, "config", g.Config, "seed", cfg.Game.Seed)

	theme := display.NewTheme(out, display.Profile(out, cfg.ColorEnabled()), cfg.Display.BarWidth)
	return &env{cfg: cfg, logger: logger, theme: theme, out: out, close: closeLog}, nil
}

func (g *Globals) apply(cfg *config.Config) {
	if g.NoColor {
		off := false
		cfg.Display.Color = &off
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if g.Seed != 0 {
		cfg.Game.Seed = g.Seed
	}
	if g.Simulations != 0 {
		cfg.Estimator.Simulations = g.Simulations
	}
	if g.TieRule != "" {
		cfg.Game.TieRule = g.TieRule
	}
}

// newLogger writes to the configured file so log lines do not interleave
// with the game on the terminal.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.Log.File != "-" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeLog = func() {
			if err := f.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "royalpoker",
		Level:           cfg.LogLevel(),
	})
	return logger, closeLog, nil
}

func (e *env) estimator() *evaluator.Estimator {
	opts := []evaluator.EstimatorOption{
		evaluator.WithSimulations(e.cfg.Estimator.Simulations),
		evaluator.WithTieRule(e.cfg.TieRule()),
	}
	if e.cfg.Estimator.Workers > 0 {
		opts = append(opts, evaluator.WithWorkers(e.cfg.Estimator.Workers))
	}
	return evaluator.NewEstimator(opts...)
}

func (e *env) gameOptions() []game.Option {
	return []game.Option{
		game.WithLogger(e.logger),
		game.WithSeed(e.cfg.Game.Seed),
		game.WithTieRule(e.cfg.TieRule()),
		game.WithEstimator(e.estimator()),
		game.WithRiverBetting(e.cfg.Game.RiverBetting),
	}
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
