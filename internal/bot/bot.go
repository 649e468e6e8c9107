// Package bot provides computer players for the game engine.
package bot

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/royalpoker/internal/evaluator"
	"github.com/lox/royalpoker/internal/game"
	"github.com/lox/royalpoker/internal/randutil"
)

// Option configures bots built by New.
type Option func(*options)

type options struct {
	logger    *log.Logger
	rng       *rand.Rand
	estimator *evaluator.Estimator
}

// WithLogger sets the logger bots report their decisions to.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRNG sets the random source for bots that need one.
func WithRNG(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithEstimator sets the estimator OddsBot uses.
func WithEstimator(est *evaluator.Estimator) Option {
	return func(o *options) { o.estimator = est }
}

// New builds the bot registered under kind ("call", "fold", "random" or "odds").
func New(kind string, opts ...Option) (game.Agent, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.rng == nil {
		o.rng = randutil.New(randutil.Seed(0))
	}

	switch kind {
	case "call":
		return NewCallBot(o.logger), nil
	case "fold":
		return NewFoldBot(o.logger), nil
	case "random":
		return NewRandomBot(o.logger, o.rng), nil
	case "odds":
		return NewOddsBot(o.logger, o.rng, o.estimator), nil
	}
	return nil, fmt.Errorf("unknown bot %q", kind)
}

// Kinds lists the names New accepts.
func Kinds() []string {
	return []string{"call", "fold", "random", "odds"}
}

// choose returns the decision for action when it is legal on this turn,
// otherwise the first legal alternative from fallbacks.
func choose(table game.TableState, reasoning string, action game.Action, amount int, fallbacks ...game.Action) game.Decision {
	for _, a := range append([]game.Action{action}, fallbacks...) {
		va, ok := table.Can(a)
		if !ok {
			continue
		}
		d := game.Decision{Action: a, Reasoning: reasoning}
		if a == game.Bet || a == game.Raise {
			d.Amount = min(max(amount, va.MinAmount), va.MaxAmount)
		}
		return d
	}
	return game.Decision{Action: game.Fold, Reasoning: "no legal action: " + reasoning}
}
