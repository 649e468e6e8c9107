package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/evaluator"
	"github.com/lox/royalpoker/internal/randutil"
)

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	logger        *log.Logger
	clock         quartz.Clock
	rng           *rand.Rand
	deck          *deck.Deck
	estimator     *evaluator.Estimator
	estimates     bool
	tieRule       evaluator.TieRule
	riverBetting  bool
	bus           EventBus
	maxRejections int
}

func newEngineConfig(opts ...Option) *engineConfig {
	cfg := &engineConfig{
		logger:        log.New(io.Discard),
		clock:         quartz.NewReal(),
		estimates:     true,
		tieRule:       evaluator.TieRuleHoleCard,
		maxRejections: defaultMaxRejections,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(randutil.Seed(0))
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.estimator == nil {
		cfg.estimator = evaluator.NewEstimator(evaluator.WithTieRule(cfg.tieRule))
	}
	return cfg
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) {
		if logger == nil {
			panic("logger must not be nil")
		}
		c.logger = logger
	}
}

// WithClock sets the clock used for event timestamps and hand duration.
func WithClock(clock quartz.Clock) Option {
	return func(c *engineConfig) { c.clock = clock }
}

// WithRNG sets the random source used to shuffle and to seed the estimator.
func WithRNG(rng *rand.Rand) Option {
	return func(c *engineConfig) { c.rng = rng }
}

// WithSeed is WithRNG with a deterministic generator for seed.
func WithSeed(seed int64) Option {
	return func(c *engineConfig) { c.rng = randutil.New(seed) }
}

// WithDeck plays the next hand from d as-is, without shuffling. Cards are
// dealt from the top: the last card of d.Cards() comes first.
func WithDeck(d *deck.Deck) Option {
	return func(c *engineConfig) { c.deck = d }
}

// WithEstimator replaces the default Monte Carlo estimator.
func WithEstimator(est *evaluator.Estimator) Option {
	return func(c *engineConfig) { c.estimator = est }
}

// WithoutEstimates skips the per street probability estimates.
func WithoutEstimates() Option {
	return func(c *engineConfig) { c.estimates = false }
}

// WithTieRule sets how showdowns between equal categories are settled. It
// also applies to the default estimator.
func WithTieRule(rule evaluator.TieRule) Option {
	return func(c *engineConfig) { c.tieRule = rule }
}

// WithRiverBetting adds a betting round after the river is dealt.
func WithRiverBetting(enabled bool) Option {
	return func(c *engineConfig) { c.riverBetting = enabled }
}

// WithEventBus publishes events on bus instead of a private one.
func WithEventBus(bus EventBus) Option {
	return func(c *engineConfig) { c.bus = bus }
}

// WithMaxRejections bounds how many illegal decisions a player may submit on
// one turn before the hand is aborted.
func WithMaxRejections(n int) Option {
	return func(c *engineConfig) {
		if n < 1 {
			panic("max rejections must be at least 1")
		}
		c.maxRejections = n
	}
}
