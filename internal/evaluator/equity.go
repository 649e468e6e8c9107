package evaluator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/randutil"
)

const (
	// DefaultSimulations is the number of trials per estimate.
	DefaultSimulations = 600
	// parallelThreshold is the trial count below which one worker is used.
	parallelThreshold = 500
	maxWorkers        = 8
)

// ErrNoContenders is returned when an estimate is requested for nobody.
var ErrNoContenders = errors.New("no contenders")

// Contender is a player still in the hand, identified by ID.
type Contender struct {
	ID   int
	Hole []deck.Card
}

// Odds holds raw win and tie counts from an estimate.
type Odds struct {
	Trials int
	Wins   map[int]int
	Ties   int
}

// Win returns the percentage of trials won outright by player id.
func (o Odds) Win(id int) float64 {
	if o.Trials == 0 {
		return 0
	}
	return float64(o.Wins[id]) / float64(o.Trials) * 100
}

// Tie returns the percentage of trials that ended in an unresolved tie.
func (o Odds) Tie() float64 {
	if o.Trials == 0 {
		return 0
	}
	return float64(o.Ties) / float64(o.Trials) * 100
}

// Percentages returns each contender's win percentage keyed by ID.
func (o Odds) Percentages() map[int]float64 {
	out := make(map[int]float64, len(o.Wins))
	for id := range o.Wins {
		out[id] = o.Win(id)
	}
	return out
}

// Estimator runs Monte Carlo board completions.
type Estimator struct {
	simulations int
	workers     int
	tieRule     TieRule
}

// EstimatorOption configures an Estimator.
type EstimatorOption func(*Estimator)

// WithSimulations sets the number of trials per estimate.
func WithSimulations(n int) EstimatorOption {
	return func(e *Estimator) { e.simulations = n }
}

// WithWorkers sets the number of goroutines trials are split across. Odds
// for a given seed are reproducible only with the same worker count, but the
// caller's generator advances by one draw per Estimate regardless.
func WithWorkers(n int) EstimatorOption {
	return func(e *Estimator) { e.workers = n }
}

// WithTieRule sets how players sharing the best category are separated.
func WithTieRule(rule TieRule) EstimatorOption {
	return func(e *Estimator) { e.tieRule = rule }
}

// NewEstimator creates an estimator running DefaultSimulations trials on up
// to min(NumCPU, 8) workers with the hole card tie rule.
func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		simulations: DefaultSimulations,
		workers:     min(runtime.NumCPU(), maxWorkers),
		tieRule:     TieRuleHoleCard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulations returns the configured trial count.
func (e *Estimator) Simulations() int { return e.simulations }

// TieRule returns the configured tie rule.
func (e *Estimator) TieRule() TieRule { return e.tieRule }

type workerResult struct {
	wins []int
	ties int
}

// Estimate samples the missing community cards from remaining without
// replacement and counts, per trial, which contender holds the best hand.
// None of the supplied slices are modified.
func (e *Estimator) Estimate(ctx context.Context, rng *rand.Rand, contenders []Contender, community, remaining []deck.Card) (Odds, error) {
	if len(contenders) == 0 {
		return Odds{}, ErrNoContenders
	}
	if len(community) > 5 {
		return Odds{}, fmt.Errorf("community has %d cards: %w", len(community), ErrTooManyCards)
	}
	for _, c := range contenders {
		if len(c.Hole) != 2 {
			return Odds{}, fmt.Errorf("contender %d has %d hole cards, want 2", c.ID, len(c.Hole))
		}
	}
	if e.simulations <= 0 {
		return Odds{}, fmt.Errorf("simulations must be positive, got %d", e.simulations)
	}
	needed := 5 - len(community)
	if needed > len(remaining) {
		return Odds{}, fmt.Errorf("need %d board cards but only %d remain", needed, len(remaining))
	}

	// One draw per call, whatever the worker count, so callers sharing rng
	// see the same sequence afterwards on every machine.
	var base *rand.Rand
	if rng != nil {
		base = randutil.Child(rng)
	}

	odds := Odds{Trials: e.simulations, Wins: make(map[int]int, len(contenders))}
	for _, c := range contenders {
		odds.Wins[c.ID] = 0
	}

	// A complete board gives the same answer every trial.
	if needed == 0 {
		res := runTrials(ctx, e.tieRule, contenders, community, nil, 1, nil)
		for i, c := range contenders {
			odds.Wins[c.ID] = res.wins[i] * e.simulations
		}
		odds.Ties = res.ties * e.simulations
		return odds, nil
	}

	workers := max(e.workers, 1)
	if e.simulations < parallelThreshold || workers > e.simulations {
		workers = 1
	}
	perWorker := e.simulations / workers
	remainder := e.simulations % workers

	results := make([]workerResult, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		// Seeds are drawn here, in order, so a fixed rng gives fixed results.
		workerRng := randutil.Child(base)
		g.Go(func() error {
			res := runTrials(gctx, e.tieRule, contenders, community, remaining, trials, workerRng)
			if err := gctx.Err(); err != nil {
				return err
			}
			results[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Odds{}, fmt.Errorf("estimate cancelled: %w", err)
	}

	for _, res := range results {
		for i, c := range contenders {
			odds.Wins[c.ID] += res.wins[i]
		}
		odds.Ties += res.ties
	}
	return odds, nil
}

// runTrials plays trials board completions on private scratch buffers.
func runTrials(ctx context.Context, rule TieRule, contenders []Contender, community, remaining []deck.Card, trials int, rng *rand.Rand) workerResult {
	res := workerResult{wins: make([]int, len(contenders))}
	pool := append([]deck.Card(nil), remaining...)
	needed := 5 - len(community)

	var board [5]deck.Card
	copy(board[:], community)
	var seven [7]deck.Card
	entries := make([]Entry, len(contenders))
	for i, c := range contenders {
		entries[i] = Entry{ID: c.ID, Hole: c.Hole}
	}
	winners := make([]int, 0, len(contenders))

	for t := 0; t < trials; t++ {
		if t%64 == 0 && ctx.Err() != nil {
			return res
		}

		// Partial Fisher-Yates: the first needed slots become the sample.
		for k := 0; k < needed; k++ {
			j := k + rng.IntN(len(pool)-k)
			pool[k], pool[j] = pool[j], pool[k]
			board[len(community)+k] = pool[k]
		}

		for i, c := range contenders {
			n := copy(seven[:], c.Hole)
			n += copy(seven[n:], board[:])
			entries[i].Rank = bestOf(seven[:n]).Rank
		}

		var outcome Resolution
		winners, outcome = resolveInto(winners[:0], entries, rule)
		if outcome == Unresolved {
			res.ties++
		} else {
			res.wins[winners[0]]++
		}
	}
	return res
}
