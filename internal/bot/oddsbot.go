package bot

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/evaluator"
	"github.com/lox/royalpoker/internal/game"
)

const (
	// oddsRounds is how many opponent holdings are sampled per decision.
	oddsRounds = 8
	valueBet   = 0.60
	valueRaise = 0.75
)

// OddsBot plays by Monte Carlo equity. Opponents' hole cards are unknown, so
// it samples several opponent holdings and runs the estimator for each.
type OddsBot struct {
	logger *log.Logger
	rng    *rand.Rand
	est    *evaluator.Estimator
}

// NewOddsBot creates an OddsBot. A nil estimator uses DefaultSimulations
// split across the sampled holdings.
func NewOddsBot(logger *log.Logger, rng *rand.Rand, est *evaluator.Estimator) *OddsBot {
	if est == nil {
		est = evaluator.NewEstimator(
			evaluator.WithSimulations(evaluator.DefaultSimulations/oddsRounds),
			evaluator.WithWorkers(1),
		)
	}
	return &OddsBot{logger: logger.WithPrefix("oddsbot"), rng: rng, est: est}
}

func (o *OddsBot) Decide(ctx context.Context, table game.TableState) (game.Decision, error) {
	equity, err := o.Equity(ctx, table.Player.Hole, table.Community, table.Opponents())
	if err != nil {
		return game.Decision{}, fmt.Errorf("odds bot: %w", err)
	}

	halfPot := max(1, table.Pot/2)
	var d game.Decision
	switch {
	case table.ToCall == 0 && equity >= valueBet:
		d = choose(table, fmt.Sprintf("betting with %.0f%% equity", equity*100), game.Bet, halfPot, game.Check)
	case table.ToCall == 0:
		d = choose(table, fmt.Sprintf("checking with %.0f%% equity", equity*100), game.Check, 0)
	case equity >= valueRaise:
		d = choose(table, fmt.Sprintf("raising with %.0f%% equity", equity*100), game.Raise, table.ToCall+halfPot, game.Call)
	case equity >= potOdds(table):
		d = choose(table, fmt.Sprintf("calling: %.0f%% equity beats %.0f%% pot odds", equity*100, potOdds(table)*100), game.Call, 0)
	default:
		d = game.Decision{Action: game.Fold, Reasoning: fmt.Sprintf("folding with %.0f%% equity", equity*100)}
	}

	o.logger.Debug("Odds decision", "player", table.Player.Name, "equity", equity,
		"toCall", table.ToCall, "pot", table.Pot, "action", d.Action, "amount", d.Amount)
	return d, nil
}

// Equity estimates the share of the pot hole wins against opponents random
// hands, counting a tie as half.
func (o *OddsBot) Equity(ctx context.Context, hole, community []deck.Card, opponents int) (float64, error) {
	if opponents < 1 {
		return 1, nil
	}
	const self = 0
	pool := deck.Without(append(append([]deck.Card(nil), hole...), community...)...)

	var wins, ties, trials int
	for range oddsRounds {
		d := pool.Shuffled(o.rng)
		contenders := []evaluator.Contender{{ID: self, Hole: hole}}
		for i := 1; i <= opponents; i++ {
			contenders = append(contenders, evaluator.Contender{ID: i, Hole: d.DealN(2)})
		}
		odds, err := o.est.Estimate(ctx, o.rng, contenders, community, d.Cards())
		if err != nil {
			return 0, err
		}
		wins += odds.Wins[self]
		ties += odds.Ties
		trials += odds.Trials
	}
	return (float64(wins) + float64(ties)/2) / float64(trials), nil
}

// potOdds is the share of the final pot the caller has to put in.
func potOdds(table game.TableState) float64 {
	call := min(table.ToCall, table.Player.Chips)
	return float64(call) / float64(table.Pot+call)
}
