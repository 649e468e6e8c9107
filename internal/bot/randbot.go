package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/royalpoker/internal/game"
)

// RandomBot picks a uniformly random legal action. Bets are sized up to the
// pot so a single bot does not end every hand by shoving.
type RandomBot struct {
	logger *log.Logger
	rng    *rand.Rand
}

// NewRandomBot creates a new RandomBot instance
func NewRandomBot(logger *log.Logger, rng *rand.Rand) *RandomBot {
	return &RandomBot{logger: logger.WithPrefix("randbot"), rng: rng}
}

func (r *RandomBot) Decide(_ context.Context, table game.TableState) (game.Decision, error) {
	va := table.ValidActions[r.rng.IntN(len(table.ValidActions))]
	d := game.Decision{Action: va.Action, Reasoning: "random"}

	if va.Action == game.Bet || va.Action == game.Raise {
		hi := min(va.MaxAmount, max(va.MinAmount, table.ToCall+table.Pot))
		d.Amount = va.MinAmount + r.rng.IntN(hi-va.MinAmount+1)
	}

	r.logger.Debug("Random decision", "player", table.Player.Name, "action", d.Action, "amount", d.Amount)
	return d, nil
}
