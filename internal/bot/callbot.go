package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/royalpoker/internal/game"
)

// CallBot checks when it can and calls any bet.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger.WithPrefix("callbot")}
}

func (c *CallBot) Decide(_ context.Context, table game.TableState) (game.Decision, error) {
	if table.ToCall > 0 {
		c.logger.Debug("Calling", "player", table.Player.Name, "toCall", table.ToCall)
		return choose(table, "call-bot calling", game.Call, 0, game.Fold), nil
	}
	return choose(table, "call-bot checking", game.Check, 0), nil
}
