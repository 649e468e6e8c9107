package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/royalpoker/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger.WithPrefix("foldbot")}
}

func (f *FoldBot) Decide(_ context.Context, table game.TableState) (game.Decision, error) {
	if table.ToCall == 0 {
		return choose(table, "fold-bot checking", game.Check, 0), nil
	}
	f.logger.Debug("Folding", "player", table.Player.Name, "toCall", table.ToCall)
	return game.Decision{Action: game.Fold, Reasoning: "fold-bot folding"}, nil
}
