package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/royalpoker/internal/game"
)

var actionWords = map[string]game.Action{
	"f": game.Fold, "fold": game.Fold,
	"k": game.Check, "x": game.Check, "check": game.Check,
	"c": game.Call, "call": game.Call,
	"b": game.Bet, "bet": game.Bet,
	"r": game.Raise, "raise": game.Raise,
}

// ParseDecision turns a typed command into a decision that is legal on this
// turn. The action may be a word ("raise 40"), its first letter ("r 40"), the
// number of an entry in the menu ("3 40") or "allin".
func ParseDecision(input string, table game.TableState) (game.Decision, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return game.Decision{}, fmt.Errorf("enter an action")
	}

	if fields[0] == "a" || fields[0] == "allin" || fields[0] == "all-in" {
		return allIn(table), nil
	}

	action, err := parseAction(fields[0], table)
	if err != nil {
		return game.Decision{}, err
	}
	if action == game.Call && table.ToCall == 0 {
		action = game.Check
	}
	va, ok := table.Can(action)
	if !ok {
		return game.Decision{}, fmt.Errorf("cannot %s now", action)
	}
	if action != game.Bet && action != game.Raise {
		return game.Decision{Action: action}, nil
	}

	if len(fields) < 2 {
		return game.Decision{}, fmt.Errorf("%s needs an amount from %d to %d", action, va.MinAmount, va.MaxAmount)
	}
	amount, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Decision{}, fmt.Errorf("invalid amount %q", fields[1])
	}
	if amount < va.MinAmount || amount > va.MaxAmount {
		return game.Decision{}, fmt.Errorf("%s must be from %d to %d", action, va.MinAmount, va.MaxAmount)
	}
	return game.Decision{Action: action, Amount: amount}, nil
}

func parseAction(word string, table game.TableState) (game.Action, error) {
	if n, err := strconv.Atoi(word); err == nil {
		if n < 1 || n > len(table.ValidActions) {
			return 0, fmt.Errorf("choose an option from 1 to %d", len(table.ValidActions))
		}
		return table.ValidActions[n-1].Action, nil
	}
	if action, ok := actionWords[word]; ok {
		return action, nil
	}
	return 0, fmt.Errorf("unknown action %q", word)
}

func allIn(table game.TableState) game.Decision {
	for _, action := range []game.Action{game.Raise, game.Bet} {
		if va, ok := table.Can(action); ok {
			return game.Decision{Action: action, Amount: va.MaxAmount}
		}
	}
	if table.ToCall > 0 {
		return game.Decision{Action: game.Call}
	}
	return game.Decision{Action: game.Check}
}

// describe renders a menu entry for a legal action.
func describe(va game.ValidAction, table game.TableState) string {
	switch va.Action {
	case game.Call:
		if va.MaxAmount < table.ToCall {
			return fmt.Sprintf("call %d (all in)", va.MaxAmount)
		}
		return fmt.Sprintf("call %d", va.MaxAmount)
	case game.Bet, game.Raise:
		return fmt.Sprintf("%s %d-%d", va.Action, va.MinAmount, va.MaxAmount)
	}
	return va.Action.String()
}
