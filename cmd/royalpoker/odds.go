package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/evaluator"
	"github.com/lox/royalpoker/internal/game"
	"github.com/lox/royalpoker/internal/randutil"
)

type OddsCmd struct {
	Hands []string `arg:"" help:"Hole cards per player, e.g. AsAd KhQh"`
	Board string   `short:"b" help:"Community cards dealt so far, e.g. Td7s8h"`
}

func (c *OddsCmd) Run(g *Globals) error {
	e, err := g.setup(os.Stdout)
	if err != nil {
		return err
	}
	defer e.close()

	hands, err := parseHands(c.Hands)
	if err != nil {
		return err
	}
	board, err := parseBoard(c.Board)
	if err != nil {
		return err
	}
	used := slices.Concat(append(hands, board)...)
	if err := validateNoDuplicates(used); err != nil {
		return err
	}

	contenders := make([]evaluator.Contender, len(hands))
	players := make([]game.PlayerState, len(hands))
	for i, h := range hands {
		contenders[i] = evaluator.Contender{ID: i + 1, Hole: h}
		players[i] = game.PlayerState{ID: i + 1, Name: game.FormatCards(h)}
	}

	ctx, cancel := signalContext()
	defer cancel()

	rng := randutil.New(e.cfg.Game.Seed)
	odds, err := e.estimator().Estimate(ctx, rng, contenders, board, deck.Without(used...).Cards())
	if err != nil {
		return err
	}
	e.logger.Info("Estimated odds", "hands", c.Hands, "board", c.Board, "trials", odds.Trials)

	label := "Preflop"
	if len(board) > 0 {
		label = "Board " + game.FormatCards(board)
	}
	snap := game.ProbabilitySnapshot{Label: label, Odds: odds}
	fmt.Fprint(e.out, e.theme.Odds(snap, players))
	return nil
}

func parseHands(handStrings []string) ([][]deck.Card, error) {
	if len(handStrings) < 1 {
		return nil, fmt.Errorf("at least one hand is required")
	}
	hands := make([][]deck.Card, 0, len(handStrings))
	for i, s := range handStrings {
		hand, err := deck.ParseCards(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func parseBoard(s string) ([]deck.Card, error) {
	if s == "" {
		return nil, nil
	}
	board, err := deck.ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	if len(board) > 5 {
		return nil, fmt.Errorf("board cannot have more than 5 cards, got %d", len(board))
	}
	return board, nil
}

func validateNoDuplicates(cards []deck.Card) error {
	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return fmt.Errorf("duplicate card: %s", c.Notation())
		}
		seen[c] = true
	}
	return nil
}
