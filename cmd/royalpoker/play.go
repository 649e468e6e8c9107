package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lox/royalpoker/internal/config"
	"github.com/lox/royalpoker/internal/display"
	"github.com/lox/royalpoker/internal/game"
	"github.com/lox/royalpoker/internal/tui"
)

type PlayCmd struct {
	Players      []string `arg:"" optional:"" help:"Players to seat; name for a human or name:agent for a bot (call, fold, random, odds)"`
	Bots         []string `sep:"," help:"Bots to add to the table, e.g. --bots odds,random"`
	Chips        int      `help:"Starting chips for players given on the command line"`
	RiverBetting bool     `help:"Add a betting round after the river"`
	Hands        int      `help:"Stop after this many hands instead of asking"`
	HideOdds     bool     `help:"Do not print win probabilities during the hand"`
}

func (c *PlayCmd) Run(g *Globals) error {
	e, err := g.setup(os.Stdout)
	if err != nil {
		return err
	}
	defer e.close()
	if c.Chips != 0 {
		if c.Chips < config.MinStartingChips {
			return fmt.Errorf("chips must be at least %d, got %d", config.MinStartingChips, c.Chips)
		}
		e.cfg.Game.StartingChips = c.Chips
	}
	if c.RiverBetting {
		e.cfg.Game.RiverBetting = true
	}

	seats, err := c.seats(e)
	if err != nil {
		return err
	}
	var humanOpts []tui.HumanOption
	if humanSeats(seats) > 1 {
		humanOpts = append(humanOpts, tui.WithHandoff())
	}
	human := tui.NewHumanAgent(os.Stdin, os.Stdout, e.theme, e.logger, humanOpts...)
	players, agents, err := buildTable(seats, human, e)
	if err != nil {
		return err
	}

	bus := game.NewEventBus()
	bus.Subscribe(display.NewPrinter(e.out, e.theme, !c.HideOdds))
	session, err := game.NewSession(players, agents, append(e.gameOptions(), game.WithEventBus(bus))...)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintln(e.out, e.theme.Header.Render(" ♠ ♥ Royal Poker ♦ ♣ "))
	for session.CanContinue() {
		result, err := session.PlayHand(ctx)
		if errors.Is(err, tui.ErrQuit) {
			break
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(e.out)
		fmt.Fprint(e.out, e.theme.History(result))
		fmt.Fprint(e.out, e.theme.Deltas(session.Players(), session.Deltas()))

		if !session.CanContinue() {
			break
		}
		if c.Hands > 0 {
			if session.Hands() >= c.Hands {
				break
			}
			continue
		}
		again, err := human.Confirm(ctx, "Play another hand?")
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}

	fmt.Fprintln(e.out)
	if seated := session.Seated(); len(seated) == 1 {
		fmt.Fprintln(e.out, e.theme.Winner.Render(seated[0].Name+" wins the game."))
	}
	fmt.Fprintf(e.out, "Hands played: %d\n", session.Hands())
	fmt.Fprint(e.out, e.theme.Deltas(session.Players(), session.Deltas()))
	return nil
}

// seats resolves who sits down: command line players first, then the
// config file, then two human players.
func (c *PlayCmd) seats(e *env) ([]seat, error) {
	var seats []seat
	switch {
	case len(c.Players) > 0:
		for _, p := range c.Players {
			s, err := parseSeat(p, e.cfg.Game.StartingChips)
			if err != nil {
				return nil, err
			}
			seats = append(seats, s)
		}
	case len(e.cfg.Players) > 0:
		seats = configSeats(e.cfg)
	case len(c.Bots) == 0:
		for i := 1; i <= 2; i++ {
			seats = append(seats, seat{Name: fmt.Sprintf("Player %d", i), Agent: "human", Chips: e.cfg.Game.StartingChips})
		}
	default:
		seats = append(seats, seat{Name: "You", Agent: "human", Chips: e.cfg.Game.StartingChips})
	}

	bots, err := botSeats(c.Bots, e.cfg.Game.StartingChips)
	if err != nil {
		return nil, err
	}
	seats = append(seats, bots...)

	e.logger.Info("Seating players", "players", seatNames(seats))
	return seats, nil
}

func seatNames(seats []seat) string {
	names := make([]string, len(seats))
	for i, s := range seats {
		names[i] = s.Name + ":" + s.Agent
	}
	return strings.Join(names, ", ")
}
