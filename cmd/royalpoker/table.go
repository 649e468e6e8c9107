package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/royalpoker/internal/bot"
	"github.com/lox/royalpoker/internal/config"
	"github.com/lox/royalpoker/internal/game"
	"github.com/lox/royalpoker/internal/randutil"
)

// seat is a player before the table is built.
type seat struct {
	Name  string
	Agent string
	Chips int
}

// parseSeat reads "name" or "name:agent".
func parseSeat(s string, chips int) (seat, error) {
	name, agent, found := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return seat{}, fmt.Errorf("player %q has no name", s)
	}
	if !found {
		agent = "human"
	}
	if !slices.Contains(config.AgentKinds, agent) {
		return seat{}, fmt.Errorf("player %s: unknown agent %q (want one of %s)",
			name, agent, strings.Join(config.AgentKinds, ", "))
	}
	return seat{Name: name, Agent: agent, Chips: chips}, nil
}

// botSeats names one seat per bot kind, numbering repeats.
func botSeats(kinds []string, chips int) ([]seat, error) {
	seats := make([]seat, 0, len(kinds))
	for i, kind := range kinds {
		if !slices.Contains(bot.Kinds(), kind) {
			return nil, fmt.Errorf("unknown bot %q (want one of %s)", kind, strings.Join(bot.Kinds(), ", "))
		}
		seats = append(seats, seat{Name: fmt.Sprintf("%s-bot-%d", kind, i+1), Agent: kind, Chips: chips})
	}
	return seats, nil
}

func configSeats(cfg *config.Config) []seat {
	seats := make([]seat, len(cfg.Players))
	for i, p := range cfg.Players {
		seats[i] = seat{Name: p.Name, Agent: p.Agent, Chips: p.Chips}
	}
	return seats
}

// buildTable creates players with IDs in seat order and an agent for each.
// Every human seat shares human.
func buildTable(seats []seat, human game.Agent, e *env) ([]*game.Player, map[int]game.Agent, error) {
	if n := len(seats); n < game.MinPlayers || n > game.MaxPlayers {
		return nil, nil, fmt.Errorf("need %d to %d players, got %d", game.MinPlayers, game.MaxPlayers, n)
	}

	rng := randutil.Child(randutil.New(e.cfg.Game.Seed))
	players := make([]*game.Player, len(seats))
	agents := make(map[int]game.Agent, len(seats))
	names := make(map[string]bool, len(seats))

	for i, s := range seats {
		if names[s.Name] {
			return nil, nil, fmt.Errorf("player name %q is used twice", s.Name)
		}
		names[s.Name] = true

		id := i + 1
		players[i] = &game.Player{ID: id, Name: s.Name, Chips: s.Chips}
		if s.Agent == "human" {
			if human == nil {
				return nil, nil, fmt.Errorf("player %s: human players are not allowed here", s.Name)
			}
			agents[id] = human
			continue
		}
		agent, err := bot.New(s.Agent, bot.WithLogger(e.logger), bot.WithRNG(rng))
		if err != nil {
			return nil, nil, fmt.Errorf("player %s: %w", s.Name, err)
		}
		agents[id] = agent
	}
	return players, agents, nil
}

// humanSeats counts the seats played from the terminal.
func humanSeats(seats []seat) int {
	n := 0
	for _, s := range seats {
		if s.Agent == "human" {
			n++
		}
	}
	return n
}
