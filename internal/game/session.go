package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/lox/royalpoker/internal/deck"
)

// Session plays consecutive hands between the same players, carrying chip
// stacks forward. Players who run out of chips sit out the following hands.
type Session struct {
	players  []*Player
	agents   map[int]Agent
	opts     []Option
	deck     *deck.Deck
	starting map[int]int
	hands    int
}

// NewSession validates the table and records starting stacks. Options are
// passed to the engine of every hand; one random source is shared so each
// hand gets a fresh shuffle even with WithSeed. A deck given with WithDeck is
// used for the first hand only.
func NewSession(players []*Player, agents map[int]Agent, opts ...Option) (*Session, error) {
	if err := validateSetup(players, agents); err != nil {
		return nil, err
	}
	cfg := newEngineConfig(opts...)

	starting := make(map[int]int, len(players))
	for _, p := range players {
		starting[p.ID] = p.Chips
	}
	return &Session{
		players:  players,
		agents:   agents,
		opts:     append(slices.Clone(opts), WithRNG(cfg.rng), WithEventBus(cfg.bus), WithDeck(nil)),
		deck:     cfg.deck,
		starting: starting,
	}, nil
}

// Players returns every player in seat order, including busted ones.
func (s *Session) Players() []*Player {
	return s.players
}

// Seated returns the players who still have chips.
func (s *Session) Seated() []*Player {
	seated := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		if p.Chips > 0 {
			seated = append(seated, p)
		}
	}
	return seated
}

// CanContinue reports whether enough players have chips for another hand.
func (s *Session) CanContinue() bool {
	return len(s.Seated()) >= MinPlayers
}

// Hands returns the number of hands played.
func (s *Session) Hands() int {
	return s.hands
}

// PlayHand plays the next hand with every seated player.
func (s *Session) PlayHand(ctx context.Context) (*HandResult, error) {
	if !s.CanContinue() {
		return nil, fmt.Errorf("%w: fewer than %d players have chips", ErrInvalidSetup, MinPlayers)
	}
	opts := s.opts
	if s.deck != nil {
		opts = append(slices.Clone(opts), WithDeck(s.deck))
	}
	engine, err := NewEngine(s.Seated(), s.agents, opts...)
	if err != nil {
		return nil, err
	}
	s.deck = nil
	result, err := engine.PlayHand(ctx)
	if err != nil {
		return nil, err
	}
	s.hands++
	return result, nil
}

// Deltas returns each player's chip change since the session started.
func (s *Session) Deltas() map[int]int {
	out := make(map[int]int, len(s.players))
	for _, p := range s.players {
		out[p.ID] = p.Chips - s.starting[p.ID]
	}
	return out
}
