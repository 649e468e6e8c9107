package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/evaluator"
)

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// Engine plays hands of Texas Hold'em between a fixed set of players. It
// performs no console I/O; presentation subscribes to its events.
type Engine struct {
	players []*Player
	agents  map[int]Agent
	cfg     *engineConfig
	logger  *log.Logger
}

// HandResult contains the results of a completed hand
type HandResult struct {
	ID        uuid.UUID
	Winner    *Player   // nil on a full tie
	Tied      []*Player // players sharing the pot on a full tie
	Reason    string
	HandLabel string // winning hand label, empty when the hand ended by folds
	Pot       int
	Payouts   map[int]int // chips won, by player ID
	Showdown  bool
	EndedOn   Street
	State     *State
	Duration  time.Duration
}

// NewEngine validates the table and returns an engine ready to play. Every
// player needs an agent in agents, keyed by player ID.
func NewEngine(players []*Player, agents map[int]Agent, opts ...Option) (*Engine, error) {
	if err := validateSetup(players, agents); err != nil {
		return nil, err
	}
	cfg := newEngineConfig(opts...)
	return &Engine{
		players: players,
		agents:  agents,
		cfg:     cfg,
		logger:  cfg.logger.WithPrefix("engine"),
	}, nil
}

func validateSetup(players []*Player, agents map[int]Agent) error {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return fmt.Errorf("%w: %d players, need %d to %d", ErrInvalidSetup, len(players), MinPlayers, MaxPlayers)
	}
	seen := make(map[int]bool, len(players))
	for _, p := range players {
		if p == nil {
			return fmt.Errorf("%w: nil player", ErrInvalidSetup)
		}
		if p.Chips < 0 {
			return fmt.Errorf("%w: %s has %d chips", ErrInvalidSetup, p.Name, p.Chips)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate player id %d", ErrInvalidSetup, p.ID)
		}
		seen[p.ID] = true
		if agents[p.ID] == nil {
			return fmt.Errorf("%w: no agent for %s", ErrInvalidSetup, p.Name)
		}
	}
	return nil
}

// EventBus returns the bus events are published on.
func (e *Engine) EventBus() EventBus {
	return e.cfg.bus
}

// PlayHand plays one hand: hole cards, flop, turn and river, with a betting
// round after each of the first three and a probability estimate on every
// street. The hand ends early once a single player remains.
func (e *Engine) PlayHand(ctx context.Context) (*HandResult, error) {
	start := e.cfg.clock.Now()
	state := e.newState()
	logger := e.logger.With("hand", state.HandID.String()[:8])

	logger.Debug("Starting hand", "players", len(state.Players), "chips", state.TotalChips())
	e.cfg.bus.Publish(HandStartEvent{HandID: state.HandID, Players: snapshot(state.Players), timestamp: start})

	for _, street := range Streets {
		state.Round = street
		e.deal(state, street)
		logger.Debug("Dealt", "street", street, "board", FormatCards(state.Community))
		e.cfg.bus.Publish(StreetChangeEvent{
			HandID:    state.HandID,
			Round:     street,
			Community: append([]deck.Card(nil), state.Community...),
			Pot:       state.Pot,
			timestamp: e.cfg.clock.Now(),
		})

		if street == River {
			if err := labelHands(state); err != nil {
				return nil, e.abort(state, err)
			}
		}
		if err := e.estimate(ctx, state); err != nil {
			return nil, e.abort(state, err)
		}
		if street == River && !e.cfg.riverBetting {
			break
		}

		round := e.bettingRound(state)
		more, err := round.Run(ctx)
		if err != nil {
			return nil, e.abort(state, fmt.Errorf("%s betting: %w", street, err))
		}
		if !more {
			logger.Debug("Hand won without showdown", "street", street)
			return e.finish(state, survivorOutcome(state, street), start), nil
		}
	}

	return e.finish(state, e.showdown(state), start), nil
}

func (e *Engine) newState() *State {
	for _, p := range e.players {
		p.resetForHand()
	}
	d := e.cfg.deck
	if d == nil {
		d = deck.New().Shuffled(e.cfg.rng)
	}
	e.cfg.deck = nil

	return &State{
		HandID:    uuid.New(),
		Deck:      d,
		Community: make([]deck.Card, 0, 5),
		Players:   e.players,
	}
}

// deal hands out the cards for street: two hole cards each, one at a time
// around the table, on the preflop and board cards afterwards.
func (e *Engine) deal(state *State, street Street) {
	if street == Preflop {
		for i := range 2 {
			for _, p := range state.Players {
				p.Hole[i] = state.Deck.Deal()
			}
		}
		return
	}
	state.Community = append(state.Community, state.Deck.DealN(street.communityCards())...)
}

func (e *Engine) bettingRound(state *State) *BettingRound {
	br := NewBettingRound(state, e.agents)
	br.logger = e.cfg.logger.WithPrefix("betting")
	br.bus = e.cfg.bus
	br.clock = e.cfg.clock
	br.maxRejections = e.cfg.maxRejections
	return br
}

// estimate records a probability snapshot when at least two players remain.
func (e *Engine) estimate(ctx context.Context, state *State) error {
	if !e.cfg.estimates {
		return nil
	}
	active := state.Active()
	if len(active) < 2 {
		return nil
	}

	contenders := make([]evaluator.Contender, len(active))
	for i, p := range active {
		contenders[i] = evaluator.Contender{ID: p.ID, Hole: p.Hole[:]}
	}
	odds, err := e.cfg.estimator.Estimate(ctx, e.cfg.rng, contenders, state.Community, state.Deck.Cards())
	if err != nil {
		return fmt.Errorf("estimate %s: %w", state.Round, err)
	}

	snap := ProbabilitySnapshot{Round: state.Round, Label: state.Round.Label(), Odds: odds}
	state.History = append(state.History, snap)
	e.cfg.bus.Publish(EstimateEvent{
		HandID:    state.HandID,
		Snapshot:  snap,
		Players:   snapshot(state.Players),
		timestamp: e.cfg.clock.Now(),
	})
	return nil
}

// labelHands evaluates and labels the best hand of every active player.
func labelHands(state *State) error {
	for _, p := range state.Active() {
		rank, err := evaluator.BestHand(p.Hole[:], state.Community)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", p.Name, err)
		}
		p.Rank = rank
		p.BestHand = rank.String()
	}
	return nil
}

type outcome struct {
	winners  []*Player
	reason   string
	label    string
	showdown bool
	street   Street
}

func survivorOutcome(state *State, street Street) outcome {
	active := state.Active()
	if len(active) == 0 {
		return outcome{reason: "Everyone folded.", street: street}
	}
	w := active[0]
	var reason string
	if street == Preflop {
		reason = fmt.Sprintf("Only %s remains in the hand.", w.Name)
	} else {
		reason = fmt.Sprintf("Only %s remains after the %s.", w.Name, strings.ToLower(street.String()))
	}
	return outcome{winners: []*Player{w}, reason: reason, street: street}
}

// showdown picks the winners among active players with labelled hands.
func (e *Engine) showdown(state *State) outcome {
	active := state.Active()
	entries := make([]evaluator.Entry, len(active))
	for i, p := range active {
		entries[i] = evaluator.Entry{ID: p.ID, Hole: p.Hole[:], Rank: p.Rank}
	}
	res := evaluator.Resolve(entries, e.cfg.tieRule)

	winners := make([]*Player, len(res.Winners))
	for i, id := range res.Winners {
		winners[i] = state.Player(id)
	}
	o := outcome{winners: winners, label: winners[0].BestHand, showdown: true, street: River}

	switch {
	case res.Resolution == evaluator.ByCategory:
		w := winners[0]
		o.reason = fmt.Sprintf("%s wins with %s.", w.Name, w.BestHand)
		if len(active) == 2 {
			loser := active[0]
			if loser == w {
				loser = active[1]
			}
			o.reason = fmt.Sprintf("%s wins with %s against %s.", w.Name, w.BestHand, loser.BestHand)
		}
	case res.Resolution == evaluator.ByTieBreak && e.cfg.tieRule == evaluator.TieRuleFullHand:
		o.reason = fmt.Sprintf("Tie on %s. %s wins on kickers.", winners[0].BestHand, winners[0].Name)
	case res.Resolution == evaluator.ByTieBreak:
		o.reason = fmt.Sprintf("Tie on %s. %s wins on high card.", winners[0].BestHand, winners[0].Name)
	default:
		names := make([]string, len(winners))
		for i, w := range winners {
			names[i] = w.Name
		}
		o.reason = fmt.Sprintf("Full tie between %s.", strings.Join(names, " and "))
	}
	return o
}

// abort returns every committed chip to its owner so an unfinished hand
// leaves the stacks as they were.
func (e *Engine) abort(state *State, err error) error {
	for _, p := range state.Players {
		p.Chips += p.TotalBet
		p.RoundBet = 0
		p.TotalBet = 0
	}
	state.Pot = 0
	e.logger.Warn("Hand aborted", "hand", state.HandID.String()[:8], "error", err)
	return err
}

// finish pays the pot out and assembles the result. A split pot is shared
// evenly; odd chips go to the earliest seat.
func (e *Engine) finish(state *State, o outcome, start time.Time) *HandResult {
	result := &HandResult{
		ID:        state.HandID,
		Reason:    o.reason,
		HandLabel: o.label,
		Pot:       state.Pot,
		Payouts:   make(map[int]int, len(o.winners)),
		Showdown:  o.showdown,
		EndedOn:   o.street,
		State:     state,
	}

	if n := len(o.winners); n > 0 {
		share, odd := state.Pot/n, state.Pot%n
		for i, w := range o.winners {
			amount := share
			if i == 0 {
				amount += odd
			}
			w.Chips += amount
			result.Payouts[w.ID] = amount
		}
		state.Pot = 0
		if n == 1 {
			result.Winner = o.winners[0]
		} else {
			result.Tied = o.winners
		}
	}

	result.Duration = e.cfg.clock.Since(start)
	e.logger.Info("Hand complete", "hand", result.ID.String()[:8], "pot", result.Pot,
		"reason", result.Reason, "duration", result.Duration)
	e.cfg.bus.Publish(HandEndEvent{Result: result, timestamp: e.cfg.clock.Now()})
	return result
}

func snapshot(players []*Player) []PlayerState {
	out := make([]PlayerState, len(players))
	for i, p := range players {
		out[i] = PlayerState{
			ID:       p.ID,
			Name:     p.Name,
			Chips:    p.Chips,
			RoundBet: p.RoundBet,
			TotalBet: p.TotalBet,
			Folded:   p.Folded,
		}
	}
	return out
}
