package game

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/royalpoker/internal/deck"
)

// Street is one of the four rounds of a hand, numbered from 1.
type Street int

const (
	Preflop Street = iota + 1
	Flop
	Turn
	River
)

// Streets lists the rounds in the order they are played.
var Streets = [...]Street{Preflop, Flop, Turn, River}

func (s Street) String() string {
	switch s {
	case Preflop:
		return "Preflop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	}
	return fmt.Sprintf("Street(%d)", int(s))
}

// Label is the heading used for the street's probability snapshot.
func (s Street) Label() string {
	if s == River {
		return fmt.Sprintf("Round %d: %s (showdown)", int(s), s)
	}
	return fmt.Sprintf("Round %d: %s", int(s), s)
}

// communityCards returns how many board cards are dealt on this street.
func (s Street) communityCards() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	}
	return 0
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
)

func (a Action) String() string {
	if a < Fold || a > Raise {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return [...]string{"fold", "check", "call", "bet", "raise"}[a]
}

const defaultMaxRejections = 10

// BettingRound runs one street of betting. Every player still in the hand is
// queued once in seat order; whenever someone raises, each other player who
// already acted is queued again (at most once).
type BettingRound struct {
	CurrentBet int

	state         *State
	agents        map[int]Agent
	logger        *log.Logger
	bus           EventBus
	clock         quartz.Clock
	maxRejections int
}

// NewBettingRound creates a betting round over state. agents maps player IDs
// to the agent deciding for that player.
func NewBettingRound(state *State, agents map[int]Agent) *BettingRound {
	return &BettingRound{
		state:         state,
		agents:        agents,
		logger:        log.New(io.Discard),
		bus:           NewEventBus(),
		clock:         quartz.NewReal(),
		maxRejections: defaultMaxRejections,
	}
}

// Run plays the round to completion. It returns false as soon as a single
// player remains in the hand, including when the round starts that way.
func (br *BettingRound) Run(ctx context.Context) (bool, error) {
	players := br.state.Players
	if br.state.ActiveCount() < 2 {
		return false, nil
	}

	for _, p := range players {
		p.RoundBet = 0
	}
	br.CurrentBet = 0

	queue := make([]int, 0, len(players))
	queued := make([]bool, len(players))
	acted := make([]bool, len(players))
	for i, p := range players {
		if !p.Folded {
			queue = append(queue, i)
			queued[i] = true
		}
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		queued[i] = false

		p := players[i]
		if p.Folded {
			continue
		}
		if p.Chips == 0 {
			acted[i] = true
			br.logger.Debug("Auto check", "player", p.Name)
			br.publishAuto(p)
			continue
		}

		raised, err := br.takeTurn(ctx, p)
		if err != nil {
			return false, err
		}
		if p.Folded {
			if br.state.ActiveCount() < 2 {
				return false, nil
			}
			continue
		}
		acted[i] = true

		if raised {
			for j, other := range players {
				if j != i && !other.Folded && acted[j] && !queued[j] {
					queue = append(queue, j)
					queued[j] = true
				}
			}
		}
	}
	return true, nil
}

// takeTurn asks the player's agent for a decision until a legal one arrives.
func (br *BettingRound) takeTurn(ctx context.Context, p *Player) (bool, error) {
	agent, ok := br.agents[p.ID]
	if !ok {
		return false, fmt.Errorf("no agent for player %s", p.Name)
	}

	var rejected *ActionError
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		decision, err := agent.Decide(ctx, br.tableState(p, rejected))
		if err != nil {
			return false, fmt.Errorf("player %s: %w", p.Name, err)
		}

		action, paid, raised, actionErr := br.apply(p, decision)
		if actionErr != nil {
			br.logger.Warn("Rejected action", "player", p.Name, "action", decision.Action,
				"amount", decision.Amount, "reason", actionErr.Reason)
			if attempt >= br.maxRejections {
				return false, fmt.Errorf("%w: %s after %d attempts", ErrTooManyRejections, p.Name, attempt)
			}
			rejected = actionErr
			continue
		}

		br.logger.Debug("Player action", "player", p.Name, "action", action,
			"amount", paid, "pot", br.state.Pot, "reasoning", decision.Reasoning)
		br.publish(p, action, paid, decision.Reasoning)
		return raised, nil
	}
}

// apply validates a decision and mutates state only when it is legal. The
// returned action is what actually happened: a zero chip call is a check.
func (br *BettingRound) apply(p *Player, d Decision) (Action, int, bool, *ActionError) {
	toCall := br.toCall(p)
	reject := func(reason string) (Action, int, bool, *ActionError) {
		return d.Action, 0, false, &ActionError{PlayerID: p.ID, Action: d.Action, Amount: d.Amount, Reason: reason}
	}

	switch d.Action {
	case Fold:
		p.Folded = true
		return Fold, 0, false, nil

	case Check:
		if toCall > 0 {
			return reject(fmt.Sprintf("%d to call", toCall))
		}
		return Check, 0, false, nil

	case Call:
		amount := min(toCall, p.Chips)
		if amount == 0 {
			return Check, 0, false, nil
		}
		p.pay(amount, br.state)
		return Call, amount, false, nil

	case Bet, Raise:
		if d.Action == Bet && toCall > 0 {
			return reject(fmt.Sprintf("facing %d to call, raise instead", toCall))
		}
		if d.Action == Raise && toCall == 0 {
			return reject("nothing to raise, bet instead")
		}
		lo := toCall + 1
		if lo > p.Chips {
			return reject(fmt.Sprintf("only %d chips, not enough to %s", p.Chips, d.Action))
		}
		if d.Amount < lo || d.Amount > p.Chips {
			return reject(fmt.Sprintf("amount must be between %d and %d", lo, p.Chips))
		}
		p.pay(d.Amount, br.state)
		raised := p.RoundBet > br.CurrentBet
		if raised {
			br.CurrentBet = p.RoundBet
		}
		return d.Action, d.Amount, raised, nil
	}
	return reject("unknown action")
}

func (br *BettingRound) toCall(p *Player) int {
	return max(0, br.CurrentBet-p.RoundBet)
}

// validActions lists the legal actions for p given the current bet.
func (br *BettingRound) validActions(p *Player) []ValidAction {
	toCall := br.toCall(p)
	actions := []ValidAction{{Action: Fold}}
	if toCall == 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else {
		amount := min(toCall, p.Chips)
		actions = append(actions, ValidAction{Action: Call, MinAmount: amount, MaxAmount: amount})
	}
	if p.Chips > toCall {
		action := Raise
		if toCall == 0 {
			action = Bet
		}
		actions = append(actions, ValidAction{Action: action, MinAmount: toCall + 1, MaxAmount: p.Chips})
	}
	return actions
}

func (br *BettingRound) tableState(p *Player, rejected *ActionError) TableState {
	players := make([]PlayerState, len(br.state.Players))
	var self PlayerState
	for i, other := range br.state.Players {
		players[i] = PlayerState{
			ID:       other.ID,
			Name:     other.Name,
			Chips:    other.Chips,
			RoundBet: other.RoundBet,
			TotalBet: other.TotalBet,
			Folded:   other.Folded,
		}
		if other == p {
			players[i].Hole = []deck.Card{p.Hole[0], p.Hole[1]}
			self = players[i]
		}
	}

	return TableState{
		HandID:       br.state.HandID,
		Round:        br.state.Round,
		Player:       self,
		Players:      players,
		Community:    append([]deck.Card(nil), br.state.Community...),
		Pot:          br.state.Pot,
		CurrentBet:   br.CurrentBet,
		ToCall:       br.toCall(p),
		ValidActions: br.validActions(p),
		Rejected:     rejected,
	}
}

func (br *BettingRound) publish(p *Player, action Action, amount int, reasoning string) {
	br.bus.Publish(br.actionEvent(p, action, amount, reasoning))
}

// publishAuto records the check made on behalf of a player with no chips.
func (br *BettingRound) publishAuto(p *Player) {
	e := br.actionEvent(p, Check, 0, "no chips left")
	e.Automatic = true
	br.bus.Publish(e)
}

func (br *BettingRound) actionEvent(p *Player, action Action, amount int, reasoning string) PlayerActionEvent {
	return PlayerActionEvent{
		HandID:     br.state.HandID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Action:     action,
		Amount:     amount,
		Round:      br.state.Round,
		Reasoning:  reasoning,
		PotAfter:   br.state.Pot,
		CurrentBet: br.CurrentBet,
		timestamp:  br.clock.Now(),
	}
}
