package game

import (
	"context"

	"github.com/google/uuid"

	"github.com/lox/royalpoker/internal/deck"
)

// Decision is what an agent wants to do on its turn. Amount is only read for
// Bet and Raise and is the number of chips added to the pot by this action.
type Decision struct {
	Action    Action
	Amount    int
	Reasoning string // Human-readable explanation
}

// ValidAction is an action the acting player may legally take right now.
type ValidAction struct {
	Action    Action
	MinAmount int
	MaxAmount int
}

// PlayerState is a read-only view of a seat.
type PlayerState struct {
	ID       int
	Name     string
	Chips    int
	RoundBet int
	TotalBet int
	Folded   bool
	Hole     []deck.Card // only populated for the acting player
}

// TableState is the immutable table view handed to an agent.
type TableState struct {
	HandID       uuid.UUID
	Round        Street
	Player       PlayerState
	Players      []PlayerState
	Community    []deck.Card
	Pot          int
	CurrentBet   int
	ToCall       int
	ValidActions []ValidAction

	// Rejected is set when the previous decision for this turn was illegal.
	Rejected *ActionError
}

// Can reports whether action is legal on this turn and returns its bounds.
func (t TableState) Can(action Action) (ValidAction, bool) {
	for _, va := range t.ValidActions {
		if va.Action == action {
			return va, true
		}
	}
	return ValidAction{}, false
}

// Opponents returns the number of other players still in the hand.
func (t TableState) Opponents() int {
	n := 0
	for _, p := range t.Players {
		if !p.Folded && p.ID != t.Player.ID {
			n++
		}
	}
	return n
}

// Agent represents any entity (human or bot) that makes decisions for a
// player. Agents never mutate game state; the betting round applies the
// decision. A returned error aborts the hand.
type Agent interface {
	Decide(ctx context.Context, table TableState) (Decision, error)
}
