package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSetup is wrapped by every error NewEngine returns for a bad table.
	ErrInvalidSetup = errors.New("invalid setup")
	// ErrTooManyRejections is returned when an agent keeps submitting illegal actions.
	ErrTooManyRejections = errors.New("too many rejected actions")
)

// ActionError describes a decision the betting round refused to apply. The
// player is asked again with the error attached to the next TableState.
type ActionError struct {
	PlayerID int
	Action   Action
	Amount   int
	Reason   string
}

func (e *ActionError) Error() string {
	if e.Action == Bet || e.Action == Raise {
		return fmt.Sprintf("player %d cannot %s %d: %s", e.PlayerID, e.Action, e.Amount, e.Reason)
	}
	return fmt.Sprintf("player %d cannot %s: %s", e.PlayerID, e.Action, e.Reason)
}
