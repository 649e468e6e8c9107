package game

import (
	"github.com/google/uuid"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/evaluator"
)

// Player is a seat at the table. Chips+TotalBet stays constant during a hand
// until the pot is paid out.
type Player struct {
	ID       int
	Name     string
	Chips    int
	Hole     [2]deck.Card
	Folded   bool
	BestHand string // label of the best hand, set on the river
	Rank     evaluator.HandRank
	RoundBet int // chips put in during the current street
	TotalBet int // chips put in during the hand
}

// resetForHand clears everything but identity and chips.
func (p *Player) resetForHand() {
	p.Hole = [2]deck.Card{}
	p.Folded = false
	p.BestHand = ""
	p.Rank = evaluator.HandRank{}
	p.RoundBet = 0
	p.TotalBet = 0
}

// pay moves amount from the player's stack into the pot.
func (p *Player) pay(amount int, s *State) {
	p.Chips -= amount
	p.RoundBet += amount
	p.TotalBet += amount
	s.Pot += amount
}

// State is everything the engine mutates while a hand is played.
type State struct {
	HandID    uuid.UUID
	Deck      *deck.Deck
	Community []deck.Card
	Players   []*Player
	Pot       int
	Round     Street
	History   []ProbabilitySnapshot
}

// Active returns the players who have not folded, in seat order.
func (s *State) Active() []*Player {
	active := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.Folded {
			active = append(active, p)
		}
	}
	return active
}

// ActiveCount returns the number of players who have not folded.
func (s *State) ActiveCount() int {
	n := 0
	for _, p := range s.Players {
		if !p.Folded {
			n++
		}
	}
	return n
}

// Player looks a seat up by player ID.
func (s *State) Player(id int) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TotalChips returns the chips on the table including the pot.
func (s *State) TotalChips() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}
