package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/royalpoker/internal/deck"
)

var (
	// ErrNotEnoughCards is returned when fewer than five cards are available.
	ErrNotEnoughCards = errors.New("at least 5 cards are required")
	// ErrTooManyCards is returned for more than seven available cards or a board over five.
	ErrTooManyCards = errors.New("too many cards")
)

// Hand is a chosen five card hand together with its rank.
type Hand struct {
	Rank  HandRank
	Cards [5]deck.Card
}

// BestHand returns the strongest rank among all five card subsets of the
// player's hole cards and the community cards.
func BestHand(hole, community []deck.Card) (HandRank, error) {
	h, err := Best(append(append(make([]deck.Card, 0, 7), hole...), community...))
	if err != nil {
		return HandRank{}, err
	}
	return h.Rank, nil
}

// Best enumerates every five card subset of cards (5 to 7 of them) and
// returns the strongest one. The result's rank does not depend on the order
// of cards.
func Best(cards []deck.Card) (Hand, error) {
	switch {
	case len(cards) < 5:
		return Hand{}, fmt.Errorf("best hand from %d cards: %w", len(cards), ErrNotEnoughCards)
	case len(cards) > 7:
		return Hand{}, fmt.Errorf("best hand from %d cards: %w", len(cards), ErrTooManyCards)
	}
	return bestOf(cards), nil
}

// bestOf assumes 5 <= len(cards) <= 7.
func bestOf(cards []deck.Card) Hand {
	n := len(cards)
	best := Hand{Rank: HandRank{Category: HighCard + 1}}
	var five [5]deck.Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						if r := Evaluate(five); r.Beats(best.Rank) {
							best = Hand{Rank: r, Cards: five}
						}
					}
				}
			}
		}
	}
	return best
}
