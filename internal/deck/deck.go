package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyDeck is the panic value raised when dealing from an exhausted deck.
var ErrEmptyDeck = errors.New("deal from empty deck")

// Size is the number of cards in a full deck.
const Size = 52

// Deck represents an ordered deck of playing cards. Cards are dealt from the
// end of the slice, so a deck drains without repetition.
type Deck struct {
	cards []Card
}

// New creates a standard 52-card deck in canonical order (suit by suit, Ace to King).
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, Size)}
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// FromCards builds a deck holding exactly the given cards; the top card is the last one.
func FromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Without returns a canonical deck with the given cards removed.
func Without(used ...Card) *Deck {
	skip := make(map[Card]bool, len(used))
	for _, c := range used {
		skip[c] = true
	}
	d := New()
	kept := d.cards[:0]
	for _, c := range d.cards {
		if !skip[c] {
			kept = append(kept, c)
		}
	}
	d.cards = kept
	return d
}

// Shuffled returns an independent copy of the deck in uniformly random order
// (Fisher-Yates). The receiver is left untouched.
func (d *Deck) Shuffled(rng *rand.Rand) *Deck {
	cp := &Deck{cards: append([]Card(nil), d.cards...)}
	for i := len(cp.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cp.cards[i], cp.cards[j] = cp.cards[j], cp.cards[i]
	}
	return cp
}

// Deal removes and returns the top card. Dealing from an empty deck is a
// contract violation and panics with ErrEmptyDeck.
func (d *Deck) Deal() Card {
	if len(d.cards) == 0 {
		panic(ErrEmptyDeck)
	}
	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	return card
}

// DealN deals n cards from the deck
func (d *Deck) DealN(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.Deal()
	}
	return cards
}

// Cards returns a copy of the undealt cards.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}
