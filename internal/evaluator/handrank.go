package evaluator

import "fmt"

// Category is the type of a five card hand. Lower values are stronger.
type Category int

const (
	RoyalFlush Category = iota
	StraightFlush
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard
)

// Categories lists every category from strongest to weakest
var Categories = [...]Category{
	RoyalFlush, StraightFlush, FourOfAKind, FullHouse, Flush,
	Straight, ThreeOfAKind, TwoPair, OnePair, HighCard,
}

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return "Straight Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a Kind"
	case TwoPair:
		return "Two Pair"
	case OnePair:
		return "One Pair"
	case HighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the ten defined categories.
func (c Category) Valid() bool {
	return c >= RoyalFlush && c <= HighCard
}

// HandRank is the evaluated strength of a five card hand: its category plus
// the card values used to break ties inside the category, most significant
// first. HandRank is comparable, so equal hands are ==.
type HandRank struct {
	Category Category
	Values   [5]int
}

// Compare returns 1 if h is stronger than other, -1 if weaker and 0 if equal.
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category < other.Category {
			return 1
		}
		return -1
	}
	for i := range h.Values {
		switch {
		case h.Values[i] > other.Values[i]:
			return 1
		case h.Values[i] < other.Values[i]:
			return -1
		}
	}
	return 0
}

// Beats reports whether h is strictly stronger than other.
func (h HandRank) Beats(other HandRank) bool {
	return h.Compare(other) > 0
}

// String returns the category label, which is what players see.
func (h HandRank) String() string {
	return h.Category.String()
}

// Describe returns the label with its tie-break values, for logs.
func (h HandRank) Describe() string {
	return fmt.Sprintf("%s %v", h.Category, h.Values)
}
