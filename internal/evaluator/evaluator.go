// Package evaluator ranks five card poker hands, picks the best hand out of
// a player's available cards and estimates win probabilities by Monte Carlo
// sampling of the unseen board.
package evaluator

import (
	"slices"

	"github.com/lox/royalpoker/internal/deck"
)

// NormalizeRanks writes the numeric values of cards into a new slice sorted
// from high to low. With aceHigh an Ace counts 14, otherwise 1. This is the
// only place the two Ace interpretations are defined.
func NormalizeRanks(cards []deck.Card, aceHigh bool) []int {
	values := make([]int, len(cards))
	normalizeInto(values, cards, aceHigh)
	return values
}

func normalizeInto(dst []int, cards []deck.Card, aceHigh bool) {
	for i, c := range cards {
		if aceHigh {
			dst[i] = c.Rank.Value()
		} else {
			dst[i] = int(c.Rank)
		}
	}
	slices.Sort(dst)
	slices.Reverse(dst)
}

// consecutive reports whether descending values step down by exactly one.
func consecutive(values []int) bool {
	for i := 0; i+1 < len(values); i++ {
		if values[i]-values[i+1] != 1 {
			return false
		}
	}
	return true
}

// Evaluate ranks exactly five cards.
func Evaluate(cards [5]deck.Card) HandRank {
	var high, low [5]int
	normalizeInto(high[:], cards[:], true)
	normalizeInto(low[:], cards[:], false)

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	highStraight := consecutive(high[:])
	straight := highStraight
	straightValues := high
	if !highStraight && consecutive(low[:]) {
		straight = true
		straightValues = low
	}

	var counts [deck.AceHigh + 1]int
	for _, v := range high {
		counts[v]++
	}
	grouped, shape := groupByCount(&counts)

	switch {
	case flush && highStraight && high[0] == deck.AceHigh:
		return HandRank{Category: RoyalFlush, Values: high}
	case flush && straight:
		return HandRank{Category: StraightFlush, Values: straightValues}
	case shape[0] == 4:
		return HandRank{Category: FourOfAKind, Values: grouped}
	case shape[0] == 3 && shape[1] == 2:
		return HandRank{Category: FullHouse, Values: grouped}
	case flush:
		return HandRank{Category: Flush, Values: high}
	case straight:
		return HandRank{Category: Straight, Values: straightValues}
	case shape[0] == 3:
		return HandRank{Category: ThreeOfAKind, Values: grouped}
	case shape[0] == 2 && shape[1] == 2:
		return HandRank{Category: TwoPair, Values: grouped}
	case shape[0] == 2:
		return HandRank{Category: OnePair, Values: grouped}
	default:
		return HandRank{Category: HighCard, Values: high}
	}
}

// groupByCount orders values by how often they occur, then by value, so a
// pair of sevens with an Ace kicker yields 7,7,14,x,y. shape holds the group
// sizes in descending order.
func groupByCount(counts *[deck.AceHigh + 1]int) (grouped [5]int, shape [5]int) {
	n, g := 0, 0
	for size := 4; size >= 1; size-- {
		for v := deck.AceHigh; v >= 2; v-- {
			if counts[v] != size {
				continue
			}
			shape[g] = size
			g++
			for k := 0; k < size; k++ {
				grouped[n] = v
				n++
			}
		}
	}
	return grouped, shape
}
