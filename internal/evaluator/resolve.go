package evaluator

import (
	"fmt"

	"github.com/lox/royalpoker/internal/deck"
)

// TieRule selects how players sharing the best category are separated.
type TieRule int

const (
	// TieRuleHoleCard compares only each candidate's single highest hole
	// card (Ace high). Different kickers on the board are not looked at, so
	// some hands that are not really tied end up reported as ties.
	TieRuleHoleCard TieRule = iota
	// TieRuleFullHand compares the complete five card ranks; only identical
	// ranks remain tied.
	TieRuleFullHand
)

func (r TieRule) String() string {
	switch r {
	case TieRuleHoleCard:
		return "hole-card"
	case TieRuleFullHand:
		return "full-hand"
	default:
		return "unknown"
	}
}

// ParseTieRule parses the names produced by TieRule.String.
func ParseTieRule(s string) (TieRule, error) {
	switch s {
	case "hole-card", "":
		return TieRuleHoleCard, nil
	case "full-hand":
		return TieRuleFullHand, nil
	default:
		return 0, fmt.Errorf("unknown tie rule %q (want hole-card or full-hand)", s)
	}
}

// Resolution describes what decided a showdown.
type Resolution int

const (
	// ByCategory means exactly one player held the best category.
	ByCategory Resolution = iota
	// ByTieBreak means the tie rule separated players sharing the category.
	ByTieBreak
	// Unresolved means several players remain tied.
	Unresolved
)

// Entry is one player's evaluated hand at a showdown.
type Entry struct {
	ID   int
	Hole []deck.Card
	Rank HandRank
}

// Outcome lists the winning player IDs in entry order. More than one winner
// only happens when Resolution is Unresolved.
type Outcome struct {
	Winners    []int
	Resolution Resolution
}

// Resolve picks the winners among entries. Candidates are those sharing the
// lowest category code; rule then tries to separate them.
func Resolve(entries []Entry, rule TieRule) Outcome {
	var buf [8]int
	idx, res := resolveInto(buf[:0], entries, rule)
	winners := make([]int, len(idx))
	for i, k := range idx {
		winners[i] = entries[k].ID
	}
	return Outcome{Winners: winners, Resolution: res}
}

// resolveInto appends the indexes of the winning entries to dst.
func resolveInto(dst []int, entries []Entry, rule TieRule) ([]int, Resolution) {
	bestCat := HighCard + 1
	for _, e := range entries {
		if e.Rank.Category < bestCat {
			bestCat = e.Rank.Category
		}
	}
	for i, e := range entries {
		if e.Rank.Category == bestCat {
			dst = append(dst, i)
		}
	}
	if len(dst) <= 1 {
		return dst, ByCategory
	}

	switch rule {
	case TieRuleFullHand:
		best := entries[dst[0]].Rank
		for _, i := range dst[1:] {
			if entries[i].Rank.Beats(best) {
				best = entries[i].Rank
			}
		}
		dst = keep(dst, func(i int) bool { return entries[i].Rank == best })
	default:
		top := 0
		for _, i := range dst {
			top = max(top, highestHoleCard(entries[i].Hole))
		}
		dst = keep(dst, func(i int) bool { return highestHoleCard(entries[i].Hole) == top })
	}

	if len(dst) == 1 {
		return dst, ByTieBreak
	}
	return dst, Unresolved
}

func keep(idx []int, pred func(int) bool) []int {
	out := idx[:0]
	for _, i := range idx {
		if pred(i) {
			out = append(out, i)
		}
	}
	return out
}

// highestHoleCard returns the Ace-high value of the best hole card.
func highestHoleCard(hole []deck.Card) int {
	if len(hole) == 0 {
		return 0
	}
	var values [2]int
	if len(hole) <= len(values) {
		normalizeInto(values[:len(hole)], hole, true)
		return values[0]
	}
	return NormalizeRanks(hole, true)[0]
}
