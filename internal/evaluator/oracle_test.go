package evaluator

import (
	"testing"

	phpoker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/randutil"
)

// toOracle converts a card to the paulhankin/poker representation, which
// also numbers ranks 1..13 with Ace as 1.
func toOracle(t *testing.T, c deck.Card) phpoker.Card {
	t.Helper()
	suits := map[deck.Suit]phpoker.Suit{
		deck.Clubs:    phpoker.Club,
		deck.Diamonds: phpoker.Diamond,
		deck.Hearts:   phpoker.Heart,
		deck.Spades:   phpoker.Spade,
	}
	pc, err := phpoker.MakeCard(suits[c.Suit], phpoker.Rank(c.Rank))
	require.NoError(t, err)
	return pc
}

func oracleScore(t *testing.T, cards [5]deck.Card) int {
	t.Helper()
	var a [5]phpoker.Card
	for i, c := range cards {
		a[i] = toOracle(t, c)
	}
	return int(phpoker.Eval5(&a))
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// TestEvaluateAgreesWithOracle checks that pairwise ordering of random
// hands matches an independent evaluator.
func TestEvaluateAgreesWithOracle(t *testing.T) {
	// Establish the oracle's direction from a known pair of hands.
	direction := sign(oracleScore(t, five("AsKsQsJsTs")) - oracleScore(t, five("7s5h4d3c2s")))
	require.NotZero(t, direction)

	rng := randutil.New(77)
	for i := 0; i < 5000; i++ {
		d := deck.New().Shuffled(rng)
		a := [5]deck.Card(d.DealN(5))
		b := [5]deck.Card(d.DealN(5))

		ours := Evaluate(a).Compare(Evaluate(b))
		theirs := direction * sign(oracleScore(t, a)-oracleScore(t, b))
		require.Equal(t, theirs, ours, "%v (%s) vs %v (%s)", a, Evaluate(a).Describe(), b, Evaluate(b).Describe())
	}
}
