package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/randutil"
)

func five(s string) [5]deck.Card {
	cards := deck.MustParseCards(s)
	if len(cards) != 5 {
		panic("five: need exactly 5 cards in " + s)
	}
	return [5]deck.Card(cards)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected Category
		values   [5]int
	}{
		{"royal flush", "AsKsQsJsTs", RoyalFlush, [5]int{14, 13, 12, 11, 10}},
		{"straight flush", "9h8h7h6h5h", StraightFlush, [5]int{9, 8, 7, 6, 5}},
		{"steel wheel", "Ad2d3d4d5d", StraightFlush, [5]int{5, 4, 3, 2, 1}},
		{"four of a kind", "7s7h7d7cKs", FourOfAKind, [5]int{7, 7, 7, 7, 13}},
		{"full house", "7s7h7d2c2s", FullHouse, [5]int{7, 7, 7, 2, 2}},
		{"flush", "As9s7s4s2s", Flush, [5]int{14, 9, 7, 4, 2}},
		{"broadway", "AhKdQcJsTs", Straight, [5]int{14, 13, 12, 11, 10}},
		{"wheel", "2h3d4c5sAh", Straight, [5]int{5, 4, 3, 2, 1}},
		{"three of a kind", "7s7h7d9c2s", ThreeOfAKind, [5]int{7, 7, 7, 9, 2}},
		{"two pair", "KsKh4d4cAs", TwoPair, [5]int{13, 13, 4, 4, 14}},
		{"one pair", "3s3hAdKc9s", OnePair, [5]int{3, 3, 14, 13, 9}},
		{"high card", "AsJh8d5c3s", HighCard, [5]int{14, 11, 8, 5, 3}},
		{"no wrap-around", "QsKhAd2c3s", HighCard, [5]int{14, 13, 12, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(five(tt.cards))
			assert.Equal(t, tt.expected, got.Category, "got %s", got.Describe())
			assert.Equal(t, tt.values, got.Values)
			assert.Equal(t, tt.expected.String(), got.String())
		})
	}
}

func TestEvaluateNamedHands(t *testing.T) {
	royal := Evaluate(five("AsKsQsJsTs"))
	assert.Equal(t, RoyalFlush, royal.Category)
	assert.Equal(t, 0, int(royal.Category))

	wheel := Evaluate(five("2h3d4c5sAh"))
	assert.Equal(t, Straight, wheel.Category)

	fullHouse := Evaluate(five("7s7h7d2c2s"))
	trips := Evaluate(five("7s7h7d9c2s"))
	assert.True(t, fullHouse.Beats(trips))
	assert.Equal(t, -1, trips.Compare(fullHouse))
}

func TestTieBreakOrdering(t *testing.T) {
	tests := []struct {
		name     string
		stronger string
		weaker   string
	}{
		{"higher pair beats ace kicker", "3s3h5d4c2s", "2s2hAd5c4s"},
		{"kicker decides equal pairs", "9s9hAd4c2s", "9d9cKd4h2h"},
		{"second pair decides", "KsKh5d5c2s", "KdKc4d4h2h"},
		{"second pair outranks ace kicker", "KsKhQdQc3s", "AsKdKc2h2d"},
		{"trips over kickers", "5s5h5dAc2s", "4s4h4dAhKs"},
		{"full house by trips", "3s3h3d2c2s", "2s2h2dAcAs"},
		{"six high straight beats wheel", "2h3d4c5s6h", "As2d3c4s5h"},
		{"flush by second card", "AsQs7s4s2s", "AhJh9h8h6h"},
		{"straight flush beats quads", "6s5s4s3s2s", "AsAhAdAcKs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Evaluate(five(tt.stronger))
			b := Evaluate(five(tt.weaker))
			assert.Equal(t, 1, a.Compare(b), "%s vs %s", a.Describe(), b.Describe())
			assert.Equal(t, -1, b.Compare(a))
		})
	}
}

func TestEvaluateEqualHandsDifferentSuits(t *testing.T) {
	a := Evaluate(five("AsKhQd9c7s"))
	b := Evaluate(five("AdKcQh9s7d"))
	assert.Equal(t, a, b)
	assert.Equal(t, 0, a.Compare(b))
}

func TestEvaluateInvariantUnderReordering(t *testing.T) {
	rng := randutil.New(11)
	for i := 0; i < 2000; i++ {
		d := deck.New().Shuffled(rng)
		hand := [5]deck.Card(d.DealN(5))
		want := Evaluate(hand)
		require.True(t, want.Category.Valid())

		perm := rng.Perm(5)
		var shuffled [5]deck.Card
		for j, p := range perm {
			shuffled[j] = hand[p]
		}
		require.Equal(t, want, Evaluate(shuffled), "hand %v", hand)
	}
}

func TestNormalizeRanks(t *testing.T) {
	cards := deck.MustParseCards("2h5dAs")
	assert.Equal(t, []int{14, 5, 2}, NormalizeRanks(cards, true))
	assert.Equal(t, []int{5, 2, 1}, NormalizeRanks(cards, false))
	// input untouched
	assert.Equal(t, deck.MustParseCards("2h5dAs"), cards)
}

func TestCategoryLabels(t *testing.T) {
	seen := make(map[string]bool)
	for i, c := range Categories {
		assert.Equal(t, Category(i), c)
		assert.True(t, c.Valid())
		assert.False(t, seen[c.String()], "duplicate label %s", c)
		seen[c.String()] = true
	}
	assert.Equal(t, "Unknown", Category(10).String())
	assert.False(t, Category(-1).Valid())
}
