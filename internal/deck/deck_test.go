package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/royalpoker/internal/randutil"
)

func TestNewDeck(t *testing.T) {
	d := New()
	require.Equal(t, Size, d.Len())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		assert.True(t, c.Valid(), "invalid card %v", c)
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)

	// Order is deterministic per call
	assert.Equal(t, d.Cards(), New().Cards())
}

func TestShuffledIsIndependentPermutation(t *testing.T) {
	d := New()
	before := d.Cards()

	shuffled := d.Shuffled(randutil.New(42))

	assert.Equal(t, before, d.Cards(), "source deck must not change")
	assert.ElementsMatch(t, before, shuffled.Cards())
	assert.NotEqual(t, before, shuffled.Cards())

	// Dealing from the copy leaves the original intact
	shuffled.Deal()
	assert.Equal(t, Size, d.Len())
	assert.Equal(t, Size-1, shuffled.Len())
}

func TestShuffledDeterministicForSeed(t *testing.T) {
	a := New().Shuffled(randutil.New(7)).Cards()
	b := New().Shuffled(randutil.New(7)).Cards()
	c := New().Shuffled(randutil.New(8)).Cards()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDealDrainsWithoutRepetition(t *testing.T) {
	d := New().Shuffled(randutil.New(1))
	seen := make(map[Card]bool)

	for i := 0; i < Size; i++ {
		c := d.Deal()
		require.False(t, seen[c], "card %v dealt twice", c)
		seen[c] = true
		assert.Equal(t, Size-i-1, d.Len())
	}

	assert.PanicsWithValue(t, ErrEmptyDeck, func() { d.Deal() })
}

func TestDealTakesTopCard(t *testing.T) {
	d := FromCards(MustParseCards("2c3dAs"))

	assert.Equal(t, MustParseCards("As")[0], d.Deal())
	assert.Equal(t, MustParseCards("3d2c"), d.DealN(2))
	assert.Zero(t, d.Len())
}

func TestWithout(t *testing.T) {
	used := MustParseCards("AsAhKd")
	d := Without(used...)

	assert.Equal(t, Size-3, d.Len())
	for _, c := range used {
		assert.NotContains(t, d.Cards(), c)
	}
}

func TestCardsReturnsCopy(t *testing.T) {
	d := New()
	cards := d.Cards()
	cards[0] = Card{}

	assert.True(t, d.Cards()[0].Valid())
}
