package evaluator

import (
	"context"
	"testing"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/randutil"
)

// randomHands returns n random 7 card hands from a fixed seed.
func randomHands(n int) [][]deck.Card {
	rng := randutil.New(42)
	hands := make([][]deck.Card, n)
	for i := range hands {
		hands[i] = deck.New().Shuffled(rng).DealN(7)
	}
	return hands
}

func BenchmarkEvaluate(b *testing.B) {
	hands := randomHands(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Evaluate([5]deck.Card(hands[i%len(hands)][:5]))
	}
}

func BenchmarkBestHand(b *testing.B) {
	hands := randomHands(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := hands[i%len(hands)]
		if _, err := BestHand(h[:2], h[2:]); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkEstimate(b *testing.B, board string, players int, workers int) {
	community := deck.MustParseCards(board)
	d := deck.Without(community...).Shuffled(randutil.New(7))
	contenders := make([]Contender, players)
	for i := range contenders {
		contenders[i] = Contender{ID: i + 1, Hole: d.DealN(2)}
	}
	used := append([]deck.Card{}, community...)
	for _, c := range contenders {
		used = append(used, c.Hole...)
	}
	remaining := deck.Without(used...).Cards()

	est := NewEstimator(WithSimulations(DefaultSimulations*10), WithWorkers(workers))
	rng := randutil.New(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := est.Estimate(context.Background(), rng, contenders, community, remaining); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEstimatePreflop(b *testing.B)         { benchmarkEstimate(b, "", 2, 1) }
func BenchmarkEstimatePreflopParallel(b *testing.B) { benchmarkEstimate(b, "", 2, 8) }
func BenchmarkEstimateFlopSixPlayers(b *testing.B)  { benchmarkEstimate(b, "Ad7c2s", 6, 8) }
func BenchmarkEstimateTurn(b *testing.B)            { benchmarkEstimate(b, "Ad7c2sKh", 3, 1) }
