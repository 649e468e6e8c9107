// Package statistics summarises chip results over many simulated hands.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult is one player's outcome in a single hand.
type HandResult struct {
	Net      int    // chips won (positive) or lost (negative)
	Seed     int64  // seed the hand was dealt from, for replay
	Seat     int    // 1-based seat the player sat in
	Showdown bool   // the hand reached a showdown
	Pot      int    // final pot size in chips
	EndedOn  string // street the hand ended on
}

// SeatStats tracks results for one seat.
type SeatStats struct {
	Hands int
	Sum   float64
	SumSq float64
}

// Statistics accumulates HandResults for one player.
type Statistics struct {
	Hands  int
	Sum    float64
	SumSq  float64   // sum of squares for the variance
	Values []float64 // every result, for median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownNet     float64 // net chips from hands that reached showdown
	NonShowdownNet  float64 // net chips from hands won or lost by folding
	AllNet          float64

	Seats [7]SeatStats // index 0 unused

	MaxPot  int
	EndedOn map[string]int
}

// Mean returns the average chips won per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := float64(result.Net)
	s.Hands++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	if result.Net > 0 {
		if result.Showdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.Showdown {
		s.ShowdownNet += net
	} else {
		s.NonShowdownNet += net
	}
	s.AllNet += net

	if result.Seat >= 1 && result.Seat < len(s.Seats) {
		s.Seats[result.Seat].Hands++
		s.Seats[result.Seat].Sum += net
		s.Seats[result.Seat].SumSq += net * net
	}

	s.MaxPot = max(s.MaxPot, result.Pot)
	if result.EndedOn != "" {
		if s.EndedOn == nil {
			s.EndedOn = make(map[string]int)
		}
		s.EndedOn[result.EndedOn]++
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbours.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean result for a 1-based seat.
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 1 || seat >= len(s.Seats) {
		return 0
	}
	ss := s.Seats[seat]
	if ss.Hands == 0 {
		return 0
	}
	return ss.Sum / float64(ss.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.NonShowdownNet) <= 1e-6
}

// Validate checks the accumulated data for internal consistency.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.2f, showdown=%.2f, non-showdown=%.2f",
			s.AllNet, s.ShowdownNet, s.NonShowdownNet)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}

	seatHands := 0
	for _, ss := range s.Seats {
		seatHands += ss.Hands
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seatHands, s.Hands)
	}
	return nil
}
