package simulator

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"one bot", Config{Hands: 1, Chips: 100, Bots: []string{"call"}}, "need 2 to 6 bots"},
		{"seven bots", Config{Hands: 1, Chips: 100, Bots: []string{"call", "call", "call", "call", "call", "call", "call"}}, "need 2 to 6 bots"},
		{"unknown bot", Config{Hands: 1, Chips: 100, Bots: []string{"call", "maniac"}}, "unknown bot"},
		{"human", Config{Hands: 1, Chips: 100, Bots: []string{"call", "human"}}, "unknown bot"},
		{"no hands", Config{Hands: 0, Chips: 100, Bots: []string{"call", "fold"}}, "hands must be positive"},
		{"no chips", Config{Hands: 1, Chips: 0, Bots: []string{"call", "fold"}}, "chips must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func run(t *testing.T, config Config) *Report {
	t.Helper()
	sim, err := New(config)
	require.NoError(t, err)
	report, err := sim.Run(context.Background())
	require.NoError(t, err)
	return report
}

func TestRunConservesChips(t *testing.T) {
	report := run(t, Config{
		Hands:   12,
		Bots:    []string{"call", "random", "odds"},
		Chips:   200,
		Seed:    12345,
		Timeout: 10 * time.Second,
		Logger:  quiet(),
	})

	assert.Equal(t, []string{"call-1", "random-2", "odds-3"}, report.Names)
	total := 0.0
	for _, name := range report.Names {
		st := report.Stats[name]
		assert.Equal(t, 12, st.Hands, name)
		total += st.Sum
		for seat := 1; seat <= 3; seat++ {
			assert.Equal(t, 4, st.Seats[seat].Hands, "%s seat %d", name, seat)
		}
	}
	assert.InDelta(t, 0, total, 1e-9)
}

func TestPassiveBotsCheckDown(t *testing.T) {
	report := run(t, Config{Hands: 6, Bots: []string{"call", "fold"}, Chips: 100, Seed: 1, Logger: quiet()})

	// Neither bot ever bets, so every hand is checked down to a showdown with
	// an empty pot.
	call, fold := report.Stats["call-1"], report.Stats["fold-2"]
	assert.Equal(t, 6, call.EndedOn["River"])
	assert.Equal(t, 6, fold.EndedOn["River"])
	assert.Zero(t, call.Sum)
	assert.Zero(t, fold.Sum)
	assert.Zero(t, call.MaxPot)
}

func TestRunIsDeterministicAcrossWorkers(t *testing.T) {
	config := Config{Hands: 8, Bots: []string{"random", "random", "odds"}, Chips: 150, Seed: 99, Logger: quiet()}

	config.Workers = 1
	serial := run(t, config)
	config.Workers = 4
	parallel := run(t, config)

	for _, name := range serial.Names {
		assert.Equal(t, serial.Stats[name].Values, parallel.Stats[name].Values, name)
	}
}

func TestRunCancelled(t *testing.T) {
	sim, err := New(Config{Hands: 5, Bots: []string{"call", "call"}, Chips: 100, Logger: quiet()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteSummary(t *testing.T) {
	report := run(t, Config{Hands: 4, Bots: []string{"call", "random"}, Chips: 100, Seed: 3, Logger: quiet()})

	var buf bytes.Buffer
	report.WriteSummary(&buf)

	out := buf.String()
	assert.Contains(t, out, "RESULTS over 4 hands")
	assert.Contains(t, out, "call-1 (call)")
	assert.Contains(t, out, "random-2 (random)")
	assert.Contains(t, out, "By seat: 1:")
}
