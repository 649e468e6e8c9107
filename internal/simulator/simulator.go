// Package simulator plays many independent bot-only hands and collects
// per-bot chip statistics.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/royalpoker/internal/bot"
	"github.com/lox/royalpoker/internal/game"
	"github.com/lox/royalpoker/internal/randutil"
	"github.com/lox/royalpoker/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Hands   int
	Bots    []string // bot kinds, one per seat
	Chips   int      // stack every bot starts each hand with
	Seed    int64
	Timeout time.Duration // per hand, zero for none
	Workers int           // hands played in parallel, zero for one per CPU
	Logger  *log.Logger
	Options []game.Option // extra engine options such as the tie rule
}

// Report is the outcome of a simulation.
type Report struct {
	Names []string // bot names in the configured order
	Kinds map[string]string
	Stats map[string]*statistics.Statistics
	Hands int
}

// Simulator runs poker hand simulations
type Simulator struct {
	config Config
	names  []string
}

// New validates the configuration and creates a simulator.
func New(config Config) (*Simulator, error) {
	if n := len(config.Bots); n < game.MinPlayers || n > game.MaxPlayers {
		return nil, fmt.Errorf("need %d to %d bots, got %d", game.MinPlayers, game.MaxPlayers, n)
	}
	for _, kind := range config.Bots {
		if !slices.Contains(bot.Kinds(), kind) {
			return nil, fmt.Errorf("unknown bot %q (want one of %s)", kind, strings.Join(bot.Kinds(), ", "))
		}
	}
	if config.Hands < 1 {
		return nil, fmt.Errorf("hands must be positive, got %d", config.Hands)
	}
	if config.Chips < 1 {
		return nil, fmt.Errorf("chips must be positive, got %d", config.Chips)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	names := make([]string, len(config.Bots))
	for i, kind := range config.Bots {
		names[i] = fmt.Sprintf("%s-%d", kind, i+1)
	}
	return &Simulator{config: config, names: names}, nil
}

// Run plays every hand and aggregates the results. Hands are independent:
// stacks are reset for each, seats rotate to cancel positional bias, and hand
// h is dealt from Seed+h, so results do not depend on Workers.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	results := make([]map[string]statistics.HandResult, s.config.Hands)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for h := range s.config.Hands {
		g.Go(func() error {
			r, err := s.playHandWithTimeout(gctx, h)
			if err != nil {
				return err
			}
			results[h] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Names: s.names,
		Kinds: make(map[string]string, len(s.names)),
		Stats: make(map[string]*statistics.Statistics, len(s.names)),
		Hands: s.config.Hands,
	}
	for i, name := range s.names {
		report.Kinds[name] = s.config.Bots[i]
		report.Stats[name] = &statistics.Statistics{}
	}
	for _, r := range results {
		for name, hr := range r {
			report.Stats[name].Add(hr)
		}
	}
	for _, name := range s.names {
		if err := report.Stats[name].Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed for %s: %w", name, err)
		}
	}
	return report, nil
}

func (s *Simulator) playHandWithTimeout(ctx context.Context, hand int) (map[string]statistics.HandResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	return s.playHand(ctx, hand)
}

// playHand plays one hand and returns each bot's result keyed by name.
func (s *Simulator) playHand(ctx context.Context, hand int) (map[string]statistics.HandResult, error) {
	seed := s.config.Seed + int64(hand)
	rng := randutil.New(seed)
	n := len(s.names)
	rotation := hand % n

	players := make([]*game.Player, n)
	agents := make(map[int]game.Agent, n)
	for seat := range n {
		i := (seat + rotation) % n
		id := seat + 1
		players[seat] = &game.Player{ID: id, Name: s.names[i], Chips: s.config.Chips}

		agent, err := bot.New(s.config.Bots[i], bot.WithLogger(s.config.Logger), bot.WithRNG(randutil.Child(rng)))
		if err != nil {
			return nil, err
		}
		agents[id] = agent
	}

	opts := append(slices.Clone(s.config.Options),
		game.WithLogger(s.config.Logger),
		game.WithRNG(randutil.Child(rng)),
		game.WithoutEstimates(),
	)
	engine, err := game.NewEngine(players, agents, opts...)
	if err != nil {
		return nil, err
	}
	result, err := engine.PlayHand(ctx)
	if err != nil {
		return nil, fmt.Errorf("hand %d (seed %d): %w", hand+1, seed, err)
	}

	out := make(map[string]statistics.HandResult, n)
	for seat, p := range players {
		out[p.Name] = statistics.HandResult{
			Net:      p.Chips - s.config.Chips,
			Seed:     seed,
			Seat:     seat + 1,
			Showdown: result.Showdown,
			Pot:      result.Pot,
			EndedOn:  result.EndedOn.String(),
		}
	}
	return out, nil
}

// WriteSummary prints a per-bot summary of the report.
func (r *Report) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\n=== RESULTS over %d hands ===\n", r.Hands)
	for _, name := range r.Names {
		st := r.Stats[name]
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(w, "\n%s (%s)\n", name, r.Kinds[name])
		fmt.Fprintf(w, "  Total: %+.0f chips, mean %+.2f chips/hand, 95%% CI [%.2f, %.2f]\n",
			st.Sum, st.Mean(), low, high)
		fmt.Fprintf(w, "  Median %.1f, std dev %.1f, P5=%.1f P95=%.1f\n",
			st.Median(), st.StdDev(), st.Percentile(0.05), st.Percentile(0.95))
		fmt.Fprintf(w, "  Won %d at showdown (%+.0f chips), %d without (%+.0f chips)\n",
			st.ShowdownWins, st.ShowdownNet, st.NonShowdownWins, st.NonShowdownNet)
		fmt.Fprintf(w, "  Largest pot: %d\n", st.MaxPot)

		seats := make([]string, 0, len(st.Seats))
		for seat := 1; seat < len(st.Seats); seat++ {
			if st.Seats[seat].Hands > 0 {
				seats = append(seats, fmt.Sprintf("%d:%+.1f", seat, st.SeatMean(seat)))
			}
		}
		fmt.Fprintf(w, "  By seat: %s\n", strings.Join(seats, " "))
	}
}
