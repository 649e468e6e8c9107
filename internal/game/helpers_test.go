package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/evaluator"
)

var names = []string{"Alice", "Bob", "Charlie", "Dana", "Eve", "Frank", "Grace"}

// newPlayers seats one player per chip count with IDs starting at 1.
func newPlayers(chips ...int) []*Player {
	players := make([]*Player, len(chips))
	for i, c := range chips {
		players[i] = &Player{ID: i + 1, Name: names[i], Chips: c}
	}
	return players
}

func agentsFor(players []*Player, agent func(p *Player) Agent) map[int]Agent {
	agents := make(map[int]Agent, len(players))
	for _, p := range players {
		agents[p.ID] = agent(p)
	}
	return agents
}

// stackedDeck returns a full deck whose first cards dealt are top, in order.
func stackedDeck(t *testing.T, top string) *deck.Deck {
	t.Helper()
	first, err := deck.ParseCards(top)
	require.NoError(t, err)

	cards := deck.Without(first...).Cards()
	for i := len(first) - 1; i >= 0; i-- {
		cards = append(cards, first[i])
	}
	return deck.FromCards(cards)
}

func fastEstimator() *evaluator.Estimator {
	return evaluator.NewEstimator(evaluator.WithSimulations(100), evaluator.WithWorkers(1))
}

// passiveAgent checks or calls whatever happens.
type passiveAgent struct {
	calls int
}

func (a *passiveAgent) Decide(_ context.Context, table TableState) (Decision, error) {
	a.calls++
	if table.ToCall > 0 {
		return Decision{Action: Call}, nil
	}
	return Decision{Action: Check}, nil
}

// scriptedAgent plays its decisions in order and then falls back to calling.
type scriptedAgent struct {
	script []Decision
	seen   []TableState
}

func script(decisions ...Decision) *scriptedAgent {
	return &scriptedAgent{script: decisions}
}

func (a *scriptedAgent) Decide(_ context.Context, table TableState) (Decision, error) {
	a.seen = append(a.seen, table)
	if len(a.script) > 0 {
		d := a.script[0]
		a.script = a.script[1:]
		return d, nil
	}
	if table.ToCall > 0 {
		return Decision{Action: Call}, nil
	}
	return Decision{Action: Check}, nil
}

// forbiddenAgent fails the test when it is asked anything.
type forbiddenAgent struct {
	t *testing.T
}

func (a forbiddenAgent) Decide(context.Context, TableState) (Decision, error) {
	a.t.Errorf("agent should not have been asked for a decision")
	return Decision{}, fmt.Errorf("unexpected prompt")
}

// randomAgent picks a uniformly random legal action and amount.
type randomAgent struct {
	rng *rand.Rand
}

func (a randomAgent) Decide(_ context.Context, table TableState) (Decision, error) {
	va := table.ValidActions[a.rng.IntN(len(table.ValidActions))]
	amount := va.MinAmount
	if va.MaxAmount > va.MinAmount {
		amount += a.rng.IntN(va.MaxAmount - va.MinAmount + 1)
	}
	return Decision{Action: va.Action, Amount: amount}, nil
}

// shoveAgent puts every chip in at the first opportunity and calls otherwise.
type shoveAgent struct{}

func (shoveAgent) Decide(_ context.Context, table TableState) (Decision, error) {
	for _, action := range []Action{Raise, Bet} {
		if va, ok := table.Can(action); ok {
			return Decision{Action: action, Amount: va.MaxAmount}, nil
		}
	}
	if table.ToCall > 0 {
		return Decision{Action: Call}, nil
	}
	return Decision{Action: Check}, nil
}

// recorder keeps every published event.
type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(e GameEvent) {
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func (r *recorder) actions() []PlayerActionEvent {
	var out []PlayerActionEvent
	for _, e := range r.events {
		if a, ok := e.(PlayerActionEvent); ok {
			out = append(out, a)
		}
	}
	return out
}

func (r *recorder) count(t EventType) int {
	return len(slices.DeleteFunc(r.types(), func(et EventType) bool { return et != t }))
}

// conservation checks after every action that no chip was created or lost.
type conservation struct {
	t       *testing.T
	players []*Player
	stacks  map[int]int
	checked int
}

func watchChips(t *testing.T, players []*Player) *conservation {
	c := &conservation{t: t, players: players, stacks: make(map[int]int)}
	for _, p := range players {
		c.stacks[p.ID] = p.Chips
	}
	return c
}

func (c *conservation) OnEvent(e GameEvent) {
	if _, ok := e.(PlayerActionEvent); !ok {
		return
	}
	c.checked++
	pot := 0
	for _, p := range c.players {
		require.Equal(c.t, c.stacks[p.ID], p.Chips+p.TotalBet, "%s chips+committed", p.Name)
		require.GreaterOrEqual(c.t, p.Chips, 0)
		pot += p.TotalBet
	}
	require.Equal(c.t, pot, e.(PlayerActionEvent).PotAfter)
}
