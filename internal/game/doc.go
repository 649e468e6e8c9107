// Package game implements the Texas Hold'em hand loop.
//
// The main type is Engine, which deals a hand, runs a BettingRound on each
// street, records a Monte Carlo probability snapshot per street and settles
// the showdown.
//
// # Basic Usage
//
//	players := []*game.Player{
//	    {ID: 1, Name: "Alice", Chips: 1000},
//	    {ID: 2, Name: "Bob", Chips: 1000},
//	}
//	agents := map[int]game.Agent{1: alice, 2: bob}
//	engine, err := game.NewEngine(players, agents, game.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	result, err := engine.PlayHand(ctx)
//
// # Deterministic Testing
//
// WithSeed or WithRNG make the shuffle and the estimates reproducible.
// WithDeck plays a prepared deck without shuffling, and WithClock accepts a
// quartz mock clock.
//
// # Betting
//
// Players are queued in seat order. When a player raises, every other player
// still in the hand who has already acted is queued once more. A player with
// no chips checks automatically, and the round stops as soon as one player is
// left. Illegal decisions are returned to the agent as an *ActionError on the
// next TableState; nothing is mutated until a decision is legal.
//
// There are no blinds and no side pots: everything goes into a single pot.
package game
