package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/evaluator"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeStreetChange EventType = "street_change"
	EventTypePlayerAction EventType = "player_action"
	EventTypeEstimate     EventType = "estimate"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a hand
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// ProbabilitySnapshot is one street's Monte Carlo estimate.
type ProbabilitySnapshot struct {
	Round Street
	Label string
	Odds  evaluator.Odds
}

// HandStartEvent is published after players are reset and before any card is dealt.
type HandStartEvent struct {
	HandID    uuid.UUID
	Players   []PlayerState
	timestamp time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// StreetChangeEvent is published once the cards for a street are dealt.
type StreetChangeEvent struct {
	HandID    uuid.UUID
	Round     Street
	Community []deck.Card
	Pot       int
	timestamp time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when a player's action has been applied.
type PlayerActionEvent struct {
	HandID     uuid.UUID
	PlayerID   int
	PlayerName string
	Action     Action
	Amount     int
	Round      Street
	Reasoning  string
	PotAfter   int
	CurrentBet int
	// Automatic is set when the engine checked for a player with no chips.
	Automatic bool
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// EstimateEvent carries a probability snapshot as it is recorded.
type EstimateEvent struct {
	HandID    uuid.UUID
	Snapshot  ProbabilitySnapshot
	Players   []PlayerState
	timestamp time.Time
}

func (e EstimateEvent) EventType() EventType { return EventTypeEstimate }
func (e EstimateEvent) Timestamp() time.Time { return e.timestamp }

// HandEndEvent is published with the final result of a hand.
type HandEndEvent struct {
	Result    *HandResult
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormatAction renders a player action as a plain text line.
func FormatAction(e PlayerActionEvent) string {
	switch e.Action {
	case Fold:
		return fmt.Sprintf("%s folds", e.PlayerName)
	case Check:
		if e.Automatic {
			return fmt.Sprintf("%s has no chips left and checks", e.PlayerName)
		}
		return fmt.Sprintf("%s checks", e.PlayerName)
	case Call:
		return fmt.Sprintf("%s calls %d (pot %d)", e.PlayerName, e.Amount, e.PotAfter)
	case Bet:
		return fmt.Sprintf("%s bets %d (pot %d)", e.PlayerName, e.Amount, e.PotAfter)
	case Raise:
		return fmt.Sprintf("%s raises to %d (pot %d)", e.PlayerName, e.CurrentBet, e.PotAfter)
	}
	return fmt.Sprintf("%s: %s %d", e.PlayerName, e.Action, e.Amount)
}

// FormatCards renders cards separated by spaces.
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
