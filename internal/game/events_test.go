package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/royalpoker/internal/deck"
)

func TestSimpleEventBus(t *testing.T) {
	bus := NewEventBus()
	first, second := &recorder{}, &recorder{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(StreetChangeEvent{Round: Flop})
	bus.Unsubscribe(first)
	bus.Publish(StreetChangeEvent{Round: Turn})

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 2)
	assert.Equal(t, Turn, second.events[1].(StreetChangeEvent).Round)
}

func TestFormatAction(t *testing.T) {
	tests := []struct {
		name     string
		event    PlayerActionEvent
		expected string
	}{
		{"fold", PlayerActionEvent{PlayerName: "Alice", Action: Fold}, "Alice folds"},
		{"check", PlayerActionEvent{PlayerName: "Bob", Action: Check}, "Bob checks"},
		{"automatic check", PlayerActionEvent{PlayerName: "Cara", Action: Check, Automatic: true}, "Cara has no chips left and checks"},
		{"reasoning alone", PlayerActionEvent{PlayerName: "Cara", Action: Check, Reasoning: "no chips left"}, "Cara checks"},
		{"call", PlayerActionEvent{PlayerName: "Bob", Action: Call, Amount: 20, PotAfter: 60}, "Bob calls 20 (pot 60)"},
		{"bet", PlayerActionEvent{PlayerName: "Dana", Action: Bet, Amount: 15, PotAfter: 15}, "Dana bets 15 (pot 15)"},
		{"raise", PlayerActionEvent{PlayerName: "Eve", Action: Raise, Amount: 45, CurrentBet: 60, PotAfter: 120}, "Eve raises to 60 (pot 120)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAction(tt.event))
		})
	}
}

func TestFormatCards(t *testing.T) {
	assert.Equal(t, "A♠ T♥ 2♣", FormatCards(deck.MustParseCards("AsTh2c")))
	assert.Equal(t, "", FormatCards(nil))
}
