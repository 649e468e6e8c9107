package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/royalpoker/internal/display"
	"github.com/lox/royalpoker/internal/game"
)

// ErrQuit is returned when the player leaves the table from a prompt.
var ErrQuit = errors.New("player quit")

// HumanAgent asks a person at the terminal for every decision. Several
// players can share one terminal; each prompt names the player to act.
type HumanAgent struct {
	in      io.Reader
	out     io.Writer
	theme   *display.Theme
	logger  *log.Logger
	handoff bool
}

// HumanOption configures a HumanAgent.
type HumanOption func(*HumanAgent)

// WithHandoff keeps each player's cards hidden until they press Enter, and
// clears them again once they have acted.
func WithHandoff() HumanOption {
	return func(h *HumanAgent) { h.handoff = true }
}

// NewHumanAgent creates an agent reading from in and drawing on out.
func NewHumanAgent(in io.Reader, out io.Writer, theme *display.Theme, logger *log.Logger, opts ...HumanOption) *HumanAgent {
	h := &HumanAgent{in: in, out: out, theme: theme, logger: logger.WithPrefix("human")}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Decide implements game.Agent.
func (h *HumanAgent) Decide(ctx context.Context, table game.TableState) (game.Decision, error) {
	model := newDecisionModel(table, h.theme, h.handoff)
	if err := h.run(ctx, model); err != nil {
		return game.Decision{}, err
	}
	if model.decision == nil {
		h.logger.Info("Player left the table", "player", table.Player.Name)
		return game.Decision{}, ErrQuit
	}

	h.logger.Debug("Player decided", "player", table.Player.Name,
		"action", model.decision.Action, "amount", model.decision.Amount)
	return *model.decision, nil
}

// Confirm asks a yes or no question. Quitting the prompt answers no.
func (h *HumanAgent) Confirm(ctx context.Context, question string) (bool, error) {
	model := newConfirmModel(question, h.theme)
	if err := h.run(ctx, model); err != nil {
		return false, err
	}
	return model.answer != nil && *model.answer, nil
}

func (h *HumanAgent) run(ctx context.Context, model tea.Model) error {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(h.in),
		tea.WithOutput(h.out),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}
