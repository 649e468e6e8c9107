// Package tui prompts human players for decisions with Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/royalpoker/internal/display"
	"github.com/lox/royalpoker/internal/game"
)

// decisionModel asks one player for one decision and quits once the input
// parses into a legal action. A covered model hides the player's cards until
// Enter is pressed, so players sharing a terminal can hand it over.
type decisionModel struct {
	table game.TableState
	theme *display.Theme
	input textinput.Model

	covered  bool
	err      string
	decision *game.Decision
	quitting bool
}

func newDecisionModel(table game.TableState, theme *display.Theme, covered bool) *decisionModel {
	ti := textinput.New()
	ti.Placeholder = "call, raise 50, fold, check..."
	ti.Prompt = "> "
	ti.CharLimit = 32
	ti.Width = 40
	ti.Focus()

	m := &decisionModel{table: table, theme: theme, input: ti, covered: covered}
	if table.Rejected != nil {
		m.err = table.Rejected.Error()
	}
	return m
}

func (m *decisionModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *decisionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.covered {
				m.covered = false
				return m, nil
			}
			d, err := ParseDecision(m.input.Value(), m.table)
			if err != nil {
				m.err = err.Error()
				m.input.SetValue("")
				return m, nil
			}
			m.decision = &d
			return m, tea.Quit
		}
	}
	if m.covered {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *decisionModel) View() string {
	if m.decision != nil || m.quitting {
		return ""
	}
	t := m.table
	if m.covered {
		return m.theme.Header.Render(t.Player.Name+"'s turn") + "\n" +
			m.theme.Info.Render("Press Enter when nobody else is looking, Esc to quit")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  chips %d\n", m.theme.Header.Render(t.Player.Name+" to act"),
		m.theme.Cards(t.Player.Hole), t.Player.Chips)
	fmt.Fprintf(&b, "Board: %s   Pot: %d   To call: %d\n", m.theme.Cards(t.Community), t.Pot, t.ToCall)

	options := make([]string, len(t.ValidActions))
	for i, va := range t.ValidActions {
		options[i] = fmt.Sprintf("%d) %s", i+1, describe(va, t))
	}
	b.WriteString(m.theme.Street.Render(strings.Join(options, "   ")) + "\n")

	if m.err != "" {
		b.WriteString(m.theme.Error.Render(m.err) + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.theme.Info.Render("Enter to submit, Esc to quit"))
	return b.String()
}

// confirmModel asks a yes or no question. An empty answer counts as yes.
type confirmModel struct {
	input textinput.Model

	answer   *bool
	quitting bool
}

func newConfirmModel(question string, theme *display.Theme) *confirmModel {
	ti := textinput.New()
	ti.Placeholder = "Y/n"
	ti.Prompt = question + " "
	ti.PromptStyle = theme.Header
	ti.CharLimit = 3
	ti.Focus()
	return &confirmModel{input: ti}
}

func (m *confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			switch strings.ToLower(strings.TrimSpace(m.input.Value())) {
			case "", "y", "yes":
				yes := true
				m.answer = &yes
			case "n", "no":
				no := false
				m.answer = &no
			default:
				m.input.SetValue("")
				return m, nil
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *confirmModel) View() string {
	if m.answer != nil || m.quitting {
		return ""
	}
	return m.input.View()
}
