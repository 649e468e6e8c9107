// Package display renders hands, probabilities and results for a terminal.
package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DefaultBarWidth is the width of a probability bar in cells.
const DefaultBarWidth = 18

// Probability bar colour thresholds, in percent.
const (
	highOdds = 55.0
	midOdds  = 35.0
)

// Theme holds the styles for one output. Styles are bound to a renderer so a
// file or pipe can be written without colour while the terminal keeps it.
type Theme struct {
	BarWidth int

	Header    lipgloss.Style
	Street    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	High      lipgloss.Style
	Mid       lipgloss.Style
	Low       lipgloss.Style
	Winner    lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
}

// NewTheme builds a theme for w using profile. Use termenv.Ascii to disable
// colour entirely.
func NewTheme(w io.Writer, profile termenv.Profile, barWidth int) *Theme {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))

	return &Theme{
		BarWidth: barWidth,
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Street: r.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Bold(true),
		High: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Mid: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		Low: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Profile picks the colour profile for w: the detected terminal profile when
// color is true, plain ASCII otherwise.
func Profile(w io.Writer, color bool) termenv.Profile {
	if !color {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}
