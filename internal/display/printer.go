package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/royalpoker/internal/game"
)

// Printer writes a running commentary of a hand to w. It subscribes to the
// engine's event bus.
type Printer struct {
	w       io.Writer
	theme   *Theme
	odds    bool
	players []game.PlayerState
}

// NewPrinter creates a printer. When odds is false probability snapshots are
// not printed as they are recorded.
func NewPrinter(w io.Writer, theme *Theme, odds bool) *Printer {
	return &Printer{w: w, theme: theme, odds: odds}
}

// OnEvent implements game.EventSubscriber.
func (p *Printer) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.HandStartEvent:
		p.players = e.Players
		p.handStart(e)
	case game.StreetChangeEvent:
		p.street(e)
	case game.PlayerActionEvent:
		fmt.Fprintln(p.w, "  "+game.FormatAction(e))
	case game.EstimateEvent:
		if p.odds {
			fmt.Fprint(p.w, p.theme.Odds(e.Snapshot, e.Players))
		}
	case game.HandEndEvent:
		p.handEnd(e.Result)
	}
}

func (p *Printer) handStart(e game.HandStartEvent) {
	id := e.HandID.String()
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.theme.Header.Render(fmt.Sprintf("=== Hand %s ===", id[:8])))

	seats := make([]string, len(e.Players))
	for i, ps := range e.Players {
		seats[i] = fmt.Sprintf("%s (%d)", ps.Name, ps.Chips)
	}
	fmt.Fprintln(p.w, "Players: "+strings.Join(seats, ", "))
}

func (p *Printer) street(e game.StreetChangeEvent) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.theme.Street.Render(e.Round.Label()))
	if len(e.Community) > 0 {
		fmt.Fprintf(p.w, "Board: %s   Pot: %d\n", p.theme.Cards(e.Community), e.Pot)
	}
}

func (p *Printer) handEnd(result *game.HandResult) {
	fmt.Fprintln(p.w)
	if result.Showdown {
		fmt.Fprint(p.w, p.theme.Showdown(result))
	}
	fmt.Fprint(p.w, p.theme.Result(result))
}
