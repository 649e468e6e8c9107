package display

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lox/royalpoker/internal/deck"
	"github.com/lox/royalpoker/internal/game"
)

// Cards renders cards separated by spaces, hearts and diamonds in red.
func (t *Theme) Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return t.Info.Render("-")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = t.RedCard.Render(c.String())
		} else {
			parts[i] = t.BlackCard.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

// Bar renders pct (0 to 100) as a filled bar coloured by strength.
func (t *Theme) Bar(pct float64) string {
	pct = math.Max(0, math.Min(100, pct))
	filled := int(math.Round(pct / 100 * float64(t.BarWidth)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", t.BarWidth-filled)

	switch {
	case pct >= highOdds:
		return t.High.Render(bar)
	case pct >= midOdds:
		return t.Mid.Render(bar)
	}
	return t.Low.Render(bar)
}

// minTieShare is the tie percentage below which the Tie row is left out.
const minTieShare = 0.5

// Odds renders one probability snapshot: a line per contender in seat order,
// then the tie share when it is above minTieShare.
func (t *Theme) Odds(snap game.ProbabilitySnapshot, players []game.PlayerState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%d simulations)\n", t.Header.Render("Odds: "+snap.Label), snap.Odds.Trials)

	width := nameWidth(players)
	for _, p := range players {
		if _, ok := snap.Odds.Wins[p.ID]; !ok {
			continue
		}
		pct := snap.Odds.Win(p.ID)
		fmt.Fprintf(&b, "  %-*s %s %5.1f%%\n", width, p.Name, t.Bar(pct), pct)
	}
	if tie := snap.Odds.Tie(); tie > minTieShare {
		fmt.Fprintf(&b, "  %-*s %s %5.1f%%\n", width, "Tie", t.Bar(tie), tie)
	}
	return b.String()
}

// History renders every snapshot recorded during a hand, oldest first.
func (t *Theme) History(result *game.HandResult) string {
	if result.State == nil || len(result.State.History) == 0 {
		return t.Info.Render("No probability estimates were recorded.") + "\n"
	}
	players := States(result.State.Players)

	var b strings.Builder
	b.WriteString(t.Header.Render("Probability history") + "\n")
	for _, snap := range result.State.History {
		b.WriteString(t.Odds(snap, players))
	}
	return b.String()
}

// Showdown lists every player who reached the end of the hand with their
// hole cards and best hand.
func (t *Theme) Showdown(result *game.HandResult) string {
	if result.State == nil {
		return ""
	}
	width := nameWidth(States(result.State.Players))

	var b strings.Builder
	b.WriteString(t.Header.Render("Showdown") + "\n")
	b.WriteString("  Board: " + t.Cards(result.State.Community) + "\n")
	for _, p := range result.State.Players {
		if p.Folded {
			continue
		}
		line := fmt.Sprintf("  %-*s %s  %s", width, p.Name, t.Cards(p.Hole[:]), p.BestHand)
		if _, won := result.Payouts[p.ID]; won {
			line = t.Winner.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Result renders the outcome of a hand and its payouts.
func (t *Theme) Result(result *game.HandResult) string {
	var b strings.Builder
	b.WriteString(t.Winner.Render(result.Reason) + "\n")

	ids := make([]int, 0, len(result.Payouts))
	for id := range result.Payouts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		name := fmt.Sprintf("player %d", id)
		if result.State != nil {
			if p := result.State.Player(id); p != nil {
				name = p.Name
			}
		}
		fmt.Fprintf(&b, "  %s collects %d\n", name, result.Payouts[id])
	}
	return b.String()
}

// Deltas renders each player's chip change, gains in green and losses in red.
func (t *Theme) Deltas(players []*game.Player, deltas map[int]int) string {
	width := nameWidth(States(players))

	var b strings.Builder
	b.WriteString(t.Header.Render("Chip changes") + "\n")
	for _, p := range players {
		d := deltas[p.ID]
		text := fmt.Sprintf("%+d", d)
		switch {
		case d > 0:
			text = t.High.Render(text)
		case d < 0:
			text = t.Low.Render(text)
		}
		fmt.Fprintf(&b, "  %-*s %6d  %s\n", width, p.Name, p.Chips, text)
	}
	return b.String()
}

// States converts seats to the read-only view used for rendering.
func States(players []*game.Player) []game.PlayerState {
	out := make([]game.PlayerState, len(players))
	for i, p := range players {
		out[i] = game.PlayerState{
			ID:       p.ID,
			Name:     p.Name,
			Chips:    p.Chips,
			RoundBet: p.RoundBet,
			TotalBet: p.TotalBet,
			Folded:   p.Folded,
		}
	}
	return out
}

func nameWidth(players []game.PlayerState) int {
	width := len("Tie")
	for _, p := range players {
		width = max(width, len(p.Name))
	}
	return width
}
