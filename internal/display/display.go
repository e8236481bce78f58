// Package display renders round traces for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/muesli/termenv"
)

type styles struct {
	header    lipgloss.Style
	name      lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	info      lipgloss.Style
	win       lipgloss.Style
	lose      lipgloss.Style
	push      lipgloss.Style
	warning   lipgloss.Style
	round     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		name: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Width(14),
		redCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		win: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		lose: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		push: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		round: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
	}
}

// Printer writes rendered rounds to a terminal
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter creates a printer for w. With color disabled everything is
// rendered through the ASCII profile.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: w, styles: newStyles(r)}
}

// Header prints a title banner
func (p *Printer) Header(title string) error {
	_, err := fmt.Fprintln(p.out, p.styles.header.Render(title))
	return err
}

// Round prints one round
func (p *Printer) Round(rt game.RoundTrace) error {
	_, err := fmt.Fprintln(p.out, p.RenderRound(rt))
	return err
}

// RenderRound renders a round as a bordered block
func (p *Printer) RenderRound(rt game.RoundTrace) string {
	s := p.styles
	lines := []string{p.roundTitle(rt)}

	if len(rt.Dealer.Cards) > 0 {
		dealer := fmt.Sprintf("%s %s %s", s.name.Render("Dealer"), p.RenderCards(rt.Dealer.Cards), s.info.Render(total(rt.Dealer.Value, rt.Dealer.Bust, rt.Dealer.Blackjack)))
		lines = append(lines, dealer)
	}

	for _, pt := range rt.Players {
		if pt.SatOut {
			lines = append(lines, fmt.Sprintf("%s %s", s.name.Render(pt.Name), s.info.Render(fmt.Sprintf("sat out, budget %.2f", pt.Budget))))
			continue
		}
		for i, h := range pt.Hands {
			label := pt.Name
			if i > 0 {
				label = ""
			}
			line := fmt.Sprintf("%s %s %s %s %s",
				s.name.Render(label),
				p.RenderCards(h.Cards),
				s.info.Render(total(h.Value, h.Bust, h.Blackjack)),
				p.result(h.Result),
				s.info.Render(fmt.Sprintf("bet %.2f", h.Bet)))
			lines = append(lines, line)

			if len(h.Decisions) > 0 {
				actions := make([]string, len(h.Decisions))
				for j, d := range h.Decisions {
					actions[j] = d.Action.String()
				}
				lines = append(lines, fmt.Sprintf("%s %s", s.name.Render(""), s.info.Render(strings.Join(actions, ", "))))
			}
			for _, w := range h.Warnings {
				lines = append(lines, fmt.Sprintf("%s %s", s.name.Render(""), s.warning.Render(w)))
			}
		}
		lines = append(lines, fmt.Sprintf("%s %s", s.name.Render(""), s.info.Render(fmt.Sprintf("net %+.2f, budget %.2f", pt.Net, pt.Budget))))
	}

	return s.round.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (p *Printer) roundTitle(rt game.RoundTrace) string {
	title := fmt.Sprintf("Round %d", rt.Round)
	detail := fmt.Sprintf("%d cards left, running count %+d, true count %+d",
		rt.Shoe.CardsRemaining, rt.Shoe.RunningCount, rt.Shoe.TrueCount)
	if rt.Shoe.Reshuffled {
		detail += ", new shoe"
	}
	return fmt.Sprintf("%s %s", p.styles.header.Render(title), p.styles.info.Render(detail))
}

// RenderCards renders cards with red suits highlighted
func (p *Printer) RenderCards(cards []deck.Card) string {
	formatted := make([]string, len(cards))
	for i, card := range cards {
		if card.Suit.IsRed() {
			formatted[i] = p.styles.redCard.Render(card.String())
		} else {
			formatted[i] = p.styles.blackCard.Render(card.String())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func (p *Printer) result(r game.Result) string {
	switch r {
	case game.ResultWin:
		return p.styles.win.Render("win")
	case game.ResultLose:
		return p.styles.lose.Render("lose")
	case game.ResultPush:
		return p.styles.push.Render("push")
	default:
		return ""
	}
}

func total(value int, bust, blackjack bool) string {
	switch {
	case blackjack:
		return "blackjack"
	case bust:
		return fmt.Sprintf("%d bust", value)
	default:
		return fmt.Sprintf("%d", value)
	}
}
