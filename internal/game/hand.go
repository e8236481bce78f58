package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/deck"
)

// Result is the settled outcome of a hand
type Result int

const (
	ResultNone Result = iota
	ResultWin
	ResultLose
	ResultPush
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	case ResultPush:
		return "push"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Result) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*r = ResultNone
	case "win":
		*r = ResultWin
	case "lose":
		*r = ResultLose
	case "push":
		*r = ResultPush
	default:
		return fmt.Errorf("unknown result %q", text)
	}
	return nil
}

// DecisionRecord is one entry of a hand's decision log
type DecisionRecord struct {
	Action Action `json:"action" toml:"action"`
	Rule   string `json:"rule" toml:"rule"`
}

// Hand is one betting unit: the cards dealt to it, its wager and the
// decisions taken while playing it.
type Hand struct {
	Cards       []deck.Card
	Bet         float64
	CanHit      bool
	DoubledDown bool
	AceSplit    bool // produced by splitting a pair of aces
	Result      Result
	Decisions   []DecisionRecord
	Warnings    []string
}

// NewHand creates an empty hand carrying bet
func NewHand(bet float64) *Hand {
	return &Hand{Bet: bet, CanHit: true}
}

// AddCard appends a card in deal order
func (h *Hand) AddCard(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// total sums the hand with every ace at 11, then reprices aces to 1 one at a
// time while the total is over 21. softAces is the number still priced at 11.
func (h *Hand) total() (value, softAces int) {
	for _, c := range h.Cards {
		value += c.BlackjackValue()
		if c.IsAce() {
			softAces++
		}
	}
	for value > 21 && softAces > 0 {
		value -= 10
		softAces--
	}
	return value, softAces
}

// Value returns the best total of the hand
func (h *Hand) Value() int {
	v, _ := h.total()
	return v
}

// IsSoft reports whether an ace is still counted as 11
func (h *Hand) IsSoft() bool {
	_, soft := h.total()
	return soft > 0
}

// IsBlackjack reports a two-card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value() == 21
}

// IsBust reports a total over 21
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// CanSplit reports two cards of equal blackjack value. Value equality is
// intended: a king and a queen form a splittable pair.
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].BlackjackValue() == h.Cards[1].BlackjackValue()
}

// Clone returns a deep copy that shares no slices with h
func (h *Hand) Clone() *Hand {
	c := *h
	c.Cards = append([]deck.Card(nil), h.Cards...)
	c.Decisions = append([]DecisionRecord(nil), h.Decisions...)
	c.Warnings = append([]string(nil), h.Warnings...)
	return &c
}

// String renders the cards and total, e.g. "A♠ 6♥ (soft 17)"
func (h *Hand) String() string {
	cards := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		cards[i] = c.String()
	}
	kind := "hard"
	if h.IsSoft() {
		kind = "soft"
	}
	return fmt.Sprintf("%s (%s %d)", strings.Join(cards, " "), kind, h.Value())
}
