package game

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/deck"
)

// Action is a play decision for a single hand
type Action int

const (
	Hit Action = iota + 1
	Stand
	DoubleDown
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case DoubleDown:
		return "double down"
	case Split:
		return "split"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Valid reports whether a is one of the four legal actions
func (a Action) Valid() bool {
	return a >= Hit && a <= Split
}

// ParseAction parses the names produced by Action.String
func ParseAction(s string) (Action, error) {
	switch s {
	case "hit":
		return Hit, nil
	case "stand":
		return Stand, nil
	case "double down", "double":
		return DoubleDown, nil
	case "split":
		return Split, nil
	default:
		return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidDecision, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDecision, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Decision is a strategy's answer for one step of a hand. Rule names the
// branch of the policy that fired; it is carried into the trace and never
// used for control flow.
type Decision struct {
	Action Action
	Rule   string
}

// TableView is the read-only game state handed to strategies. It is a value
// snapshot; nothing in it points back into the engine.
type TableView struct {
	Round          int
	MinimumBet     float64
	DealerUpcard   deck.Card // zero before the initial deal
	RunningCount   int
	TrueCount      float64
	CardsRemaining int
	Decks          int
	HandCount      int // hands the player holds this round
	MaxHands       int
	WinStreak      int // consecutive winning rounds for the player
}

// Strategy is a betting and playing policy bound to a player
type Strategy interface {
	// Name identifies the strategy in traces and reports
	Name() string

	// DetermineBet returns the wager for the next round, or false to sit out
	DetermineBet(view TableView, budget float64) (float64, bool)

	// Decide picks the next action for hand
	Decide(hand *Hand, view TableView, budget float64) Decision
}

// NormalizeDecision rewrites a raw strategy decision into one the engine can
// apply. Illegal hits become stands and illegal splits or double downs become
// hits; the reason is appended to the rule tag. Only an action outside the
// legal set is an error.
func NormalizeDecision(d Decision, hand *Hand, view TableView, budget float64) (Decision, error) {
	switch d.Action {
	case Hit:
		if !hand.CanHit {
			return rewrite(d, Stand, "hand is closed"), nil
		}
	case Stand:
	case DoubleDown:
		switch {
		case len(hand.Cards) != 2:
			return rewrite(d, Hit, fmt.Errorf("%w: needs exactly two cards", ErrIllegalDoubleDown).Error()), nil
		case budget < hand.Bet:
			return rewrite(d, Hit, fmt.Errorf("%w: budget %.2f below bet %.2f", ErrIllegalDoubleDown, budget, hand.Bet).Error()), nil
		}
	case Split:
		switch {
		case !hand.CanSplit():
			return rewrite(d, Hit, fmt.Errorf("%w: not a pair", ErrIllegalSplit).Error()), nil
		case hand.AceSplit:
			return rewrite(d, Hit, fmt.Errorf("%w: split aces cannot be resplit", ErrIllegalSplit).Error()), nil
		case view.HandCount >= view.MaxHands:
			return rewrite(d, Hit, fmt.Errorf("%w: hand limit %d reached", ErrIllegalSplit, view.MaxHands).Error()), nil
		case budget < hand.Bet:
			return rewrite(d, Hit, fmt.Errorf("%w: budget %.2f below bet %.2f", ErrIllegalSplit, budget, hand.Bet).Error()), nil
		}
	default:
		return Decision{}, fmt.Errorf("%w: %s (rule %q)", ErrInvalidDecision, d.Action, d.Rule)
	}
	return d, nil
}

func rewrite(d Decision, to Action, reason string) Decision {
	return Decision{
		Action: to,
		Rule:   fmt.Sprintf("%s -> %s (%s)", d.Rule, to, reason),
	}
}
