// Package strategy provides the built-in betting and playing policies. Each
// implements game.Strategy and is selected by Kind at construction time.
package strategy

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/game"
)

// ErrUnknownKind is returned for strategy names outside the built-in set
var ErrUnknownKind = errors.New("unknown strategy")

// Kind names a built-in strategy
type Kind string

const (
	KindBasic        Kind = "basic"
	KindAggressive   Kind = "aggressive"
	KindConservative Kind = "conservative"
	KindCounting     Kind = "counting"
	KindRuleBook     Kind = "rulebook"
)

// Kinds lists every built-in strategy
var Kinds = []Kind{KindBasic, KindAggressive, KindConservative, KindCounting, KindRuleBook}

// ParseKind accepts a strategy name case-insensitively
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownKind, s, kindList())
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Params carries the tunables of every variant. Only the block matching the
// constructed Kind is read.
type Params struct {
	Aggressive   AggressiveParams
	Conservative ConservativeParams
	Counting     CountingParams
	RuleBook     RuleBookParams
}

// DefaultParams returns the stock tunables
func DefaultParams() Params {
	return Params{
		Aggressive:   AggressiveParams{MaxBetFraction: 0.25},
		Conservative: ConservativeParams{ReserveMultiple: 20, StandOn: 12},
		Counting:     CountingParams{Base: KindBasic, Threshold: 2, Multiplier: 2},
		RuleBook:     RuleBookParams{BudgetFraction: 0.05, RoundTo: 10},
	}
}

// Validate rejects tunables the strategies cannot work with
func (p Params) Validate() error {
	if f := p.Aggressive.MaxBetFraction; f <= 0 || f > 1 {
		return fmt.Errorf("aggressive: max bet fraction must be in (0, 1], got %v", f)
	}
	if p.Conservative.ReserveMultiple < 0 {
		return fmt.Errorf("conservative: reserve multiple must not be negative, got %v", p.Conservative.ReserveMultiple)
	}
	if s := p.Conservative.StandOn; s < 2 || s > 21 {
		return fmt.Errorf("conservative: stand on must be between 2 and 21, got %d", s)
	}
	switch p.Counting.Base {
	case KindCounting:
		return fmt.Errorf("counting: base strategy cannot be counting")
	default:
		if _, err := ParseKind(string(p.Counting.Base)); err != nil {
			return fmt.Errorf("counting: base: %w", err)
		}
	}
	if p.Counting.Multiplier < 1 {
		return fmt.Errorf("counting: multiplier must be at least 1, got %v", p.Counting.Multiplier)
	}
	if f := p.RuleBook.BudgetFraction; f <= 0 || f > 1 {
		return fmt.Errorf("rulebook: budget fraction must be in (0, 1], got %v", f)
	}
	if p.RuleBook.RoundTo <= 0 {
		return fmt.Errorf("rulebook: round to must be positive, got %v", p.RuleBook.RoundTo)
	}
	return nil
}

// New builds the strategy for kind. A nil logger discards output.
func New(kind Kind, params Params, logger *log.Logger) (game.Strategy, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	switch kind {
	case KindBasic:
		return NewBasic(), nil
	case KindAggressive:
		return NewAggressive(params.Aggressive), nil
	case KindConservative:
		return NewConservative(params.Conservative), nil
	case KindCounting:
		base, err := New(params.Counting.Base, params, logger)
		if err != nil {
			return nil, err
		}
		return NewCounting(base, params.Counting, logger), nil
	case KindRuleBook:
		return NewRuleBook(params.RuleBook), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}

// upcardValue returns the dealer's visible card as a blackjack value
func upcardValue(view game.TableView) int {
	return view.DealerUpcard.BlackjackValue()
}

// canAffordSplit reports the eligibility checks every splitting strategy
// applies before asking for a split
func canAffordSplit(h *game.Hand, view game.TableView, budget float64) bool {
	return h.CanSplit() && budget >= h.Bet && view.HandCount < view.MaxHands
}

func decide(a game.Action, format string, args ...any) game.Decision {
	return game.Decision{Action: a, Rule: fmt.Sprintf(format, args...)}
}
