package strategy

import (
	"math"

	"github.com/lox/blackjacksim/internal/game"
)

// RuleBookParams tunes RuleBook
type RuleBookParams struct {
	BudgetFraction float64
	RoundTo        float64
}

// RuleBook stakes a share of its budget and plays a numbered rule table.
// Rules are checked in order R1 to R9; the first match wins.
type RuleBook struct {
	params RuleBookParams
}

// NewRuleBook creates a RuleBook strategy
func NewRuleBook(params RuleBookParams) *RuleBook {
	return &RuleBook{params: params}
}

func (r *RuleBook) Name() string { return string(KindRuleBook) }

// DetermineBet stakes BudgetFraction of the budget rounded up to a multiple
// of RoundTo, sitting out when that falls below the table minimum.
func (r *RuleBook) DetermineBet(view game.TableView, budget float64) (float64, bool) {
	bet := math.Ceil(budget*r.params.BudgetFraction/r.params.RoundTo) * r.params.RoundTo
	if bet < view.MinimumBet {
		return 0, false
	}
	return bet, true
}

func (r *RuleBook) Decide(h *game.Hand, view game.TableView, budget float64) game.Decision {
	value := h.Value()
	up := upcardValue(view)

	switch {
	case value == 9 && up >= 3 && up <= 6 && budget >= h.Bet:
		return decide(game.DoubleDown, "R1")
	case value <= 11:
		return decide(game.Hit, "R2")
	case value >= 17:
		return decide(game.Stand, "R3")
	case value == 12:
		if up >= 4 && up <= 6 {
			return decide(game.Stand, "R4")
		}
		return decide(game.Hit, "R5")
	case h.CanSplit() && budget >= h.Bet:
		switch pair := h.Cards[0].BlackjackValue(); {
		case pair == 11 || pair == 8 || pair == 9:
			return decide(game.Split, "R6")
		case up == 2 || up == 3 || (up >= 7 && up <= 10):
			return decide(game.Stand, "R7")
		default:
			return decide(game.Split, "R8")
		}
	}
	return decide(game.Stand, "R9")
}
