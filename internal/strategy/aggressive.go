package strategy

import (
	"math"

	"github.com/lox/blackjacksim/internal/game"
)

// AggressiveParams tunes Aggressive
type AggressiveParams struct {
	// MaxBetFraction caps a progressive bet as a share of the budget
	MaxBetFraction float64
}

// Aggressive doubles its bet after every winning round and splits freely
type Aggressive struct {
	params AggressiveParams
}

// NewAggressive creates an Aggressive strategy
func NewAggressive(params AggressiveParams) *Aggressive {
	return &Aggressive{params: params}
}

func (a *Aggressive) Name() string { return string(KindAggressive) }

// DetermineBet returns minimum×2^streak, capped at MaxBetFraction of the
// budget and never below the minimum.
func (a *Aggressive) DetermineBet(view game.TableView, budget float64) (float64, bool) {
	if view.WinStreak <= 0 {
		return view.MinimumBet, true
	}
	progressive := view.MinimumBet * math.Pow(2, float64(view.WinStreak))
	limit := math.Floor(budget * a.params.MaxBetFraction)
	return math.Max(view.MinimumBet, math.Min(progressive, limit)), true
}

func (a *Aggressive) Decide(h *game.Hand, view game.TableView, budget float64) game.Decision {
	value := h.Value()
	up := upcardValue(view)

	if canAffordSplit(h, view, budget) {
		switch pair := h.Cards[0].BlackjackValue(); {
		case pair == 8 || pair == 11:
			return decide(game.Split, "aggressive: split pair of %s", h.Cards[0].Rank)
		case pair <= 7 && up <= 6:
			return decide(game.Split, "aggressive: split low pair of %s vs %d", h.Cards[0].Rank, up)
		}
	}

	switch {
	case value <= 16:
		return decide(game.Hit, "aggressive: hit %d", value)
	case value == 17 && h.IsSoft():
		return decide(game.Hit, "aggressive: hit soft 17")
	default:
		return decide(game.Stand, "aggressive: stand %d", value)
	}
}
