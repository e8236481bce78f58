package strategy

import "github.com/lox/blackjacksim/internal/game"

// ConservativeParams tunes Conservative
type ConservativeParams struct {
	// ReserveMultiple is the budget, in table minimums, below which the
	// strategy stops betting
	ReserveMultiple float64
	StandOn         int
}

// Conservative bets the minimum while its reserve lasts and never splits
type Conservative struct {
	params ConservativeParams
}

// NewConservative creates a Conservative strategy
func NewConservative(params ConservativeParams) *Conservative {
	return &Conservative{params: params}
}

func (c *Conservative) Name() string { return string(KindConservative) }

func (c *Conservative) DetermineBet(view game.TableView, budget float64) (float64, bool) {
	if budget < view.MinimumBet*c.params.ReserveMultiple {
		return 0, false
	}
	return view.MinimumBet, true
}

func (c *Conservative) Decide(h *game.Hand, _ game.TableView, _ float64) game.Decision {
	value := h.Value()
	if value >= c.params.StandOn {
		return decide(game.Stand, "conservative: stand %d", value)
	}
	return decide(game.Hit, "conservative: hit %d", value)
}
