package strategy

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/game"
)

// CountingParams tunes Counting
type CountingParams struct {
	// Base is the strategy that plays the hands
	Base       Kind
	Threshold  float64
	Multiplier float64
}

// Counting raises its bet while the true count favours the player and
// leaves every play decision to a base strategy.
type Counting struct {
	base   game.Strategy
	params CountingParams
	logger *log.Logger
}

// NewCounting wraps base with count-driven bet sizing
func NewCounting(base game.Strategy, params CountingParams, logger *log.Logger) *Counting {
	return &Counting{
		base:   base,
		params: params,
		logger: logger.WithPrefix("counting"),
	}
}

func (c *Counting) Name() string { return string(KindCounting) }

func (c *Counting) DetermineBet(view game.TableView, _ float64) (float64, bool) {
	if view.TrueCount > c.params.Threshold {
		bet := view.MinimumBet * c.params.Multiplier
		c.logger.Debug("Raising bet on count",
			"round", view.Round,
			"true_count", view.TrueCount,
			"bet", bet)
		return bet, true
	}
	return view.MinimumBet, true
}

func (c *Counting) Decide(h *game.Hand, view game.TableView, budget float64) game.Decision {
	return c.base.Decide(h, view, budget)
}
