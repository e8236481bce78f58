package strategy

import "github.com/lox/blackjacksim/internal/game"

// Basic bets the table minimum and plays a simplified basic strategy
type Basic struct{}

// NewBasic creates a Basic strategy
func NewBasic() *Basic {
	return &Basic{}
}

func (b *Basic) Name() string { return string(KindBasic) }

func (b *Basic) DetermineBet(view game.TableView, _ float64) (float64, bool) {
	return view.MinimumBet, true
}

func (b *Basic) Decide(h *game.Hand, view game.TableView, budget float64) game.Decision {
	value := h.Value()
	up := upcardValue(view)

	if h.CanSplit() && budget >= h.Bet {
		if v := h.Cards[0].BlackjackValue(); v == 8 || v == 11 {
			return decide(game.Split, "basic: split pair of %s", h.Cards[0].Rank)
		}
	}

	if h.IsSoft() {
		if value <= 17 {
			return decide(game.Hit, "basic: hit soft %d", value)
		}
		return decide(game.Stand, "basic: stand soft %d", value)
	}

	switch {
	case value <= 11:
		return decide(game.Hit, "basic: hit %d", value)
	case value == 12:
		if up >= 4 && up <= 6 {
			return decide(game.Stand, "basic: stand 12 vs %d", up)
		}
		return decide(game.Hit, "basic: hit 12 vs %d", up)
	case value <= 16:
		if up <= 6 {
			return decide(game.Stand, "basic: stand %d vs %d", value, up)
		}
		return decide(game.Hit, "basic: hit %d vs %d", value, up)
	default:
		return decide(game.Stand, "basic: stand %d", value)
	}
}
