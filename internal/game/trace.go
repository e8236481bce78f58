package game

import "github.com/lox/blackjacksim/internal/deck"

// RoundTrace is the snapshot taken after every round. Once appended to a
// game's trace it is never modified.
type RoundTrace struct {
	Round   int           `json:"round" toml:"round"`
	Players []PlayerTrace `json:"players" toml:"players"`
	Dealer  DealerTrace   `json:"dealer" toml:"dealer"`
	Shoe    ShoeTrace     `json:"shoe" toml:"shoe"`
}

// PlayerTrace records one player's round
type PlayerTrace struct {
	Name      string      `json:"name" toml:"name"`
	Strategy  string      `json:"strategy" toml:"strategy"`
	Budget    float64     `json:"budget" toml:"budget"` // after settlement
	Bet       float64     `json:"bet" toml:"bet"`       // total staked, doubles and splits included
	SatOut    bool        `json:"sat_out" toml:"sat_out"`
	Net       float64     `json:"net" toml:"net"`
	WinStreak int         `json:"win_streak" toml:"win_streak"`
	Hands     []HandTrace `json:"hands" toml:"hands"`
}

// HandTrace records one settled hand
type HandTrace struct {
	Cards      []deck.Card      `json:"cards" toml:"cards"`
	Decisions  []DecisionRecord `json:"decisions" toml:"decisions"`
	Bet        float64          `json:"bet" toml:"bet"`
	Value      int              `json:"value" toml:"value"`
	Soft       bool             `json:"soft" toml:"soft"`
	Blackjack  bool             `json:"blackjack" toml:"blackjack"`
	DoubleDown bool             `json:"double_down" toml:"double_down"`
	AceSplit   bool             `json:"ace_split" toml:"ace_split"`
	Bust       bool             `json:"bust" toml:"bust"`
	Result     Result           `json:"result" toml:"result"`
	Warnings   []string         `json:"warnings,omitempty" toml:"warnings,omitempty"`
}

// DealerTrace records the dealer's final hand
type DealerTrace struct {
	Cards     []deck.Card `json:"cards" toml:"cards"`
	Value     int         `json:"value" toml:"value"`
	Bust      bool        `json:"bust" toml:"bust"`
	Blackjack bool        `json:"blackjack" toml:"blackjack"`
}

// ShoeTrace records the shoe after the round. TrueCount is the running
// count divided by five, floored.
type ShoeTrace struct {
	CardsRemaining int  `json:"cards_remaining" toml:"cards_remaining"`
	TotalValue     int  `json:"total_value" toml:"total_value"`
	RunningCount   int  `json:"running_count" toml:"running_count"`
	TrueCount      int  `json:"true_count" toml:"true_count"`
	Reshuffled     bool `json:"reshuffled" toml:"reshuffled"`
}

func traceHand(h *Hand) HandTrace {
	c := h.Clone()
	return HandTrace{
		Cards:      c.Cards,
		Decisions:  c.Decisions,
		Bet:        c.Bet,
		Value:      c.Value(),
		Soft:       c.IsSoft(),
		Blackjack:  c.IsBlackjack(),
		DoubleDown: c.DoubledDown,
		AceSplit:   c.AceSplit,
		Bust:       c.IsBust(),
		Result:     c.Result,
		Warnings:   c.Warnings,
	}
}

// captureTrace snapshots the finished round. All slices are copies.
func (g *Game) captureTrace() RoundTrace {
	rt := RoundTrace{
		Round:   g.round,
		Players: make([]PlayerTrace, 0, len(g.players)),
		Shoe: ShoeTrace{
			CardsRemaining: g.shoe.CardsRemaining(),
			TotalValue:     g.shoe.RemainingValue(),
			RunningCount:   g.shoe.RunningCount(),
			TrueCount:      g.shoe.TrueCountFloor(),
			Reshuffled:     g.reshuffled,
		},
	}

	for _, p := range g.players {
		pt := PlayerTrace{
			Name:      p.Name,
			Strategy:  p.Strategy.Name(),
			Budget:    p.Budget,
			Bet:       p.Staked(),
			SatOut:    p.SatOut(),
			Net:       p.RoundNet(),
			WinStreak: p.WinStreak,
			Hands:     make([]HandTrace, 0, len(p.Hands)),
		}
		for _, h := range p.Hands {
			pt.Hands = append(pt.Hands, traceHand(h))
		}
		rt.Players = append(rt.Players, pt)
	}

	if len(g.dealer.Hand.Cards) > 0 {
		d := g.dealer.Hand.Clone()
		rt.Dealer = DealerTrace{
			Cards:     d.Cards,
			Value:     d.Value(),
			Bust:      d.IsBust(),
			Blackjack: d.IsBlackjack(),
		}
	}
	return rt
}
