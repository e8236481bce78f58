package strategy

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(cards string, bet float64) *game.Hand {
	h := game.NewHand(bet)
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return h
}

func viewAgainst(upcard string) game.TableView {
	return game.TableView{
		MinimumBet:   10,
		DealerUpcard: deck.MustParseCards(upcard)[0],
		HandCount:    1,
		MaxHands:     4,
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKind(" Counting ")
	require.NoError(t, err)
	assert.Equal(t, KindCounting, got)

	_, err = ParseKind("martingale")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNew(t *testing.T) {
	t.Parallel()

	logger := log.NewWithOptions(io.Discard, log.Options{})
	for _, k := range Kinds {
		s, err := New(k, DefaultParams(), logger)
		require.NoError(t, err)
		assert.Equal(t, string(k), s.Name())
	}

	_, err := New("martingale", DefaultParams(), nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"aggressive fraction", func(p *Params) { p.Aggressive.MaxBetFraction = 0 }},
		{"aggressive fraction above one", func(p *Params) { p.Aggressive.MaxBetFraction = 1.5 }},
		{"conservative stand on", func(p *Params) { p.Conservative.StandOn = 22 }},
		{"conservative reserve", func(p *Params) { p.Conservative.ReserveMultiple = -1 }},
		{"counting base", func(p *Params) { p.Counting.Base = KindCounting }},
		{"counting unknown base", func(p *Params) { p.Counting.Base = "oracle" }},
		{"counting multiplier", func(p *Params) { p.Counting.Multiplier = 0.5 }},
		{"rulebook fraction", func(p *Params) { p.RuleBook.BudgetFraction = 0 }},
		{"rulebook round", func(p *Params) { p.RuleBook.RoundTo = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())

			_, err := New(KindBasic, p, nil)
			assert.Error(t, err)
		})
	}
}

func TestBasicDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards  string
		upcard string
		budget float64
		want   game.Action
	}{
		{"8s8h", "6c", 100, game.Split},
		{"AsAh", "Tc", 100, game.Split},
		{"8s8h", "6c", 5, game.Stand}, // hard 16 vs 6
		{"9s9h", "6c", 100, game.Stand},
		{"As6h", "Tc", 100, game.Hit},
		{"As5h", "Tc", 100, game.Hit},
		{"As7h", "Tc", 100, game.Stand},
		{"As7h2c", "Tc", 100, game.Stand}, // soft 20
		{"As8h", "Tc", 100, game.Stand},
		{"6s5h", "Tc", 100, game.Hit},
		{"Ts2h", "4c", 100, game.Stand},
		{"Ts2h", "3c", 100, game.Hit},
		{"Ts2h", "7c", 100, game.Hit},
		{"Ts3h", "6c", 100, game.Stand},
		{"Ts6h", "7c", 100, game.Hit},
		{"Ts6h", "Ac", 100, game.Hit},
		{"Ts7h", "Ac", 100, game.Stand},
	}

	b := NewBasic()
	for _, tt := range tests {
		t.Run(tt.cards+" vs "+tt.upcard, func(t *testing.T) {
			d := b.Decide(hand(tt.cards, 10), viewAgainst(tt.upcard), tt.budget)
			assert.Equal(t, tt.want, d.Action, d.Rule)
			assert.NotEmpty(t, d.Rule)
		})
	}

	bet, ok := b.DetermineBet(viewAgainst("2c"), 1000)
	assert.True(t, ok)
	assert.Equal(t, 10.0, bet)
}

func TestAggressiveBet(t *testing.T) {
	t.Parallel()

	a := NewAggressive(DefaultParams().Aggressive)
	view := viewAgainst("2c")

	tests := []struct {
		streak int
		budget float64
		want   float64
	}{
		{0, 1000, 10},
		{1, 1000, 20},
		{2, 1000, 40},
		{3, 1000, 80},
		{3, 200, 50}, // capped at a quarter of the budget
		{5, 30, 10},  // cap below the minimum falls back to the minimum
		{4, 250, 62}, // floor of 62.5
	}

	for _, tt := range tests {
		view.WinStreak = tt.streak
		bet, ok := a.DetermineBet(view, tt.budget)
		assert.True(t, ok)
		assert.Equal(t, tt.want, bet, "streak %d budget %v", tt.streak, tt.budget)
	}
}

func TestAggressiveDecide(t *testing.T) {
	t.Parallel()

	atCap := viewAgainst("5c")
	atCap.HandCount = 4

	tests := []struct {
		name   string
		cards  string
		view   game.TableView
		budget float64
		want   game.Action
	}{
		{"aces", "AsAh", viewAgainst("Tc"), 100, game.Split},
		{"eights", "8s8h", viewAgainst("Tc"), 100, game.Split},
		{"low pair vs weak", "3s3h", viewAgainst("5c"), 100, game.Split},
		{"low pair vs strong", "3s3h", viewAgainst("9c"), 100, game.Hit},
		{"tens", "TsKh", viewAgainst("5c"), 100, game.Stand},
		{"no funds", "8s8h", viewAgainst("5c"), 5, game.Hit},
		{"hand cap", "8s8h", atCap, 100, game.Hit},
		{"hit 16", "Ts6h", viewAgainst("2c"), 100, game.Hit},
		{"hit soft 17", "As6h", viewAgainst("2c"), 100, game.Hit},
		{"stand hard 17", "Ts7h", viewAgainst("2c"), 100, game.Stand},
		{"stand soft 18", "As7h", viewAgainst("2c"), 100, game.Stand},
	}

	a := NewAggressive(DefaultParams().Aggressive)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := a.Decide(hand(tt.cards, 10), tt.view, tt.budget)
			assert.Equal(t, tt.want, d.Action, d.Rule)
		})
	}
}

func TestConservative(t *testing.T) {
	t.Parallel()

	c := NewConservative(DefaultParams().Conservative)
	view := viewAgainst("Tc")

	_, ok := c.DetermineBet(view, 199)
	assert.False(t, ok, "below twenty minimums the strategy sits out")

	bet, ok := c.DetermineBet(view, 200)
	assert.True(t, ok)
	assert.Equal(t, 10.0, bet)

	assert.Equal(t, game.Hit, c.Decide(hand("6s5h", 10), view, 1000).Action)
	assert.Equal(t, game.Stand, c.Decide(hand("Ts2h", 10), view, 1000).Action)
	assert.Equal(t, game.Stand, c.Decide(hand("8s8h", 10), view, 1000).Action, "never splits")
}

func TestCounting(t *testing.T) {
	t.Parallel()

	s, err := New(KindCounting, DefaultParams(), nil)
	require.NoError(t, err)

	view := viewAgainst("6c")
	view.TrueCount = 2
	bet, ok := s.DetermineBet(view, 1000)
	assert.True(t, ok)
	assert.Equal(t, 10.0, bet, "a true count of exactly 2 is not enough")

	view.TrueCount = 2.2
	bet, ok = s.DetermineBet(view, 1000)
	assert.True(t, ok)
	assert.Equal(t, 20.0, bet)

	d := s.Decide(hand("8s8h", 10), view, 1000)
	assert.Equal(t, game.Split, d.Action)
	assert.Contains(t, d.Rule, "basic")

	p := DefaultParams()
	p.Counting.Base = KindConservative
	s, err = New(KindCounting, p, nil)
	require.NoError(t, err)
	assert.Equal(t, game.Stand, s.Decide(hand("8s8h", 10), view, 1000).Action)
}

func TestRuleBookBet(t *testing.T) {
	t.Parallel()

	r := NewRuleBook(DefaultParams().RuleBook)
	view := viewAgainst("2c")

	tests := []struct {
		budget float64
		want   float64
		ok     bool
	}{
		{300, 20, true}, // 15 rounds up to 20
		{1000, 50, true},
		{1010, 60, true},
		{100, 10, true},
		{0, 0, false},
	}

	for _, tt := range tests {
		bet, ok := r.DetermineBet(view, tt.budget)
		assert.Equal(t, tt.ok, ok, "budget %v", tt.budget)
		assert.Equal(t, tt.want, bet, "budget %v", tt.budget)
	}

	_, ok := NewRuleBook(RuleBookParams{BudgetFraction: 0.05, RoundTo: 5}).DetermineBet(view, 100)
	assert.False(t, ok, "5 is below the minimum")
}

func TestRuleBookRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards  string
		upcard string
		budget float64
		rule   string
		want   game.Action
	}{
		{"5s4h", "5c", 100, "R1", game.DoubleDown},
		{"5s4h", "5c", 5, "R2", game.Hit},
		{"5s4h", "7c", 100, "R2", game.Hit},
		{"6s5h", "5c", 100, "R2", game.Hit},
		{"Ts7h", "Ac", 100, "R3", game.Stand},
		{"Ts2h", "5c", 100, "R4", game.Stand},
		{"Ts2h", "9c", 100, "R5", game.Hit},
		{"AsAh", "9c", 100, "R5", game.Hit}, // a pair of aces totals 12
		{"8s8h", "Tc", 100, "R6", game.Split},
		{"7s7h", "8c", 100, "R7", game.Stand},
		{"7s7h", "5c", 100, "R8", game.Split},
		{"7s7h", "Ac", 100, "R8", game.Split},
		{"Ts5h", "5c", 100, "R9", game.Stand},
		{"8s8h", "Tc", 5, "R9", game.Stand},
	}

	r := NewRuleBook(DefaultParams().RuleBook)
	for _, tt := range tests {
		t.Run(tt.cards+" vs "+tt.upcard, func(t *testing.T) {
			d := r.Decide(hand(tt.cards, 10), viewAgainst(tt.upcard), tt.budget)
			assert.Equal(t, tt.rule, d.Rule)
			assert.Equal(t, tt.want, d.Action)
		})
	}
}
