package display

import (
	"bytes"
	"testing"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRound() game.RoundTrace {
	return game.RoundTrace{
		Round: 7,
		Players: []game.PlayerTrace{
			{
				Name: "Alice", Strategy: "basic", Budget: 120, Net: 20, Bet: 20,
				Hands: []game.HandTrace{
					{
						Cards:     deck.MustParseCards("8s3h9d"),
						Decisions: []game.DecisionRecord{{Action: game.DoubleDown, Rule: "basic: double 11"}},
						Bet:       20, Value: 20, DoubleDown: true, Result: game.ResultWin,
					},
				},
			},
			{
				Name: "Bob", Strategy: "aggressive", Budget: 80, Net: -20, Bet: 20,
				Hands: []game.HandTrace{
					{Cards: deck.MustParseCards("8c2d"), Bet: 10, Value: 10, Result: game.ResultLose},
					{
						Cards: deck.MustParseCards("8hKsQd"), Bet: 10, Value: 28, Bust: true, Result: game.ResultLose,
						Warnings: []string{"forced stand after 5 decisions"},
					},
				},
			},
			{Name: "Carol", Strategy: "conservative", Budget: 5, SatOut: true, Hands: []game.HandTrace{}},
		},
		Dealer: game.DealerTrace{Cards: deck.MustParseCards("Tc9h"), Value: 19},
		Shoe:   game.ShoeTrace{CardsRemaining: 290, RunningCount: 3, TrueCount: 0, Reshuffled: true},
	}
}

func TestRenderRound(t *testing.T) {
	t.Parallel()

	p := NewPrinter(&bytes.Buffer{}, false)
	out := p.RenderRound(sampleRound())

	for _, want := range []string{
		"Round 7",
		"290 cards left, running count +3, true count +0, new shoe",
		"Dealer",
		"[T♣ 9♥]",
		"[8♠ 3♥ 9♦]",
		"double down",
		"win",
		"28 bust",
		"forced stand after 5 decisions",
		"net -20.00, budget 80.00",
		"sat out, budget 5.00",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "no escape sequences without color")
}

func TestRenderRound_NoDealerCards(t *testing.T) {
	t.Parallel()

	rt := game.RoundTrace{
		Round:   1,
		Players: []game.PlayerTrace{{Name: "Alice", Budget: 5, SatOut: true, Hands: []game.HandTrace{}}},
	}
	out := NewPrinter(&bytes.Buffer{}, false).RenderRound(rt)
	assert.NotContains(t, out, "Dealer")
	assert.Contains(t, out, "sat out")
}

func TestRenderCards(t *testing.T) {
	t.Parallel()

	p := NewPrinter(&bytes.Buffer{}, false)
	assert.Equal(t, "[A♠ K♦]", p.RenderCards(deck.MustParseCards("AsKd")))
	assert.Equal(t, "[]", p.RenderCards(nil))
}

func TestPrinter_Writes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	require.NoError(t, p.Header("Blackjack"))
	require.NoError(t, p.Round(sampleRound()))

	assert.Contains(t, buf.String(), "Blackjack")
	assert.Contains(t, buf.String(), "Round 7")
}

func TestTotal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "blackjack", total(21, false, true))
	assert.Equal(t, "24 bust", total(24, true, false))
	assert.Equal(t, "17", total(17, false, false))
}
