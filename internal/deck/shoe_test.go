package deck

import (
	"errors"
	"testing"

	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoe_Composition(t *testing.T) {
	t.Parallel()

	shoe := NewShoe(6, randutil.New(1))
	require.Equal(t, 312, shoe.CardsRemaining())
	assert.Equal(t, 312, shoe.InitialCards())
	assert.Equal(t, 6, shoe.Decks())
	// 4 suits × (2..9 + 4×10 + 11) = 4 × 95 = 380 per deck
	assert.Equal(t, 6*380, shoe.InitialValue())
	assert.Equal(t, shoe.InitialValue(), shoe.RemainingValue())
	assert.Zero(t, shoe.RunningCount())

	counts := make(map[Card]int)
	for !shoe.IsEmpty() {
		c, err := shoe.DealTop()
		require.NoError(t, err)
		counts[c]++
	}
	assert.Len(t, counts, 52)
	for c, n := range counts {
		assert.Equal(t, 6, n, "card %s", c)
	}
}

func TestNewShoe_MinimumOneDeck(t *testing.T) {
	t.Parallel()

	shoe := NewShoe(0, randutil.New(1))
	assert.Equal(t, 52, shoe.CardsRemaining())
	assert.Equal(t, 1, shoe.Decks())
}

func TestShoe_Deterministic(t *testing.T) {
	t.Parallel()

	a := NewShoe(2, randutil.New(42))
	b := NewShoe(2, randutil.New(42))
	for range a.CardsRemaining() {
		ca, err := a.DealTop()
		require.NoError(t, err)
		cb, err := b.DealTop()
		require.NoError(t, err)
		require.Equal(t, ca, cb)
	}
}

func TestShoe_ExhaustionAndRunningCount(t *testing.T) {
	t.Parallel()

	for _, decks := range []int{1, 6} {
		shoe := NewShoe(decks, randutil.New(int64(decks)))
		expected := 0
		for i := 0; i < decks*52; i++ {
			c, err := shoe.DealTop()
			require.NoError(t, err)
			expected += c.HiLo()
			require.Equal(t, expected, shoe.RunningCount(), "after deal %d", i+1)
		}

		assert.True(t, shoe.IsEmpty())
		assert.Zero(t, shoe.RemainingValue())
		// A complete shoe is balanced under Hi-Lo.
		assert.Zero(t, shoe.RunningCount())

		_, err := shoe.DealTop()
		assert.True(t, errors.Is(err, ErrEmptyShoe))
		assert.Zero(t, shoe.RunningCount(), "failed deal must not touch the count")
	}
}

func TestStackedShoe_DealOrder(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("AsKd5c")
	shoe := NewStackedShoe(cards...)
	require.Equal(t, 3, shoe.InitialCards())
	assert.Equal(t, 11+10+5, shoe.InitialValue())

	for i, want := range cards {
		got, err := shoe.DealTop()
		require.NoError(t, err)
		assert.Equal(t, want, got, "deal %d", i)
	}
	// A, K are -1 each, 5 is +1
	assert.Equal(t, -1, shoe.RunningCount())
}

func TestShoe_TrueCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards     string
		trueCount float64
		floor     int
	}{
		{"2c3c4c5c6c2d", 6.0 / 5, 1},
		{"AsKsQsJsTs", -1, -1},
		{"AsKs", -2.0 / 5, -1},
		{"7c8c9c", 0, 0},
	}
	for _, tt := range tests {
		shoe := NewStackedShoe(MustParseCards(tt.cards)...)
		for !shoe.IsEmpty() {
			_, err := shoe.DealTop()
			require.NoError(t, err)
		}
		assert.InDelta(t, tt.trueCount, shoe.TrueCount(), 1e-9, tt.cards)
		assert.Equal(t, tt.floor, shoe.TrueCountFloor(), tt.cards)
	}
}
