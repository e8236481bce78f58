package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDecision(t *testing.T) {
	t.Parallel()

	view := TableView{MinimumBet: 10, HandCount: 1, MaxHands: 4}
	atCap := view
	atCap.HandCount = 4

	closed := handOf("9s7h")
	closed.CanHit = false

	splitAces := handOf("AsAh")
	splitAces.AceSplit = true

	tests := []struct {
		name     string
		action   Action
		hand     *Hand
		view     TableView
		budget   float64
		want     Action
		reasonOf error // nil means the decision passes through
	}{
		{"hit on open hand", Hit, handOf("9s2h"), view, 100, Hit, nil},
		{"hit on closed hand", Hit, closed, view, 100, Stand, nil},
		{"stand", Stand, handOf("Ts7h"), view, 0, Stand, nil},
		{"legal double", DoubleDown, handOf("6s5h"), view, 10, DoubleDown, nil},
		{"double on three cards", DoubleDown, handOf("2s3h6d"), view, 100, Hit, ErrIllegalDoubleDown},
		{"double without funds", DoubleDown, handOf("6s5h"), view, 9, Hit, ErrIllegalDoubleDown},
		{"legal split", Split, handOf("8s8h"), view, 10, Split, nil},
		{"split value pair", Split, handOf("KsQh"), view, 100, Split, nil},
		{"split non pair", Split, handOf("Ks9h"), view, 100, Hit, ErrIllegalSplit},
		{"split at hand cap", Split, handOf("8s8h"), atCap, 100, Hit, ErrIllegalSplit},
		{"resplit aces", Split, splitAces, view, 100, Hit, ErrIllegalSplit},
		{"split without funds", Split, handOf("8s8h"), view, 5, Hit, ErrIllegalSplit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDecision(Decision{Action: tt.action, Rule: "R"}, tt.hand, tt.view, tt.budget)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Action)

			if tt.reasonOf == nil && tt.want == tt.action {
				assert.Equal(t, "R", got.Rule)
				return
			}
			assert.Contains(t, got.Rule, "R -> "+tt.want.String())
			if tt.reasonOf != nil {
				assert.Contains(t, got.Rule, tt.reasonOf.Error())
			}
		})
	}
}

func TestNormalizeDecisionRejectsUnknownAction(t *testing.T) {
	t.Parallel()

	for _, a := range []Action{0, Split + 1, 42} {
		_, err := NormalizeDecision(Decision{Action: a}, handOf("9s7h"), TableView{MaxHands: 4}, 100)
		assert.ErrorIs(t, err, ErrInvalidDecision, "action %d", int(a))
	}
}

func TestActionText(t *testing.T) {
	t.Parallel()

	for _, a := range []Action{Hit, Stand, DoubleDown, Split} {
		text, err := a.MarshalText()
		require.NoError(t, err)

		var back Action
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, a, back)
	}

	_, err := Action(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidDecision)

	_, err = ParseAction("surrender")
	assert.ErrorIs(t, err, ErrInvalidDecision)

	a, err := ParseAction("double")
	require.NoError(t, err)
	assert.Equal(t, DoubleDown, a)
}
