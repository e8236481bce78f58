package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/stretchr/testify/require"
)

// scriptedStrategy bets a fixed amount and replays a list of decisions,
// standing once the script is exhausted. A zero bet sits out.
type scriptedStrategy struct {
	bet     float64
	actions []Action
	index   int
	views   []TableView
}

func script(bet float64, actions ...Action) *scriptedStrategy {
	return &scriptedStrategy{bet: bet, actions: actions}
}

func (s *scriptedStrategy) Name() string { return "scripted" }

func (s *scriptedStrategy) DetermineBet(_ TableView, _ float64) (float64, bool) {
	return s.bet, s.bet > 0
}

func (s *scriptedStrategy) Decide(_ *Hand, view TableView, _ float64) Decision {
	s.views = append(s.views, view)
	if s.index >= len(s.actions) {
		return Decision{Action: Stand, Rule: "script exhausted"}
	}
	a := s.actions[s.index]
	s.index++
	return Decision{Action: a, Rule: "scripted"}
}

// thresholdStrategy bets the minimum and hits below a fixed total
type thresholdStrategy struct {
	standOn int
}

func (s thresholdStrategy) Name() string { return "threshold" }

func (s thresholdStrategy) DetermineBet(view TableView, _ float64) (float64, bool) {
	return view.MinimumBet, true
}

func (s thresholdStrategy) Decide(h *Hand, _ TableView, _ float64) Decision {
	if h.Value() < s.standOn {
		return Decision{Action: Hit, Rule: "below threshold"}
	}
	return Decision{Action: Stand, Rule: "at threshold"}
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel})
}

// stackedConfig keeps a stacked shoe in play until its last card
func stackedConfig() Config {
	cfg := DefaultConfig()
	cfg.PenetrationMin = 0.01
	cfg.PenetrationMax = 0.01
	return cfg
}

// newStackedGame seats players at a table whose shoe deals cards in order
func newStackedGame(t *testing.T, cfg Config, cards string, players ...*Player) *Game {
	t.Helper()
	g, err := NewGame(players, cfg,
		WithShoe(deck.NewStackedShoe(deck.MustParseCards(cards)...)),
		WithRNG(randutil.New(1)),
		WithLogger(testLogger()))
	require.NoError(t, err)
	return g
}

func handOf(cards string) *Hand {
	h := NewHand(10)
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return h
}
