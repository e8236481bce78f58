package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/randutil"
)

// Settlement credits as multiples of the hand's bet. The stake has already
// been debited, so a push returns exactly the bet.
const (
	BlackjackPayout = 2.5
	WinPayout       = 2.0
	PushPayout      = 1.0
)

// Game runs rounds of blackjack for a fixed set of players. A Game is not
// safe for concurrent use; independent games may run in parallel.
type Game struct {
	cfg     Config
	players []*Player
	dealer  *Dealer
	shoe    *deck.Shoe
	rng     *rand.Rand
	logger  *log.Logger

	cutFraction    float64
	reshuffled     bool
	round          int
	over           bool
	trace          []RoundTrace
	initialBudgets map[string]float64
}

// Option configures a Game
type Option func(*Game)

// WithRNG sets the random source used for shuffles and cut cards
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithShoe replaces the opening shoe, typically with a stacked one
func WithShoe(shoe *deck.Shoe) Option {
	return func(g *Game) {
		g.shoe = shoe
	}
}

// NewGame seats players at a table governed by cfg
func NewGame(players []*Player, cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidConfig)
	}

	initial := make(map[string]float64, len(players))
	for _, p := range players {
		switch {
		case p == nil:
			return nil, fmt.Errorf("%w: nil player", ErrInvalidConfig)
		case p.Name == "":
			return nil, fmt.Errorf("%w: player without a name", ErrInvalidConfig)
		case p.Strategy == nil:
			return nil, fmt.Errorf("%w: player %s has no strategy", ErrInvalidConfig, p.Name)
		case p.Budget < 0:
			return nil, fmt.Errorf("%w: player %s has negative budget", ErrInvalidConfig, p.Name)
		}
		if _, dup := initial[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfig, p.Name)
		}
		initial[p.Name] = p.Budget
	}

	g := &Game{
		cfg:            cfg,
		players:        players,
		dealer:         NewDealer(),
		logger:         log.New(io.Discard),
		initialBudgets: initial,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.WithPrefix("engine")

	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.shoe == nil {
		g.shoe = deck.NewShoe(cfg.Decks, g.rng)
	}
	g.cutFraction = g.drawCut()

	return g, nil
}

func (g *Game) drawCut() float64 {
	return randutil.Uniform(g.rng, g.cfg.PenetrationMin, g.cfg.PenetrationMax)
}

// RunRound plays one complete round and appends its trace. When no player
// bets the round is still traced and the game is over. A fatal error also
// ends the game; ErrGameOver is returned for calls after that.
func (g *Game) RunRound() error {
	if g.over {
		return ErrGameOver
	}
	g.round++
	g.logger.Debug("Starting round", "round", g.round)

	if err := g.playRound(); err != nil {
		g.over = true
		return fmt.Errorf("round %d: %w", g.round, err)
	}

	g.trace = append(g.trace, g.captureTrace())
	return nil
}

func (g *Game) playRound() error {
	g.reset()
	g.checkShoe()

	bettors, err := g.placeBets()
	if err != nil {
		return err
	}
	if bettors == 0 {
		g.logger.Info("No player placed a bet, game over", "round", g.round)
		g.over = true
		return nil
	}

	if err := g.dealer.DealInitial(g.players, g.shoe); err != nil {
		return fmt.Errorf("initial deal: %w", err)
	}
	if err := g.playTurns(); err != nil {
		return err
	}
	if err := g.dealer.Play(g.shoe, g.cfg.HitSoft17); err != nil {
		return fmt.Errorf("dealer turn: %w", err)
	}
	g.settle()
	return nil
}

func (g *Game) reset() {
	g.reshuffled = false
	g.dealer.Reset()
	for _, p := range g.players {
		p.Reset()
	}
}

// checkShoe replaces the shoe wholesale once the reshuffle threshold is crossed
func (g *Game) checkShoe() {
	remaining := g.shoe.CardsRemaining()

	var threshold float64
	switch g.cfg.Reshuffle {
	case ReshuffleReserve:
		threshold = float64((len(g.players) + 1) * g.cfg.ReservePerSeat)
	default:
		threshold = g.cutFraction * float64(g.shoe.InitialCards())
	}
	if float64(remaining) >= threshold {
		return
	}

	g.shoe = deck.NewShoe(g.cfg.Decks, g.rng)
	g.cutFraction = g.drawCut()
	g.reshuffled = true
	g.logger.Debug("Replaced shoe",
		"round", g.round,
		"remaining", remaining,
		"threshold", threshold,
		"policy", g.cfg.Reshuffle)
}

func (g *Game) placeBets() (int, error) {
	bettors := 0
	for _, p := range g.players {
		if p.Budget <= g.cfg.MinimumBet {
			g.logger.Debug("Player cannot cover the minimum", "player", p.Name, "budget", p.Budget)
			continue
		}

		amount, ok := p.Strategy.DetermineBet(g.view(p), p.Budget)
		if !ok || amount <= 0 {
			g.logger.Debug("Player sits out", "player", p.Name, "round", g.round)
			continue
		}
		if amount > p.Budget {
			g.logger.Warn("Clamping bet to budget",
				"player", p.Name,
				"round", g.round,
				"bet", amount,
				"budget", p.Budget)
			amount = p.Budget
		}

		if err := p.PlaceBet(amount); err != nil {
			return bettors, fmt.Errorf("player %s bet: %w", p.Name, err)
		}
		bettors++
	}
	return bettors, nil
}

// view builds the snapshot strategies see for p
func (g *Game) view(p *Player) TableView {
	return TableView{
		Round:          g.round,
		MinimumBet:     g.cfg.MinimumBet,
		DealerUpcard:   g.dealer.Upcard(),
		RunningCount:   g.shoe.RunningCount(),
		TrueCount:      g.shoe.TrueCount(),
		CardsRemaining: g.shoe.CardsRemaining(),
		Decks:          g.shoe.Decks(),
		HandCount:      len(p.Hands),
		MaxHands:       g.cfg.MaxHands,
		WinStreak:      p.WinStreak,
	}
}

func (g *Game) playTurns() error {
	for _, p := range g.players {
		// p.Hands grows when a hand is split; the new hands are played in turn
		for i := 0; i < len(p.Hands); i++ {
			if err := g.playHand(p, p.Hands[i]); err != nil {
				return fmt.Errorf("player %s hand %d: %w", p.Name, i+1, err)
			}
		}
	}
	return nil
}

func (g *Game) playHand(p *Player, h *Hand) error {
	if h.IsBlackjack() && len(p.Hands) == 1 {
		h.CanHit = false
		return nil
	}

	decisions := 0
	for h.CanHit {
		if decisions >= g.cfg.MaxDecisions {
			h.CanHit = false
			warning := fmt.Sprintf("forced stand after %d decisions", decisions)
			h.Warnings = append(h.Warnings, warning)
			g.logger.Warn("Decision limit reached",
				"player", p.Name,
				"round", g.round,
				"hand", h.String(),
				"decisions", decisions)
			return nil
		}

		view := g.view(p)
		raw := p.Strategy.Decide(h.Clone(), view, p.Budget)
		d, err := NormalizeDecision(raw, h, view, p.Budget)
		if err != nil {
			return err
		}
		if d != raw {
			g.logger.Debug("Normalized decision", "player", p.Name, "from", raw.Action, "to", d.Action)
		}
		h.Decisions = append(h.Decisions, DecisionRecord{Action: d.Action, Rule: d.Rule})
		decisions++

		if err := g.apply(p, h, d.Action); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) apply(p *Player, h *Hand, action Action) error {
	switch action {
	case Hit:
		card, err := g.shoe.DealTop()
		if err != nil {
			return err
		}
		h.AddCard(card)
		if h.AceSplit {
			h.CanHit = false
		}
		if h.IsBust() {
			h.CanHit = false
			h.Result = ResultLose
		}
	case Stand:
		h.CanHit = false
	case DoubleDown:
		return p.DoubleDown(h, g.shoe)
	case Split:
		if _, err := p.Split(h, g.shoe, g.cfg.MaxHands); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDecision, action)
	}
	return nil
}

func (g *Game) settle() {
	dealer := g.dealer.Hand
	dealerValue := dealer.Value()
	dealerBust := dealer.IsBust()

	for _, p := range g.players {
		for _, h := range p.Hands {
			if h.Result == ResultLose || h.IsBust() {
				h.Result = ResultLose
				continue
			}

			value := h.Value()
			switch {
			case h.IsBlackjack():
				h.Result = ResultWin
				p.Credit(h.Bet * BlackjackPayout)
			case dealerBust || value > dealerValue:
				h.Result = ResultWin
				p.Credit(h.Bet * WinPayout)
			case value == dealerValue:
				h.Result = ResultPush
				p.Credit(h.Bet * PushPayout)
			default:
				h.Result = ResultLose
			}
		}

		if !p.SatOut() && p.RoundNet() > 0 {
			p.WinStreak++
		} else {
			p.WinStreak = 0
		}
	}
}

// RunSimulation plays up to rounds rounds, stopping early once the game is over
func (g *Game) RunSimulation(rounds int) (Summary, error) {
	for i := 0; i < rounds && !g.over; i++ {
		if err := g.RunRound(); err != nil {
			return g.Summary(), err
		}
	}
	return g.Summary(), nil
}

// Summary tallies the trace so far
func (g *Game) Summary() Summary {
	return Summarize(g.trace, g.initialBudgets)
}

// Trace returns the round traces recorded so far
func (g *Game) Trace() []RoundTrace {
	return append([]RoundTrace(nil), g.trace...)
}

// LastRound returns the most recent trace, false before the first round
func (g *Game) LastRound() (RoundTrace, bool) {
	if len(g.trace) == 0 {
		return RoundTrace{}, false
	}
	return g.trace[len(g.trace)-1], true
}

// Budgets returns each player's current budget by name
func (g *Game) Budgets() map[string]float64 {
	budgets := make(map[string]float64, len(g.players))
	for _, p := range g.players {
		budgets[p.Name] = p.Budget
	}
	return budgets
}

// InitialBudgets returns each player's budget at seating
func (g *Game) InitialBudgets() map[string]float64 {
	budgets := make(map[string]float64, len(g.initialBudgets))
	for name, b := range g.initialBudgets {
		budgets[name] = b
	}
	return budgets
}

// Players returns the seated players in seat order
func (g *Game) Players() []*Player {
	return append([]*Player(nil), g.players...)
}

// IsOver reports whether the game has ended
func (g *Game) IsOver() bool {
	return g.over
}

// Round returns the number of rounds started
func (g *Game) Round() int {
	return g.round
}

// Shoe returns the shoe currently in play
func (g *Game) Shoe() *deck.Shoe {
	return g.shoe
}

// Config returns the table rules
func (g *Game) Config() Config {
	return g.cfg
}
