package game

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/deck"
)

// Player is a seat at the table: a budget, a bound strategy and the hands
// held this round. Hands beyond the first come from splits.
type Player struct {
	Name       string
	Budget     float64
	Strategy   Strategy
	Hands      []*Hand
	InitialBet float64 // opening wager of the current round, 0 when sitting out
	WinStreak  int     // consecutive rounds with a positive net

	staked   float64 // debited this round
	returned float64 // credited this round
}

// NewPlayer creates a player with an opening budget
func NewPlayer(name string, budget float64, strategy Strategy) *Player {
	return &Player{
		Name:     name,
		Budget:   budget,
		Strategy: strategy,
	}
}

// debit takes amount from the budget, refusing to go negative
func (p *Player) debit(amount float64) error {
	if amount > p.Budget {
		return fmt.Errorf("%w: %s needs %.2f, has %.2f", ErrInsufficientBudget, p.Name, amount, p.Budget)
	}
	p.Budget -= amount
	p.staked += amount
	return nil
}

// Credit pays amount back into the budget
func (p *Player) Credit(amount float64) {
	p.Budget += amount
	p.returned += amount
}

// PlaceBet stakes amount and opens the player's first hand
func (p *Player) PlaceBet(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("bet must be positive, got %.2f", amount)
	}
	if err := p.debit(amount); err != nil {
		return err
	}
	p.InitialBet = amount
	p.Hands = []*Hand{NewHand(amount)}
	return nil
}

// DoubleDown doubles the wager on h and deals exactly one more card. The
// hand is closed afterwards; a bust is lost immediately.
func (p *Player) DoubleDown(h *Hand, shoe *deck.Shoe) error {
	if len(h.Cards) != 2 {
		return fmt.Errorf("%w: hand has %d cards", ErrIllegalDoubleDown, len(h.Cards))
	}
	if err := p.debit(h.Bet); err != nil {
		return err
	}
	h.Bet *= 2
	h.DoubledDown = true

	card, err := shoe.DealTop()
	if err != nil {
		return err
	}
	h.AddCard(card)
	h.CanHit = false
	if h.IsBust() {
		h.Result = ResultLose
	}
	return nil
}

// Split moves the second card of h into a new hand carrying the same bet,
// then deals one card to each, h first. The new hand is appended to
// p.Hands and returned. Split aces are closed after their one card.
func (p *Player) Split(h *Hand, shoe *deck.Shoe, maxHands int) (*Hand, error) {
	switch {
	case !h.CanSplit():
		return nil, fmt.Errorf("%w: %s is not a pair", ErrIllegalSplit, h)
	case h.AceSplit:
		return nil, fmt.Errorf("%w: split aces cannot be resplit", ErrIllegalSplit)
	case len(p.Hands) >= maxHands:
		return nil, fmt.Errorf("%w: %s already holds %d hands", ErrIllegalSplit, p.Name, len(p.Hands))
	}
	if err := p.debit(h.Bet); err != nil {
		return nil, err
	}

	aces := h.Cards[0].IsAce()
	split := NewHand(h.Bet)
	split.AddCard(h.Cards[1])
	h.Cards = h.Cards[:1]

	for _, hand := range []*Hand{h, split} {
		card, err := shoe.DealTop()
		if err != nil {
			return nil, err
		}
		hand.AddCard(card)
		if aces {
			hand.AceSplit = true
			hand.CanHit = false
		}
	}

	p.Hands = append(p.Hands, split)
	return split, nil
}

// Reset clears the round state, keeping budget and streak
func (p *Player) Reset() {
	p.Hands = nil
	p.InitialBet = 0
	p.staked = 0
	p.returned = 0
}

// SatOut reports whether the player holds no hands this round
func (p *Player) SatOut() bool {
	return len(p.Hands) == 0
}

// Staked returns the total debited this round
func (p *Player) Staked() float64 {
	return p.staked
}

// RoundNet returns credits minus debits for the current round
func (p *Player) RoundNet() float64 {
	return p.returned - p.staked
}
