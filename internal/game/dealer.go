package game

import "github.com/lox/blackjacksim/internal/deck"

// DealerStandsOn is the total at which the dealer stops drawing
const DealerStandsOn = 17

// Dealer holds the house hand and plays a fixed policy
type Dealer struct {
	Hand *Hand
}

// NewDealer creates a dealer with an empty hand
func NewDealer() *Dealer {
	return &Dealer{Hand: NewHand(0)}
}

// Reset discards the dealer's cards
func (d *Dealer) Reset() {
	d.Hand = NewHand(0)
}

// Upcard returns the dealer's first card, or the zero card before the deal
func (d *Dealer) Upcard() deck.Card {
	if len(d.Hand.Cards) == 0 {
		return deck.Card{}
	}
	return d.Hand.Cards[0]
}

// DealInitial gives two cards to every player holding a hand, in seat
// order, then two to the dealer.
func (d *Dealer) DealInitial(players []*Player, shoe *deck.Shoe) error {
	for _, p := range players {
		if p.SatOut() {
			continue
		}
		for range 2 {
			card, err := shoe.DealTop()
			if err != nil {
				return err
			}
			p.Hands[0].AddCard(card)
		}
	}
	for range 2 {
		card, err := shoe.DealTop()
		if err != nil {
			return err
		}
		d.Hand.AddCard(card)
	}
	return nil
}

// Play draws until the hand reaches DealerStandsOn. With hitSoft17 the
// dealer also draws on a soft 17.
func (d *Dealer) Play(shoe *deck.Shoe, hitSoft17 bool) error {
	for d.mustDraw(hitSoft17) {
		card, err := shoe.DealTop()
		if err != nil {
			return err
		}
		d.Hand.AddCard(card)
	}
	d.Hand.CanHit = false
	return nil
}

func (d *Dealer) mustDraw(hitSoft17 bool) bool {
	v := d.Hand.Value()
	if v < DealerStandsOn {
		return true
	}
	return hitSoft17 && v == DealerStandsOn && d.Hand.IsSoft()
}
