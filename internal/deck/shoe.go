package deck

import (
	"errors"
	rand "math/rand/v2"
)

// DefaultDecks is the number of 52-card decks in a standard shoe
const DefaultDecks = 6

// ErrEmptyShoe is returned when dealing from a shoe with no cards left
var ErrEmptyShoe = errors.New("shoe is empty")

// Shoe is a shuffled multi-deck card pool. Cards are dealt from the end of
// the slice, and every dealt card updates the Hi-Lo running count exactly once.
type Shoe struct {
	cards        []Card
	decks        int
	runningCount int
	initialCards int
	initialValue int
	rng          *rand.Rand
}

// NewShoe builds decks×52 cards and shuffles them with rng
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		decks = 1
	}

	s := &Shoe{
		cards: make([]Card, 0, decks*52),
		decks: decks,
		rng:   rng,
	}
	for range decks {
		for _, suit := range Suits {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.recordInitial()
	s.Shuffle()
	return s
}

// NewStackedShoe returns an unshuffled shoe that deals cards in the order
// given: the first argument is dealt first.
func NewStackedShoe(cards ...Card) *Shoe {
	s := &Shoe{
		cards: make([]Card, len(cards)),
		decks: 1,
	}
	for i, c := range cards {
		s.cards[len(cards)-1-i] = c
	}
	s.recordInitial()
	return s
}

func (s *Shoe) recordInitial() {
	s.initialCards = len(s.cards)
	s.initialValue = s.RemainingValue()
}

// Shuffle randomizes the order of the undealt cards using Fisher-Yates
func (s *Shoe) Shuffle() {
	if s.rng == nil {
		rand.Shuffle(len(s.cards), func(i, j int) {
			s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
		})
		return
	}
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// DealTop removes and returns the top card and applies it to the running count
func (s *Shoe) DealTop() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}

	last := len(s.cards) - 1
	card := s.cards[last]
	s.cards = s.cards[:last]
	s.runningCount += card.HiLo()
	return card, nil
}

// CardsRemaining returns the number of undealt cards
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

// RemainingValue sums the blackjack values of the undealt cards. It walks the
// whole shoe and is meant for traces, not the deal path.
func (s *Shoe) RemainingValue() int {
	total := 0
	for _, c := range s.cards {
		total += c.BlackjackValue()
	}
	return total
}

// RunningCount returns the Hi-Lo running count of all cards dealt so far
func (s *Shoe) RunningCount() int {
	return s.runningCount
}

// TrueCount returns the running count divided by five, the fixed proxy for
// decks remaining used throughout the simulator.
func (s *Shoe) TrueCount() float64 {
	return float64(s.runningCount) / 5
}

// TrueCountFloor returns floor(runningCount/5)
func (s *Shoe) TrueCountFloor() int {
	q := s.runningCount / 5
	if s.runningCount%5 != 0 && s.runningCount < 0 {
		q--
	}
	return q
}

// InitialCards returns the card count at construction
func (s *Shoe) InitialCards() int {
	return s.initialCards
}

// InitialValue returns the total blackjack value at construction
func (s *Shoe) InitialValue() int {
	return s.initialValue
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// IsEmpty returns true if the shoe has no cards left
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}
