package game

import (
	"fmt"
	"strings"
)

// ReshufflePolicy selects when the engine replaces the shoe
type ReshufflePolicy int

const (
	// ReshufflePenetration replaces the shoe once the remaining cards drop
	// below a cut fraction of the initial size, drawn once per shoe
	ReshufflePenetration ReshufflePolicy = iota
	// ReshuffleReserve replaces the shoe once fewer than ReservePerSeat
	// cards per seat (dealer included) remain
	ReshuffleReserve
)

// String returns the string representation of a policy
func (r ReshufflePolicy) String() string {
	switch r {
	case ReshufflePenetration:
		return "penetration"
	case ReshuffleReserve:
		return "reserve"
	default:
		return fmt.Sprintf("policy(%d)", int(r))
	}
}

// ParseReshufflePolicy parses "penetration" or "reserve"; empty means the default
func ParseReshufflePolicy(s string) (ReshufflePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "penetration":
		return ReshufflePenetration, nil
	case "reserve":
		return ReshuffleReserve, nil
	default:
		return 0, fmt.Errorf("%w: unknown reshuffle policy %q", ErrInvalidConfig, s)
	}
}

// Config holds the table rules
type Config struct {
	MinimumBet     float64
	Decks          int
	MaxHands       int // hands a player may hold after splits
	MaxDecisions   int // decisions per hand before a forced stand
	HitSoft17      bool
	Reshuffle      ReshufflePolicy
	PenetrationMin float64
	PenetrationMax float64
	ReservePerSeat int
}

// DefaultConfig returns the standard table: six decks, a minimum bet of 10
// and a dealer who stands on soft 17.
func DefaultConfig() Config {
	return Config{
		MinimumBet:     10,
		Decks:          6,
		MaxHands:       4,
		MaxDecisions:   5,
		Reshuffle:      ReshufflePenetration,
		PenetrationMin: 0.7,
		PenetrationMax: 0.9,
		ReservePerSeat: 15,
	}
}

// Validate checks the rules for values the engine cannot play with
func (c Config) Validate() error {
	switch {
	case c.MinimumBet <= 0:
		return fmt.Errorf("%w: minimum bet must be positive, got %v", ErrInvalidConfig, c.MinimumBet)
	case c.Decks < 1:
		return fmt.Errorf("%w: decks must be at least 1, got %d", ErrInvalidConfig, c.Decks)
	case c.MaxHands < 1:
		return fmt.Errorf("%w: max hands must be at least 1, got %d", ErrInvalidConfig, c.MaxHands)
	case c.MaxDecisions < 1:
		return fmt.Errorf("%w: max decisions must be at least 1, got %d", ErrInvalidConfig, c.MaxDecisions)
	}

	switch c.Reshuffle {
	case ReshufflePenetration:
		if c.PenetrationMin <= 0 || c.PenetrationMax > 1 || c.PenetrationMin > c.PenetrationMax {
			return fmt.Errorf("%w: penetration range [%v, %v] must sit inside (0, 1]",
				ErrInvalidConfig, c.PenetrationMin, c.PenetrationMax)
		}
	case ReshuffleReserve:
		if c.ReservePerSeat < 1 {
			return fmt.Errorf("%w: reserve per seat must be at least 1, got %d", ErrInvalidConfig, c.ReservePerSeat)
		}
	default:
		return fmt.Errorf("%w: unknown reshuffle policy %s", ErrInvalidConfig, c.Reshuffle)
	}
	return nil
}
