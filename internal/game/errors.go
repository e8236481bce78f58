package game

import "errors"

var (
	// ErrInsufficientBudget is returned when a debit exceeds a player's budget
	ErrInsufficientBudget = errors.New("insufficient budget")

	// ErrInvalidDecision is returned when a strategy produces an action
	// outside hit, stand, double down and split
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrIllegalSplit describes a split whose preconditions do not hold
	ErrIllegalSplit = errors.New("illegal split")

	// ErrIllegalDoubleDown describes a double down whose preconditions do not hold
	ErrIllegalDoubleDown = errors.New("illegal double down")

	// ErrGameOver is returned by RunRound once no player is left betting
	ErrGameOver = errors.New("game is over")
)

// ErrInvalidConfig wraps every table configuration and seating error
// reported by NewGame
var ErrInvalidConfig = errors.New("invalid game config")
