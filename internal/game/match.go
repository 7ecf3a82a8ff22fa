package game

import (
	"errors"
	"fmt"

	"dilemma/internal/strategy"
)

var (
	ErrInvalidRounds = errors.New("rounds must be > 0")
	ErrNilStrategy   = errors.New("strategy is required")
)

// PlayMatch plays a fixed number of rounds between a and b and returns each
// side's accumulated score. Both sides decide before either observes, so no
// strategy sees the current round before committing to its move.
func PlayMatch(a, b strategy.Strategy, rounds int) (int, int, error) {
	if a == nil || b == nil {
		return 0, 0, ErrNilStrategy
	}
	if rounds <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidRounds, rounds)
	}

	totalA, totalB := 0, 0
	for round := 0; round < rounds; round++ {
		moveA := a.Decide()
		moveB := b.Decide()

		scoreA, scoreB := Payoff(moveA, moveB)
		totalA += scoreA
		totalB += scoreB

		a.Observe(moveB)
		b.Observe(moveA)
	}
	return totalA, totalB, nil
}
