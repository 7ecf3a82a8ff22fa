package game

import (
	"errors"
	"fmt"

	"dilemma/internal/strategy"
)

var ErrNotLearner = errors.New("entrant cannot learn")

// PretrainResult is the learner's tally against one panel opponent.
type PretrainResult struct {
	Opponent      string
	Score         int
	OpponentScore int
}

// Pretrain warms up a learning entrant against each panel opponent in turn.
// Unlike tournament play the learner is taught after every round, with that
// round's own payoff, before either side observes the other's move.
func Pretrain(learner *strategy.Entrant, panel []strategy.Strategy, rounds int) ([]PretrainResult, error) {
	if learner == nil {
		return nil, ErrNilStrategy
	}
	if !learner.CanLearn() {
		return nil, fmt.Errorf("%w: %s", ErrNotLearner, learner.Label)
	}
	if rounds <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, rounds)
	}

	results := make([]PretrainResult, 0, len(panel))
	for _, opponent := range panel {
		if opponent == nil {
			return nil, ErrNilStrategy
		}
		result := PretrainResult{Opponent: opponent.Name()}
		for round := 0; round < rounds; round++ {
			mine := learner.Decide()
			theirs := opponent.Decide()

			reward, opponentReward := Payoff(mine, theirs)
			result.Score += reward
			result.OpponentScore += opponentReward

			learner.Learn(float64(reward))

			learner.Observe(theirs)
			opponent.Observe(mine)
		}
		results = append(results, result)
	}
	return results, nil
}
