package evo

import (
	"fmt"

	"dilemma/internal/tournament"
)

// FitnessWeights blends a generation's score and win ledgers into one
// combined fitness.
type FitnessWeights struct {
	Score float64
	Wins  float64
}

func DefaultFitnessWeights() FitnessWeights {
	return FitnessWeights{Score: 0.7, Wins: 0.3}
}

func (w FitnessWeights) Validate() error {
	if w.Score < 0 || w.Wins < 0 {
		return fmt.Errorf("fitness weights must be >= 0: score=%f wins=%f", w.Score, w.Wins)
	}
	return nil
}

// Combined returns Score*score + Wins*wins.
func (w FitnessWeights) Combined(s tournament.Standing) float64 {
	return w.Score*float64(s.Score) + w.Wins*float64(s.Wins)
}
