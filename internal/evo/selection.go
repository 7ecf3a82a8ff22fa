package evo

import "fmt"

// Selector picks the entrant to eliminate from a scored generation and
// returns its index in scored.
type Selector interface {
	Name() string
	PickWeakest(scored []ScoredEntrant) (int, error)
}

// FirstMinimumSelector eliminates the lowest combined fitness, breaking ties
// in favour of the entrant that comes first in population order.
type FirstMinimumSelector struct{}

func (FirstMinimumSelector) Name() string {
	return "first_minimum"
}

func (FirstMinimumSelector) PickWeakest(scored []ScoredEntrant) (int, error) {
	if len(scored) == 0 {
		return 0, fmt.Errorf("scored population is empty")
	}
	weakest := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].Fitness < scored[weakest].Fitness {
			weakest = i
		}
	}
	return weakest, nil
}
