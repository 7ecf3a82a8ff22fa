package strategy

import (
	"fmt"
	"math"
	"math/rand"
)

// Q-table indices. States encode the opponent's last move; actions encode
// our own move.
const (
	StateOpponentCooperated = 0
	StateOpponentDefected   = 1

	ActionCooperate = 0
	ActionDefect    = 1
)

type QLearningConfig struct {
	LearningRate float64
	Discount     float64
	Epsilon      float64
}

func DefaultQLearningConfig() QLearningConfig {
	return QLearningConfig{
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
	}
}

// QLearning is an epsilon-greedy tabular learner over the opponent's last
// move. Learn updates the entry for the most recent Decide using the
// opponent move currently held in memory as the next state.
type QLearning struct {
	cfg QLearningConfig
	rng *rand.Rand

	q [2][2]float64

	lastState    int
	lastAction   int
	lastOpponent Move
	myLast       Move
}

func NewQLearning(cfg QLearningConfig, rng *rand.Rand) (*QLearning, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if cfg.Epsilon < 0 || cfg.Epsilon > 1 {
		return nil, fmt.Errorf("epsilon must be in [0, 1]")
	}
	return &QLearning{
		cfg:          cfg,
		rng:          rng,
		lastOpponent: Cooperate,
		myLast:       Cooperate,
	}, nil
}

func (s *QLearning) Name() string { return "QLearning" }

func stateOf(opponent Move) int {
	if opponent == Cooperate {
		return StateOpponentCooperated
	}
	return StateOpponentDefected
}

func (s *QLearning) Decide() Move {
	state := stateOf(s.lastOpponent)

	var action int
	if s.rng.Float64() < s.cfg.Epsilon {
		action = ActionDefect
		if s.rng.Float64() < 0.5 {
			action = ActionCooperate
		}
	} else {
		// Ties resolve to defection.
		action = ActionDefect
		if s.q[state][ActionCooperate] > s.q[state][ActionDefect] {
			action = ActionCooperate
		}
	}

	s.lastState = state
	s.lastAction = action
	s.myLast = Move(action == ActionCooperate)
	return s.myLast
}

func (s *QLearning) Observe(opponent Move) {
	s.lastOpponent = opponent
}

func (s *QLearning) Reset() {
	s.lastOpponent = Cooperate
	s.myLast = Cooperate
	s.lastState = 0
	s.lastAction = 0
}

func (s *QLearning) Learn(reward float64) {
	next := stateOf(s.lastOpponent)
	maxFuture := math.Max(s.q[next][ActionCooperate], s.q[next][ActionDefect])

	current := s.q[s.lastState][s.lastAction]
	s.q[s.lastState][s.lastAction] += s.cfg.LearningRate * (reward + s.cfg.Discount*maxFuture - current)
}

// Q returns a copy of the Q-table indexed [state][action].
func (s *QLearning) Q() [2][2]float64 {
	return s.q
}

// Parameters flattens the Q-table row by row.
func (s *QLearning) Parameters() []float64 {
	return []float64{s.q[0][0], s.q[0][1], s.q[1][0], s.q[1][1]}
}
