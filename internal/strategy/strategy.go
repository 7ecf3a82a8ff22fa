// Package strategy defines the decision contract used by the match engine
// together with the reactive and learning strategies of the arena.
package strategy

import (
	"github.com/google/uuid"
)

// Move is one round's decision: true cooperates, false defects.
type Move bool

const (
	Cooperate Move = true
	Defect    Move = false
)

func (m Move) String() string {
	if m {
		return "C"
	}
	return "D"
}

// Strategy is a decision unit. Decide must depend only on the receiver's own
// memory, which Observe updates after both sides of a round have decided.
// Reset restores short-term memory to its construction-time value.
type Strategy interface {
	Name() string
	Decide() Move
	Observe(opponent Move)
	Reset()
}

// Learner is the optional learning capability: one parameter update driven
// by a reward-like signal and the memory the strategy currently holds.
type Learner interface {
	Strategy
	Learn(signal float64)
}

// Entrant is a strategy admitted into a population. Its identity is an
// opaque ID assigned at admission, and its learning capability is resolved
// once here so downstream engines only consult CanLearn.
type Entrant struct {
	Strategy

	ID    uuid.UUID
	Label string

	learner Learner
}

// NewEntrant admits s under a fresh ID, labelled with the strategy's name.
func NewEntrant(s Strategy) *Entrant {
	e := &Entrant{
		Strategy: s,
		ID:       uuid.New(),
		Label:    s.Name(),
	}
	if l, ok := s.(Learner); ok {
		e.learner = l
	}
	return e
}

func (e *Entrant) CanLearn() bool {
	return e.learner != nil
}

// Learn forwards to the learning capability; it is a no-op for entrants
// that cannot learn.
func (e *Entrant) Learn(signal float64) {
	if e.learner == nil {
		return
	}
	e.learner.Learn(signal)
}

func (e *Entrant) String() string {
	return e.Label
}
