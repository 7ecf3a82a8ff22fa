// Package game holds the payoff model and the round loops that drive two
// strategies against each other.
package game

import "dilemma/internal/strategy"

// Payoffs of the classic dilemma table.
const (
	Reward     = 3 // both cooperate
	Punishment = 1 // both defect
	Sucker     = 0 // cooperated against a defector
	Temptation = 5 // defected against a cooperator
)

// Payoff scores one round for sides A and B.
func Payoff(a, b strategy.Move) (int, int) {
	switch {
	case a == strategy.Cooperate && b == strategy.Cooperate:
		return Reward, Reward
	case a == strategy.Defect && b == strategy.Defect:
		return Punishment, Punishment
	case a == strategy.Cooperate:
		return Sucker, Temptation
	default:
		return Temptation, Sucker
	}
}
