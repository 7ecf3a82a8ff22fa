package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource makes every Float64 draw return the same value.
type fixedSource int64

func (s fixedSource) Int63() int64 { return int64(s) }
func (fixedSource) Seed(int64) {}

// constantDraws returns a generator whose Float64 always yields p, p in [0, 1).
func constantDraws(p float64) *rand.Rand {
	return rand.New(fixedSource(int64(p * (1 << 63))))
}

func TestConstantDraws(t *testing.T) {
	rng := constantDraws(0.75)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.75, rng.Float64())
	}
}

func TestEntrantResolvesLearningCapabilityOnce(t *testing.T) {
	q, err := NewQLearning(DefaultQLearningConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	learner := NewEntrant(q)
	reactive := NewEntrant(NewTitForTat())

	assert.True(t, learner.CanLearn())
	assert.False(t, reactive.CanLearn())
	assert.Equal(t, "QLearning", learner.Label)
	assert.Equal(t, "TitForTat", reactive.String())
	assert.NotEqual(t, learner.ID, reactive.ID)

	// Learn on a non-learner is inert.
	reactive.Learn(5)
	assert.Equal(t, Cooperate, reactive.Decide())
}

func TestEntrantIDsAreUniqueForSameStrategyName(t *testing.T) {
	a := NewEntrant(AlwaysCooperate{})
	b := NewEntrant(AlwaysCooperate{})
	assert.Equal(t, a.Label, b.Label)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "C", Cooperate.String())
	assert.Equal(t, "D", Defect.String())
}
