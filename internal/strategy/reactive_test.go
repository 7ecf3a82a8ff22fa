package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitForTatMirrorsOpponent(t *testing.T) {
	s := NewTitForTat()
	assert.Equal(t, Cooperate, s.Decide(), "opens with cooperation")

	s.Observe(Defect)
	assert.Equal(t, Defect, s.Decide())
	s.Observe(Cooperate)
	assert.Equal(t, Cooperate, s.Decide())

	s.Observe(Defect)
	s.Reset()
	assert.Equal(t, Cooperate, s.Decide())
}

func TestCooperateUntilBetrayedHoldsGrudgeUntilReset(t *testing.T) {
	s := NewCooperateUntilBetrayed()
	s.Observe(Cooperate)
	assert.Equal(t, Cooperate, s.Decide())

	s.Observe(Defect)
	for i := 0; i < 5; i++ {
		s.Observe(Cooperate)
		assert.Equal(t, Defect, s.Decide())
	}

	s.Reset()
	assert.Equal(t, Cooperate, s.Decide())
}

func TestAlwaysSwitchAlternatesFromDefection(t *testing.T) {
	s := NewAlwaysSwitch()
	want := []Move{Defect, Cooperate, Defect, Cooperate}
	for i, w := range want {
		assert.Equal(t, w, s.Decide(), "turn %d", i+1)
	}
	s.Reset()
	assert.Equal(t, Defect, s.Decide())
}

func TestCooperateOnEvenTurnsCountsOwnDecisions(t *testing.T) {
	s := NewCooperateOnEvenTurns()
	want := []Move{Cooperate, Defect, Cooperate, Defect}
	for i, w := range want {
		assert.Equal(t, w, s.Decide(), "turn %d", i+1)
	}
	assert.Equal(t, 4, s.Turn())
	s.Reset()
	assert.Equal(t, 0, s.Turn())
}

func TestRandomOnEvenTurnsDefectsOnOddTurns(t *testing.T) {
	s := NewRandomOnEvenTurns(constantDraws(0))
	assert.Equal(t, Defect, s.Decide())
	assert.Equal(t, Cooperate, s.Decide())
	assert.Equal(t, Defect, s.Decide())

	s = NewRandomOnEvenTurns(constantDraws(0.75))
	s.Decide()
	assert.Equal(t, Defect, s.Decide())
}

func TestProbabilisticStrategies(t *testing.T) {
	assert.Equal(t, Cooperate, NewRandom(constantDraws(0.25)).Decide())
	assert.Equal(t, Defect, NewRandom(constantDraws(0.75)).Decide())

	// Cooperates only below 0.3, defecting the rest of the time.
	assert.Equal(t, Cooperate, NewDefectWithProbability(constantDraws(0.1)).Decide())
	assert.Equal(t, Defect, NewDefectWithProbability(constantDraws(0.35)).Decide())
	assert.Equal(t, Defect, NewDefectWithProbability(constantDraws(0.5)).Decide())
}

func TestStatelessStrategies(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, Cooperate, AlwaysCooperate{}.Decide())
		assert.Equal(t, Defect, NeverCooperate{}.Decide())
	}
}

func TestCanonicalPanelIsFresh(t *testing.T) {
	first := CanonicalPanel()
	first[0].Observe(Defect)

	second := CanonicalPanel()
	names := make([]string, 0, len(second))
	for _, s := range second {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"TitForTat", "AlwaysCooperate", "NeverCooperate", "CooperateUntilBetrayed"}, names)
	assert.Equal(t, Cooperate, second[0].Decide())
}
