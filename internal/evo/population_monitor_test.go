package evo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dilemma/internal/strategy"
	"dilemma/internal/tournament"
)

func entrants(strategies ...strategy.Strategy) []*strategy.Entrant {
	out := make([]*strategy.Entrant, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, strategy.NewEntrant(s))
	}
	return out
}

func TestFirstMinimumSelectorPicksLowestFitness(t *testing.T) {
	pop := entrants(strategy.AlwaysCooperate{}, strategy.NeverCooperate{}, strategy.NewTitForTat())
	scored := []ScoredEntrant{
		{Entrant: pop[0], Fitness: 71.5},
		{Entrant: pop[1], Fitness: 35.6},
		{Entrant: pop[2], Fitness: 9.7},
	}
	idx, err := FirstMinimumSelector{}.PickWeakest(scored)
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "third entrant should be eliminated")
}

func TestFirstMinimumSelectorTieBreaksByPopulationOrder(t *testing.T) {
	pop := entrants(strategy.AlwaysCooperate{}, strategy.NeverCooperate{}, strategy.NewTitForTat())
	scored := []ScoredEntrant{
		{Entrant: pop[0], Fitness: 12},
		{Entrant: pop[1], Fitness: 4},
		{Entrant: pop[2], Fitness: 4},
	}
	idx, err := FirstMinimumSelector{}.PickWeakest(scored)
	require.NoError(t, err)
	assert.Equal(t, 1, idx, "first of the tied entrants")

	_, err = FirstMinimumSelector{}.PickWeakest(nil)
	assert.Error(t, err)
}

func TestFitnessWeightsCombined(t *testing.T) {
	w := DefaultFitnessWeights()
	assert.InDelta(t, 71.5, w.Combined(tournament.Standing{Score: 100, Wins: 5}), 1e-9)
	assert.InDelta(t, 35.6, w.Combined(tournament.Standing{Score: 50, Wins: 2}), 1e-9)
	assert.InDelta(t, 9.7, w.Combined(tournament.Standing{Score: 10, Wins: 9}), 1e-9)
	assert.Error(t, FitnessWeights{Score: -1}.Validate())
}

func TestMonitorEliminatesUntilOneSurvivor(t *testing.T) {
	pop := entrants(strategy.AlwaysCooperate{}, strategy.NeverCooperate{}, strategy.NewTitForTat())

	var hooked []int
	monitor, err := NewMonitor(MonitorConfig{
		Tournament: tournament.Config{Rounds: 10, Repetitions: 1},
		Weights:    DefaultFitnessWeights(),
		OnGeneration: func(g GenerationResult) error {
			hooked = append(hooked, g.Generation)
			return nil
		},
	})
	require.NoError(t, err)

	result, err := monitor.Run(pop)
	require.NoError(t, err)
	require.Len(t, result.Generations, 2, "n-1 generations")
	assert.Equal(t, []int{1, 2}, hooked)

	// Generation 1: AC 30 pts, NC 64 pts + 2 wins, TFT 39 pts.
	first := result.Generations[0]
	require.Len(t, first.Standings, 3)
	wantFitness := []float64{0.7 * 30, 0.7*64 + 0.3*2, 0.7 * 39}
	for i, want := range wantFitness {
		assert.InDelta(t, want, first.Standings[i].Fitness, 1e-9, "standing %d", i)
	}
	assert.Same(t, pop[0], first.Eliminated.Entrant, "AlwaysCooperate goes first")
	assert.InDelta(t, 21, first.Diagnostics.MinFitness, 1e-9)
	assert.InDelta(t, 0.7*64+0.3*2, first.Diagnostics.BestFitness, 1e-9)
	assert.InDelta(t, (21+0.7*64+0.3*2+0.7*39)/3, first.Diagnostics.MeanFitness, 1e-9)

	// Generation 2: NC 14 pts + 1 win, TFT 9 pts.
	second := result.Generations[1]
	require.Len(t, second.Standings, 2, "population shrinks by one")
	for _, s := range second.Standings {
		assert.NotSame(t, pop[0], s.Entrant, "eliminated entrant reappeared")
	}
	assert.Same(t, pop[2], second.Eliminated.Entrant, "TitForTat goes second")
	assert.Same(t, pop[1], result.Survivor, "NeverCooperate survives")
	assert.Len(t, pop, 3, "caller population must not be modified")
}

func TestMonitorRejectsDegeneratePopulation(t *testing.T) {
	monitor, err := NewMonitor(MonitorConfig{
		Tournament: tournament.Config{Rounds: 1, Repetitions: 1},
		Weights:    DefaultFitnessWeights(),
	})
	require.NoError(t, err)

	_, err = monitor.Run(entrants(strategy.AlwaysCooperate{}))
	assert.ErrorIs(t, err, ErrDegeneratePopulation)
}

func TestMonitorHookErrorAbortsRun(t *testing.T) {
	stop := errors.New("stop")
	monitor, err := NewMonitor(MonitorConfig{
		Tournament:   tournament.Config{Rounds: 1, Repetitions: 1},
		Weights:      DefaultFitnessWeights(),
		OnGeneration: func(GenerationResult) error { return stop },
	})
	require.NoError(t, err)

	_, err = monitor.Run(entrants(strategy.AlwaysCooperate{}, strategy.NeverCooperate{}, strategy.NewTitForTat()))
	assert.ErrorIs(t, err, stop)
}

func TestScoreKeepsPopulationOrder(t *testing.T) {
	pop := entrants(strategy.NeverCooperate{}, strategy.AlwaysCooperate{})
	tour, err := tournament.New(tournament.Config{Rounds: 2, Repetitions: 1})
	require.NoError(t, err)
	ledger, err := tour.Run(pop)
	require.NoError(t, err)

	scored := Score(pop, ledger, FitnessWeights{Score: 1})
	require.Len(t, scored, 2)
	assert.Same(t, pop[0], scored[0].Entrant)
	assert.Equal(t, 10.0, scored[0].Fitness)
	assert.Equal(t, 0.0, scored[1].Fitness)
}
