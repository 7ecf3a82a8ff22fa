// Package evo drives generational elimination: each generation runs a full
// tournament, ranks entrants by combined fitness and removes the weakest
// until a single survivor remains.
package evo

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"dilemma/internal/strategy"
	"dilemma/internal/tournament"
)

// ErrDegeneratePopulation is returned when a run starts with fewer than two
// entrants.
var ErrDegeneratePopulation = tournament.ErrDegeneratePopulation

type ScoredEntrant struct {
	Entrant  *strategy.Entrant
	Standing tournament.Standing
	Fitness  float64
}

type GenerationDiagnostics struct {
	BestFitness float64
	MeanFitness float64
	MinFitness  float64
}

type GenerationResult struct {
	// Generation is 1-based.
	Generation int
	// Standings lists the generation's entrants in population order.
	Standings   []ScoredEntrant
	Eliminated  ScoredEntrant
	Diagnostics GenerationDiagnostics
}

type RunResult struct {
	Generations []GenerationResult
	Survivor    *strategy.Entrant
}

type MonitorConfig struct {
	Tournament tournament.Config
	Weights    FitnessWeights
	Selector   Selector
	Logger     logrus.FieldLogger
	// OnGeneration, when set, receives every generation as soon as it is
	// decided. A returned error aborts the run.
	OnGeneration func(GenerationResult) error
}

type Monitor struct {
	cfg        MonitorConfig
	tournament *tournament.Tournament
	log        logrus.FieldLogger
}

func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.Selector == nil {
		cfg.Selector = FirstMinimumSelector{}
	}
	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	tcfg := cfg.Tournament
	if tcfg.OnRepetition == nil {
		tcfg.OnRepetition = func(rep int, _ *tournament.Ledger) {
			log.WithField("repetition", rep+1).Debug("repetition complete")
		}
	}
	tour, err := tournament.New(tcfg)
	if err != nil {
		return nil, err
	}

	return &Monitor{cfg: cfg, tournament: tour, log: log}, nil
}

// Run eliminates one entrant per generation until one remains, so a
// population of n entrants runs n-1 generations. The caller's slice is not
// modified; learning entrants carry their parameters across generations.
func (m *Monitor) Run(initial []*strategy.Entrant) (RunResult, error) {
	if len(initial) < 2 {
		return RunResult{}, fmt.Errorf("%w: got %d", ErrDegeneratePopulation, len(initial))
	}
	if err := tournament.ValidatePopulation(initial); err != nil {
		return RunResult{}, err
	}

	population := make([]*strategy.Entrant, len(initial))
	copy(population, initial)

	generations := make([]GenerationResult, 0, len(initial)-1)
	for gen := 1; len(population) > 1; gen++ {
		result, err := m.runGeneration(gen, population)
		if err != nil {
			return RunResult{}, fmt.Errorf("generation %d: %w", gen, err)
		}
		population = removeEntrant(population, result.Eliminated.Entrant)
		generations = append(generations, result)

		m.log.WithFields(logrus.Fields{
			"generation": gen,
			"eliminated": result.Eliminated.Entrant.Label,
			"fitness":    result.Eliminated.Fitness,
			"population": len(population),
		}).Info("generation complete")

		if m.cfg.OnGeneration != nil {
			if err := m.cfg.OnGeneration(result); err != nil {
				return RunResult{}, fmt.Errorf("generation %d hook: %w", gen, err)
			}
		}
	}

	return RunResult{Generations: generations, Survivor: population[0]}, nil
}

func (m *Monitor) runGeneration(gen int, population []*strategy.Entrant) (GenerationResult, error) {
	ledger, err := m.tournament.Run(population)
	if err != nil {
		return GenerationResult{}, err
	}

	scored := Score(population, ledger, m.cfg.Weights)
	weakest, err := m.cfg.Selector.PickWeakest(scored)
	if err != nil {
		return GenerationResult{}, err
	}
	eliminated := scored[weakest]
	ledger.Remove(eliminated.Entrant.ID)

	return GenerationResult{
		Generation:  gen,
		Standings:   scored,
		Eliminated:  eliminated,
		Diagnostics: summarizeGeneration(scored),
	}, nil
}

// Score computes combined fitness for every entrant, in population order.
func Score(population []*strategy.Entrant, ledger *tournament.Ledger, weights FitnessWeights) []ScoredEntrant {
	scored := make([]ScoredEntrant, 0, len(population))
	for _, e := range population {
		standing, _ := ledger.Get(e.ID)
		scored = append(scored, ScoredEntrant{
			Entrant:  e,
			Standing: standing,
			Fitness:  weights.Combined(standing),
		})
	}
	return scored
}

func summarizeGeneration(scored []ScoredEntrant) GenerationDiagnostics {
	if len(scored) == 0 {
		return GenerationDiagnostics{}
	}
	total := 0.0
	best := scored[0].Fitness
	minFitness := scored[0].Fitness
	for _, item := range scored {
		total += item.Fitness
		if item.Fitness > best {
			best = item.Fitness
		}
		if item.Fitness < minFitness {
			minFitness = item.Fitness
		}
	}
	return GenerationDiagnostics{
		BestFitness: best,
		MeanFitness: total / float64(len(scored)),
		MinFitness:  minFitness,
	}
}

func removeEntrant(population []*strategy.Entrant, target *strategy.Entrant) []*strategy.Entrant {
	out := make([]*strategy.Entrant, 0, len(population)-1)
	for _, e := range population {
		if e.ID != target.ID {
			out = append(out, e)
		}
	}
	return out
}
