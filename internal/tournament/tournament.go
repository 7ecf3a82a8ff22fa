// Package tournament runs repeated all-pairs round robins over a population
// and accumulates per-entrant score and win ledgers.
package tournament

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dilemma/internal/game"
	"dilemma/internal/strategy"
)

var (
	ErrDegeneratePopulation = errors.New("population needs at least two entrants")
	ErrDuplicateEntrant     = errors.New("duplicate entrant")
)

type Config struct {
	Rounds      int
	Repetitions int
	// OnRepetition, when set, is called after every completed repetition.
	OnRepetition func(repetition int, ledger *Ledger)
}

func DefaultConfig() Config {
	return Config{Rounds: 200, Repetitions: 1000}
}

type Tournament struct {
	cfg Config
}

func New(cfg Config) (*Tournament, error) {
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("%w: got %d", game.ErrInvalidRounds, cfg.Rounds)
	}
	if cfg.Repetitions <= 0 {
		return nil, fmt.Errorf("repetitions must be > 0")
	}
	return &Tournament{cfg: cfg}, nil
}

// ValidatePopulation rejects populations that cannot form a single pair or
// that admit the same entrant twice.
func ValidatePopulation(population []*strategy.Entrant) error {
	if len(population) < 2 {
		return fmt.Errorf("%w: got %d", ErrDegeneratePopulation, len(population))
	}
	seen := make(map[uuid.UUID]struct{}, len(population))
	for i, e := range population {
		if e == nil || e.Strategy == nil {
			return fmt.Errorf("entrant %d: %w", i, game.ErrNilStrategy)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %s (%s)", ErrDuplicateEntrant, e.Label, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// Run plays one generation: the configured number of repetitions over a
// fresh ledger.
func (t *Tournament) Run(population []*strategy.Entrant) (*Ledger, error) {
	if err := ValidatePopulation(population); err != nil {
		return nil, err
	}
	ledger := NewLedger(population)
	for rep := 0; rep < t.cfg.Repetitions; rep++ {
		if err := t.PlayRepetition(population, ledger); err != nil {
			return nil, fmt.Errorf("repetition %d: %w", rep, err)
		}
		if t.cfg.OnRepetition != nil {
			t.cfg.OnRepetition(rep, ledger)
		}
	}
	return ledger, nil
}

// PlayRepetition plays every unordered pair once. Learners are taught with
// their whole match total right after each match; everyone else is reset
// once all pairs are done.
func (t *Tournament) PlayRepetition(population []*strategy.Entrant, ledger *Ledger) error {
	for i := 0; i < len(population); i++ {
		for j := i + 1; j < len(population); j++ {
			a, b := population[i], population[j]
			if !ledger.Has(a.ID) || !ledger.Has(b.ID) {
				return fmt.Errorf("ledger has no entry for %s or %s", a.Label, b.Label)
			}

			scoreA, scoreB, err := game.PlayMatch(a, b, t.cfg.Rounds)
			if err != nil {
				return fmt.Errorf("%s vs %s: %w", a.Label, b.Label, err)
			}
			ledger.record(a.ID, scoreA, scoreA > scoreB)
			ledger.record(b.ID, scoreB, scoreB > scoreA)

			if a.CanLearn() {
				a.Learn(float64(scoreA))
			}
			if b.CanLearn() {
				b.Learn(float64(scoreB))
			}
		}
	}

	for _, e := range population {
		if !e.CanLearn() {
			e.Reset()
		}
	}
	return nil
}
