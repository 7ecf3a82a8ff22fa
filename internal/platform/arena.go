// Package platform assembles populations from the strategy registry, warms
// up learners, runs elimination and persists the resulting reports.
package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dilemma/internal/config"
	"dilemma/internal/evo"
	"dilemma/internal/game"
	"dilemma/internal/model"
	"dilemma/internal/storage"
	"dilemma/internal/strategy"
	"dilemma/internal/tournament"
)

var ErrNotStarted = errors.New("arena is not initialized")

type Config struct {
	Store    storage.Store
	Registry *strategy.Registry
	Logger   logrus.FieldLogger
	// Now stamps run records; defaults to time.Now.
	Now func() time.Time
}

type Arena struct {
	store    storage.Store
	registry *strategy.Registry
	log      logrus.FieldLogger
	now      func() time.Time

	mu      sync.RWMutex
	started bool
}

// RunOutcome is a finished run as persisted, plus the live survivor.
type RunOutcome struct {
	Record      model.RunRecord
	Generations []model.GenerationRecord
	Pretraining []model.PretrainRecord
	Survivor    *strategy.Entrant
}

// RunReport is a stored run read back from the store.
type RunReport struct {
	Run         model.RunRecord
	Generations []model.GenerationRecord
	Pretraining []model.PretrainRecord
}

type parameterized interface {
	Parameters() []float64
}

func NewArena(cfg Config) *Arena {
	registry := cfg.Registry
	if registry == nil {
		registry = strategy.DefaultRegistry()
	}
	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Arena{
		store:    cfg.Store,
		registry: registry,
		log:      log,
		now:      now,
	}
}

func (a *Arena) Init(ctx context.Context) error {
	if a.store == nil {
		return fmt.Errorf("store is required")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return nil
	}
	if err := a.store.Init(ctx); err != nil {
		return err
	}
	a.started = true
	return nil
}

func (a *Arena) Started() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.started
}

func (a *Arena) Registry() *strategy.Registry {
	return a.registry
}

// Run executes one complete evolution run and persists its reports. The
// context is checked between generations.
func (a *Arena) Run(ctx context.Context, cfg config.Run) (RunOutcome, error) {
	if !a.Started() {
		return RunOutcome{}, ErrNotStarted
	}
	if err := cfg.Validate(a.registry); err != nil {
		return RunOutcome{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = a.now().UnixNano()
	}
	runID := uuid.NewString()
	log := a.log.WithField("run_id", runID)

	population, err := BuildPopulation(a.registry, cfg.Strategies, rand.New(rand.NewSource(seed)))
	if err != nil {
		return RunOutcome{}, err
	}
	log.WithFields(logrus.Fields{
		"population": len(population),
		"seed":       seed,
	}).Info("population assembled")

	pretraining, err := a.pretrain(log, population, cfg.PretrainRounds)
	if err != nil {
		return RunOutcome{}, err
	}

	generations := make([]model.GenerationRecord, 0, len(population)-1)
	monitor, err := evo.NewMonitor(evo.MonitorConfig{
		Tournament: tournament.Config{Rounds: cfg.Rounds, Repetitions: cfg.Repetitions},
		Weights:    evo.FitnessWeights{Score: cfg.ScoreWeight, Wins: cfg.WinWeight},
		Logger:     log,
		OnGeneration: func(g evo.GenerationResult) error {
			record := toGenerationRecord(g)
			generations = append(generations, record)
			log.WithFields(logrus.Fields{
				"generation":   g.Generation,
				"best_fitness": g.Diagnostics.BestFitness,
				"mean_fitness": g.Diagnostics.MeanFitness,
				"min_fitness":  g.Diagnostics.MinFitness,
			}).Debug("generation fitness")
			return ctx.Err()
		},
	})
	if err != nil {
		return RunOutcome{}, err
	}

	result, err := monitor.Run(population)
	if err != nil {
		return RunOutcome{}, err
	}

	record := model.RunRecord{
		VersionedRecord: storage.CurrentVersion(),
		ID:              runID,
		CreatedAtUTC:    a.now().UTC().Format(model.TimestampLayout),
		Seed:            seed,
		Rounds:          cfg.Rounds,
		Repetitions:     cfg.Repetitions,
		PretrainRounds:  cfg.PretrainRounds,
		ScoreWeight:     cfg.ScoreWeight,
		WinWeight:       cfg.WinWeight,
		Roster:          labels(population),
		Survivor:        result.Survivor.Label,
		Generations:     len(result.Generations),
	}
	if p, ok := result.Survivor.Strategy.(parameterized); ok {
		record.SurvivorParameters = p.Parameters()
	}

	if err := a.store.SaveRun(ctx, record); err != nil {
		return RunOutcome{}, fmt.Errorf("save run %s: %w", runID, err)
	}
	if err := a.store.SaveGenerations(ctx, runID, generations); err != nil {
		return RunOutcome{}, fmt.Errorf("save generations %s: %w", runID, err)
	}
	if err := a.store.SavePretraining(ctx, runID, pretraining); err != nil {
		return RunOutcome{}, fmt.Errorf("save pretraining %s: %w", runID, err)
	}

	log.WithField("survivor", record.Survivor).Info("run complete")
	return RunOutcome{
		Record:      record,
		Generations: generations,
		Pretraining: pretraining,
		Survivor:    result.Survivor,
	}, nil
}

func (a *Arena) pretrain(log logrus.FieldLogger, population []*strategy.Entrant, rounds int) ([]model.PretrainRecord, error) {
	if rounds == 0 {
		return nil, nil
	}
	var records []model.PretrainRecord
	for _, e := range population {
		if !e.CanLearn() {
			continue
		}
		results, err := game.Pretrain(e, strategy.CanonicalPanel(), rounds)
		if err != nil {
			return nil, fmt.Errorf("pretrain %s: %w", e.Label, err)
		}
		for _, r := range results {
			records = append(records, model.PretrainRecord{
				VersionedRecord: storage.CurrentVersion(),
				EntrantID:       e.ID.String(),
				Name:            e.Label,
				Opponent:        r.Opponent,
				Score:           r.Score,
				OpponentScore:   r.OpponentScore,
			})
			log.WithFields(logrus.Fields{
				"learner":  e.Label,
				"opponent": r.Opponent,
				"score":    r.Score,
			}).Debug("pretraining complete")
		}
	}
	return records, nil
}

// Runs lists stored runs, newest first.
func (a *Arena) Runs(ctx context.Context) ([]model.RunRecord, error) {
	if !a.Started() {
		return nil, ErrNotStarted
	}
	runs, err := a.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

func (a *Arena) Report(ctx context.Context, runID string) (RunReport, bool, error) {
	if !a.Started() {
		return RunReport{}, false, ErrNotStarted
	}
	run, ok, err := a.store.GetRun(ctx, runID)
	if err != nil || !ok {
		return RunReport{}, ok, err
	}
	generations, _, err := a.store.GetGenerations(ctx, runID)
	if err != nil {
		return RunReport{}, false, err
	}
	pretraining, _, err := a.store.GetPretraining(ctx, runID)
	if err != nil {
		return RunReport{}, false, err
	}
	return RunReport{Run: run, Generations: generations, Pretraining: pretraining}, true, nil
}

// BuildPopulation constructs one entrant per name. Each strategy owns a
// source derived from root, so a fixed root seed reproduces the whole
// population. Repeated names get " #2", " #3", ... labels, skipping any
// label already issued to an earlier entrant.
func BuildPopulation(registry *strategy.Registry, names []string, root *rand.Rand) ([]*strategy.Entrant, error) {
	if root == nil {
		return nil, fmt.Errorf("random source is required")
	}
	issued := make(map[string]bool, len(names))
	counts := make(map[string]int, len(names))
	population := make([]*strategy.Entrant, 0, len(names))
	for _, name := range names {
		s, err := registry.New(name, rand.New(rand.NewSource(root.Int63())))
		if err != nil {
			return nil, err
		}
		e := strategy.NewEntrant(s)
		e.Label = name
		for issued[e.Label] {
			counts[name]++
			e.Label = fmt.Sprintf("%s #%d", name, counts[name]+1)
		}
		issued[e.Label] = true
		population = append(population, e)
	}
	return population, nil
}

func toGenerationRecord(g evo.GenerationResult) model.GenerationRecord {
	standings := make([]model.StandingRecord, 0, len(g.Standings))
	for _, s := range g.Standings {
		standings = append(standings, model.StandingRecord{
			EntrantID: s.Entrant.ID.String(),
			Name:      s.Entrant.Label,
			Score:     int64(s.Standing.Score),
			Wins:      int64(s.Standing.Wins),
			Fitness:   s.Fitness,
			Learner:   s.Entrant.CanLearn(),
		})
	}
	return model.GenerationRecord{
		VersionedRecord: storage.CurrentVersion(),
		Generation:      g.Generation,
		Standings:       standings,
		EliminatedID:    g.Eliminated.Entrant.ID.String(),
		EliminatedName:  g.Eliminated.Entrant.Label,
	}
}

func labels(population []*strategy.Entrant) []string {
	out := make([]string, 0, len(population))
	for _, e := range population {
		out = append(out, e.Label)
	}
	return out
}
