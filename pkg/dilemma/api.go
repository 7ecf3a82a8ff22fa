// Package dilemma is the public entry point for running iterated prisoner's
// dilemma elimination tournaments and reading back their stored reports.
package dilemma

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"dilemma/internal/config"
	"dilemma/internal/model"
	"dilemma/internal/platform"
	"dilemma/internal/stats"
	"dilemma/internal/storage"
)

const defaultExportsDir = "exports"

var ErrRunNotFound = errors.New("run not found")

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
	Logger     logrus.FieldLogger
}

type Client struct {
	store  storage.Store
	arena  *platform.Arena
	logger logrus.FieldLogger

	exportsDir string
}

// RunRequest describes one run. Zero values take the reference defaults:
// the full roster, 200 rounds, 1000 repetitions, 10000 pretraining rounds
// and a 0.7/0.3 score/wins blend. A zero Seed seeds from the clock.
type RunRequest struct {
	Strategies         []string
	Rounds             int
	Repetitions        int
	PretrainRounds     int
	DisablePretraining bool
	ScoreWeight        float64
	WinWeight          float64
	Seed               int64
}

type StandingItem struct {
	EntrantID string
	Name      string
	Score     int64
	Wins      int64
	Fitness   float64
	Learner   bool
}

type GenerationSummary struct {
	Generation int
	// Leaderboard is sorted by score and wins, descending.
	Leaderboard []StandingItem
	Eliminated  string
	MeanFitness float64
	StdFitness  float64
}

type PretrainItem struct {
	Learner       string
	Opponent      string
	Score         int
	OpponentScore int
}

type RunSummary struct {
	RunID              string
	CreatedAtUTC       string
	Seed               int64
	Roster             []string
	Survivor           string
	SurvivorParameters []float64
	Generations        []GenerationSummary
	Pretraining        []PretrainItem
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Seed         int64
	Population   int
	Generations  int
	Survivor     string
}

type ReportRequest struct {
	RunID  string
	Latest bool
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		logger:     opts.Logger,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	_, err := c.ensureArena(ctx)
	return err
}

// Strategies lists every registered strategy name in roster order.
func (c *Client) Strategies() []string {
	if c.arena != nil {
		return c.arena.Registry().Names()
	}
	return config.Default().Strategies
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	arena, err := c.ensureArena(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	cfg := config.Default()
	if len(req.Strategies) > 0 {
		cfg.Strategies = append([]string(nil), req.Strategies...)
	}
	if req.Rounds > 0 {
		cfg.Rounds = req.Rounds
	}
	if req.Repetitions > 0 {
		cfg.Repetitions = req.Repetitions
	}
	if req.PretrainRounds > 0 {
		cfg.PretrainRounds = req.PretrainRounds
	}
	if req.DisablePretraining {
		cfg.PretrainRounds = 0
	}
	if req.ScoreWeight != 0 || req.WinWeight != 0 {
		cfg.ScoreWeight = req.ScoreWeight
		cfg.WinWeight = req.WinWeight
	}
	cfg.Seed = req.Seed

	outcome, err := arena.Run(ctx, cfg)
	if err != nil {
		return RunSummary{}, err
	}
	return summarize(outcome.Record, outcome.Generations, outcome.Pretraining), nil
}

// Runs lists stored runs, newest first.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	arena, err := c.ensureArena(ctx)
	if err != nil {
		return nil, err
	}
	runs, err := arena.Runs(ctx)
	if err != nil {
		return nil, err
	}
	if req.Limit > 0 && len(runs) > req.Limit {
		runs = runs[:req.Limit]
	}

	out := make([]RunItem, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunItem{
			RunID:        r.ID,
			CreatedAtUTC: r.CreatedAtUTC,
			Seed:         r.Seed,
			Population:   len(r.Roster),
			Generations:  r.Generations,
			Survivor:     r.Survivor,
		})
	}
	return out, nil
}

func (c *Client) Report(ctx context.Context, req ReportRequest) (RunSummary, error) {
	report, err := c.loadReport(ctx, req.RunID, req.Latest)
	if err != nil {
		return RunSummary{}, err
	}
	return summarize(report.Run, report.Generations, report.Pretraining), nil
}

// Export writes a stored run as JSON and CSV files under OutDir/<run id>.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}
	report, err := c.loadReport(ctx, req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}
	dir, err := stats.WriteRunArtifacts(req.OutDir, stats.RunArtifacts{
		Run:         report.Run,
		Generations: report.Generations,
		Pretraining: report.Pretraining,
	})
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: report.Run.ID, Directory: filepath.Clean(dir)}, nil
}

func (c *Client) loadReport(ctx context.Context, runID string, latest bool) (platform.RunReport, error) {
	if runID != "" && latest {
		return platform.RunReport{}, errors.New("use either run id or latest")
	}
	if runID == "" && !latest {
		return platform.RunReport{}, errors.New("run id or latest is required")
	}
	arena, err := c.ensureArena(ctx)
	if err != nil {
		return platform.RunReport{}, err
	}
	if latest {
		runs, err := arena.Runs(ctx)
		if err != nil {
			return platform.RunReport{}, err
		}
		if len(runs) == 0 {
			return platform.RunReport{}, fmt.Errorf("%w: no runs stored", ErrRunNotFound)
		}
		runID = runs[0].ID
	}

	report, ok, err := arena.Report(ctx, runID)
	if err != nil {
		return platform.RunReport{}, err
	}
	if !ok {
		return platform.RunReport{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return report, nil
}

func (c *Client) ensureArena(ctx context.Context) (*platform.Arena, error) {
	if c.arena != nil {
		return c.arena, nil
	}
	a := platform.NewArena(platform.Config{Store: c.store, Logger: c.logger})
	if err := a.Init(ctx); err != nil {
		return nil, err
	}
	c.arena = a
	return c.arena, nil
}

func summarize(run model.RunRecord, generations []model.GenerationRecord, pretraining []model.PretrainRecord) RunSummary {
	summary := RunSummary{
		RunID:              run.ID,
		CreatedAtUTC:       run.CreatedAtUTC,
		Seed:               run.Seed,
		Roster:             append([]string(nil), run.Roster...),
		Survivor:           run.Survivor,
		SurvivorParameters: append([]float64(nil), run.SurvivorParameters...),
	}
	for _, g := range generations {
		fitness := stats.SummarizeFitness(g.Standings)
		item := GenerationSummary{
			Generation:  g.Generation,
			Eliminated:  g.EliminatedName,
			MeanFitness: fitness.Mean,
			StdFitness:  fitness.Std,
		}
		for _, s := range stats.Leaderboard(g.Standings) {
			item.Leaderboard = append(item.Leaderboard, StandingItem{
				EntrantID: s.EntrantID,
				Name:      s.Name,
				Score:     s.Score,
				Wins:      s.Wins,
				Fitness:   s.Fitness,
				Learner:   s.Learner,
			})
		}
		summary.Generations = append(summary.Generations, item)
	}
	for _, p := range pretraining {
		summary.Pretraining = append(summary.Pretraining, PretrainItem{
			Learner:       p.Name,
			Opponent:      p.Opponent,
			Score:         p.Score,
			OpponentScore: p.OpponentScore,
		})
	}
	return summary
}
