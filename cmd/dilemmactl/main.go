package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"dilemma/internal/config"
	"dilemma/internal/storage"
	"dilemma/internal/strategy"
	api "dilemma/pkg/dilemma"
)

const exportsDir = "exports"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "report":
		return runReport(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "strategies":
		return runStrategies(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	strategies := fs.String("strategies", "", "comma separated roster (default: every registered strategy)")
	rounds := fs.Int("rounds", 200, "rounds per match")
	repetitions := fs.Int("repetitions", 1000, "round-robin repetitions per generation")
	pretrainRounds := fs.Int("pretrain-rounds", 10000, "pretraining rounds per panel opponent (0 disables)")
	scoreWeight := fs.Float64("score-weight", 0.7, "fitness weight of accumulated score")
	winWeight := fs.Float64("win-weight", 0.3, "fitness weight of match wins")
	seed := fs.Int64("seed", 0, "rng seed (0 seeds from the clock)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", config.DefaultDBPath, "sqlite database path")
	logLevel := fs.String("log-level", "info", "log level: debug|info|warn|error")
	jsonOut := fs.Bool("json", false, "emit the run summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	overrideFromFlags(&cfg, setFlags, map[string]any{
		"strategies":      *strategies,
		"rounds":          *rounds,
		"repetitions":     *repetitions,
		"pretrain-rounds": *pretrainRounds,
		"score-weight":    *scoreWeight,
		"win-weight":      *winWeight,
		"seed":            *seed,
		"store":           *storeKind,
		"db-path":         *dbPath,
		"log-level":       *logLevel,
	})
	if err := cfg.Validate(strategy.DefaultRegistry()); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	client, err := api.New(api.Options{StoreKind: cfg.StoreKind, DBPath: cfg.DBPath, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, api.RunRequest{
		Strategies:         cfg.Strategies,
		Rounds:             cfg.Rounds,
		Repetitions:        cfg.Repetitions,
		PretrainRounds:     cfg.PretrainRounds,
		DisablePretraining: cfg.PretrainRounds == 0,
		ScoreWeight:        cfg.ScoreWeight,
		WinWeight:          cfg.WinWeight,
		Seed:               cfg.Seed,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(summary)
	}
	printSummary(summary)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", config.DefaultDBPath, "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := api.New(api.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, api.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(runs)
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("run_id=%s created_at=%s seed=%d population=%d generations=%d survivor=%s\n",
			r.RunID,
			r.CreatedAtUTC,
			r.Seed,
			r.Population,
			r.Generations,
			r.Survivor,
		)
	}
	return nil
}

func runReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "report the most recent run")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", config.DefaultDBPath, "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("report requires --run-id or --latest")
	}

	client, err := api.New(api.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Report(ctx, api.ReportRequest{RunID: *runID, Latest: *latest})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(summary)
	}
	printSummary(summary)
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "export the most recent run")
	outDir := fs.String("out", exportsDir, "export output directory")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", config.DefaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("export requires --run-id or --latest")
	}

	client, err := api.New(api.Options{StoreKind: *storeKind, DBPath: *dbPath, ExportsDir: *outDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	exported, err := client.Export(ctx, api.ExportRequest{RunID: *runID, Latest: *latest})
	if err != nil {
		return err
	}
	fmt.Printf("exported run_id=%s to=%s\n", exported.RunID, exported.Directory)
	return nil
}

func runStrategies(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("strategies", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, name := range strategy.DefaultRegistry().Names() {
		fmt.Println(name)
	}
	return nil
}

func printSummary(summary api.RunSummary) {
	fmt.Printf("run_id=%s seed=%d population=%d\n", summary.RunID, summary.Seed, len(summary.Roster))
	for _, p := range summary.Pretraining {
		fmt.Printf("pretrain learner=%s opponent=%s score=%d opponent_score=%d\n", p.Learner, p.Opponent, p.Score, p.OpponentScore)
	}
	for _, g := range summary.Generations {
		fmt.Printf("generation=%d eliminated=%s mean_fitness=%.3f std_fitness=%.3f\n", g.Generation, g.Eliminated, g.MeanFitness, g.StdFitness)
		for i, s := range g.Leaderboard {
			fmt.Printf("  %2d. %-24s score=%d wins=%d fitness=%.3f\n", i+1, s.Name, s.Score, s.Wins, s.Fitness)
		}
	}
	fmt.Printf("survivor=%s\n", summary.Survivor)
}

func newLogger(level string) (*logrus.Logger, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", config.ErrInvalidConfig, level)
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger, nil
}

func writeJSON(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: dilemmactl <%s> [flags]", msg, strings.Join([]string{"run", "runs", "report", "export", "strategies"}, "|"))
}
