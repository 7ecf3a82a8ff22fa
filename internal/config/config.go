// Package config resolves run settings from defaults, an optional JSON file,
// a .env file and DILEMMA_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"dilemma/internal/storage"
	"dilemma/internal/strategy"
)

var ErrInvalidConfig = errors.New("invalid config")

const DefaultDBPath = "dilemma.db"

// Run holds everything needed to start one evolution run. PretrainRounds of
// zero disables pretraining; Seed of zero seeds from the clock.
type Run struct {
	Strategies     []string `json:"strategies" env:"DILEMMA_STRATEGIES" envSeparator:","`
	Rounds         int      `json:"rounds" env:"DILEMMA_ROUNDS"`
	Repetitions    int      `json:"repetitions" env:"DILEMMA_REPETITIONS"`
	PretrainRounds int      `json:"pretrain_rounds" env:"DILEMMA_PRETRAIN_ROUNDS"`
	ScoreWeight    float64  `json:"score_weight" env:"DILEMMA_SCORE_WEIGHT"`
	WinWeight      float64  `json:"win_weight" env:"DILEMMA_WIN_WEIGHT"`
	Seed           int64    `json:"seed" env:"DILEMMA_SEED"`
	StoreKind      string   `json:"store" env:"DILEMMA_STORE"`
	DBPath         string   `json:"db_path" env:"DILEMMA_DB_PATH"`
	LogLevel       string   `json:"log_level" env:"DILEMMA_LOG_LEVEL"`
}

func Default() Run {
	return Run{
		Strategies:     strategy.DefaultRegistry().Names(),
		Rounds:         200,
		Repetitions:    1000,
		PretrainRounds: 10000,
		ScoreWeight:    0.7,
		WinWeight:      0.3,
		StoreKind:      storage.DefaultStoreKind(),
		DBPath:         DefaultDBPath,
		LogLevel:       "info",
	}
}

// Load layers a JSON file (when path is non-empty), then .env, then the
// process environment over the defaults.
func Load(path string) (Run, error) {
	cfg := Default()
	if path != "" {
		var err error
		cfg, err = LoadFile(path, cfg)
		if err != nil {
			return Run{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := LoadDotEnv(); err != nil {
		return Run{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Run{}, err
	}
	return cfg, nil
}

// LoadFile overlays the keys present in the JSON file at path onto base.
func LoadFile(path string, base Run) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Run{}, err
	}

	cfg := base
	if v, ok := asStrings(raw["strategies"]); ok {
		cfg.Strategies = v
	}
	if v, ok := asInt(raw["rounds"]); ok {
		cfg.Rounds = v
	}
	if v, ok := asInt(raw["repetitions"]); ok {
		cfg.Repetitions = v
	}
	if v, ok := asInt(raw["pretrain_rounds"]); ok {
		cfg.PretrainRounds = v
	}
	if v, ok := asFloat64(raw["score_weight"]); ok {
		cfg.ScoreWeight = v
	}
	if v, ok := asFloat64(raw["win_weight"]); ok {
		cfg.WinWeight = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		cfg.Seed = v
	}
	if v, ok := asString(raw["store"]); ok {
		cfg.StoreKind = v
	}
	if v, ok := asString(raw["db_path"]); ok {
		cfg.DBPath = v
	}
	if v, ok := asString(raw["log_level"]); ok {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// LoadDotEnv exports variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields whose DILEMMA_* variable is set.
func ApplyEnv(cfg *Run) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks ranges and that every roster name is known to registry.
func (c Run) Validate(registry *strategy.Registry) error {
	if c.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be > 0, got %d", ErrInvalidConfig, c.Rounds)
	}
	if c.Repetitions <= 0 {
		return fmt.Errorf("%w: repetitions must be > 0, got %d", ErrInvalidConfig, c.Repetitions)
	}
	if c.PretrainRounds < 0 {
		return fmt.Errorf("%w: pretrain rounds must be >= 0, got %d", ErrInvalidConfig, c.PretrainRounds)
	}
	if c.ScoreWeight < 0 || c.WinWeight < 0 {
		return fmt.Errorf("%w: weights must be >= 0", ErrInvalidConfig)
	}
	if len(c.Strategies) < 2 {
		return fmt.Errorf("%w: at least two strategies are required, got %d", ErrInvalidConfig, len(c.Strategies))
	}
	if registry == nil {
		registry = strategy.DefaultRegistry()
	}
	for _, name := range c.Strategies {
		if !registry.Has(name) {
			return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, strategy.ErrUnknownStrategy, name)
		}
	}
	return nil
}

// ParseStrategies splits a comma separated roster, dropping blanks.
func ParseStrategies(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asStrings(v any) ([]string, bool) {
	switch x := v.(type) {
	case string:
		return ParseStrategies(x), true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
