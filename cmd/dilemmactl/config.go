package main

import "dilemma/internal/config"

// overrideFromFlags applies only the flags the user actually set, so file
// and environment values survive flag defaults.
func overrideFromFlags(cfg *config.Run, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "strategies":
			cfg.Strategies = config.ParseStrategies(v.(string))
		case "rounds":
			cfg.Rounds = v.(int)
		case "repetitions":
			cfg.Repetitions = v.(int)
		case "pretrain-rounds":
			cfg.PretrainRounds = v.(int)
		case "score-weight":
			cfg.ScoreWeight = v.(float64)
		case "win-weight":
			cfg.WinWeight = v.(float64)
		case "seed":
			cfg.Seed = v.(int64)
		case "store":
			cfg.StoreKind = v.(string)
		case "db-path":
			cfg.DBPath = v.(string)
		case "log-level":
			cfg.LogLevel = v.(string)
		}
	}
}
