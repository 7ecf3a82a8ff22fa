// Package stats ranks stored generation reports and exports them as files.
package stats

import (
	"sort"

	"dilemma/internal/model"
	"dilemma/internal/nn"
)

// Leaderboard returns standings ordered by score, then wins, both
// descending, with names breaking remaining ties.
func Leaderboard(standings []model.StandingRecord) []model.StandingRecord {
	ranked := append([]model.StandingRecord(nil), standings...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

type FitnessSummary struct {
	Best float64 `json:"best"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

func SummarizeFitness(standings []model.StandingRecord) FitnessSummary {
	if len(standings) == 0 {
		return FitnessSummary{}
	}
	values := make([]float64, 0, len(standings))
	best := standings[0].Fitness
	for _, s := range standings {
		values = append(values, s.Fitness)
		if s.Fitness > best {
			best = s.Fitness
		}
	}
	mean, _ := nn.Avg(values)
	std, _ := nn.Std(values)
	return FitnessSummary{Best: best, Mean: mean, Std: std}
}
