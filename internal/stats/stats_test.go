package stats

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dilemma/internal/model"
)

func sampleGeneration() model.GenerationRecord {
	return model.GenerationRecord{
		Generation: 1,
		Standings: []model.StandingRecord{
			{EntrantID: "a", Name: "AlwaysCooperate", Score: 30, Wins: 0, Fitness: 21},
			{EntrantID: "b", Name: "NeverCooperate", Score: 64, Wins: 2, Fitness: 45.4},
			{EntrantID: "c", Name: "TitForTat", Score: 39, Wins: 0, Fitness: 27.3},
			{EntrantID: "d", Name: "Random", Score: 39, Wins: 1, Fitness: 27.6},
		},
		EliminatedID:   "a",
		EliminatedName: "AlwaysCooperate",
	}
}

func names(standings []model.StandingRecord) []string {
	out := make([]string, 0, len(standings))
	for _, s := range standings {
		out = append(out, s.Name)
	}
	return out
}

func TestLeaderboardOrdersByScoreThenWinsThenName(t *testing.T) {
	ranked := Leaderboard(sampleGeneration().Standings)
	assert.Equal(t, []string{"NeverCooperate", "Random", "TitForTat", "AlwaysCooperate"}, names(ranked))

	tied := Leaderboard([]model.StandingRecord{{Name: "b", Score: 1}, {Name: "a", Score: 1}})
	assert.Equal(t, []string{"a", "b"}, names(tied), "name tie-break")
}

func TestLeaderboardDoesNotReorderInput(t *testing.T) {
	g := sampleGeneration()
	_ = Leaderboard(g.Standings)
	assert.Equal(t, "AlwaysCooperate", g.Standings[0].Name)
}

func TestSummarizeFitness(t *testing.T) {
	summary := SummarizeFitness([]model.StandingRecord{{Fitness: 1}, {Fitness: 2}, {Fitness: 3}})
	assert.Equal(t, 3.0, summary.Best)
	assert.Equal(t, 2.0, summary.Mean)
	assert.InDelta(t, math.Sqrt(2.0/3.0), summary.Std, 1e-12)
	assert.Equal(t, FitnessSummary{}, SummarizeFitness(nil))
}

func TestWriteRunArtifacts(t *testing.T) {
	outDir := t.TempDir()
	artifacts := RunArtifacts{
		Run:         model.RunRecord{ID: "run-123", Survivor: "NeverCooperate", Generations: 1},
		Generations: []model.GenerationRecord{sampleGeneration()},
	}

	runDir, err := WriteRunArtifacts(outDir, artifacts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "run-123"), runDir)
	for _, file := range []string{"run.json", "generations.json", "pretraining.json", "leaderboard.csv"} {
		assert.FileExists(t, filepath.Join(runDir, file))
	}

	data, err := os.ReadFile(filepath.Join(runDir, "run.json"))
	require.NoError(t, err)
	var run model.RunRecord
	require.NoError(t, json.Unmarshal(data, &run))
	assert.Equal(t, "NeverCooperate", run.Survivor)

	file, err := os.Open(filepath.Join(runDir, "leaderboard.csv"))
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5, "header plus 4 rows")
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "NeverCooperate", rows[1][2])
	assert.Equal(t, "AlwaysCooperate", rows[4][2], "eliminated entrant ranks last")
	assert.Equal(t, "true", rows[4][6], "eliminated entrant is flagged")
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	_, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{})
	assert.Error(t, err)
}
