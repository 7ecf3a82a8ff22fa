package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"dilemma/internal/model"
)

type RunArtifacts struct {
	Run         model.RunRecord
	Generations []model.GenerationRecord
	Pretraining []model.PretrainRecord
}

// WriteRunArtifacts writes one run under outDir/<run id>/ and returns that
// directory.
func WriteRunArtifacts(outDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(outDir, artifacts.Run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "run.json"), artifacts.Run); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "generations.json"), artifacts.Generations); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "pretraining.json"), artifacts.Pretraining); err != nil {
		return "", err
	}
	if err := WriteLeaderboardCSV(filepath.Join(runDir, "leaderboard.csv"), artifacts.Generations); err != nil {
		return "", err
	}
	return runDir, nil
}

// WriteLeaderboardCSV writes one row per entrant per generation, ranked
// within each generation.
func WriteLeaderboardCSV(path string, generations []model.GenerationRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"generation", "rank", "name", "score", "wins", "fitness", "eliminated"}); err != nil {
		return err
	}
	for _, g := range generations {
		for i, s := range Leaderboard(g.Standings) {
			if err := writer.Write([]string{
				strconv.Itoa(g.Generation),
				strconv.Itoa(i + 1),
				s.Name,
				strconv.FormatInt(s.Score, 10),
				strconv.FormatInt(s.Wins, 10),
				strconv.FormatFloat(s.Fitness, 'f', -1, 64),
				strconv.FormatBool(s.EntrantID == g.EliminatedID),
			}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
