//go:build sqlite

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandSQLitePersistsAcrossCommands(t *testing.T) {
	workdir := t.TempDir()
	dbPath := filepath.Join(workdir, "dilemma.db")
	outDir := filepath.Join(workdir, "exports")
	ctx := context.Background()

	_, err := captureStdout(func() error {
		return run(ctx, []string{
			"run",
			"--store", "sqlite",
			"--db-path", dbPath,
			"--strategies", "TitForTat,QLearning,NeuralSingleLayer",
			"--rounds", "20",
			"--repetitions", "2",
			"--pretrain-rounds", "50",
			"--seed", "11",
			"--log-level", "error",
		})
	})
	require.NoError(t, err)
	assert.FileExists(t, dbPath)

	runsOut, err := captureStdout(func() error {
		return run(ctx, []string{"runs", "--store", "sqlite", "--db-path", dbPath})
	})
	require.NoError(t, err)
	assert.Contains(t, runsOut, "seed=11 population=3 generations=2")

	reportOut, err := captureStdout(func() error {
		return run(ctx, []string{"report", "--store", "sqlite", "--db-path", dbPath, "--latest"})
	})
	require.NoError(t, err)
	assert.Contains(t, reportOut, "pretrain learner=QLearning opponent=TitForTat")
	assert.Contains(t, reportOut, "survivor=")

	exportOut, err := captureStdout(func() error {
		return run(ctx, []string{"export", "--store", "sqlite", "--db-path", dbPath, "--latest", "--out", outDir})
	})
	require.NoError(t, err)
	assert.Contains(t, exportOut, "exported run_id=")
}
