package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dilemma/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	run := sampleRun("run-1", "2026-01-02T00:00:00.000000000Z")
	run.SurvivorParameters = []float64{0.5, -0.25}

	data, err := EncodeRun(run)
	require.NoError(t, err)
	decoded, err := DecodeRun(data)
	require.NoError(t, err)
	assert.Equal(t, run.ID, decoded.ID)
	assert.Equal(t, run.Seed, decoded.Seed)
	assert.Equal(t, []float64{0.5, -0.25}, decoded.SurvivorParameters)
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	run := sampleRun("run-1", "t")
	run.SchemaVersion = CurrentSchemaVersion + 1
	data, err := EncodeRun(run)
	require.NoError(t, err)

	_, err = DecodeRun(data)
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

func TestDecodeGenerationsRejectsVersionMismatch(t *testing.T) {
	records := sampleGenerations()
	records = append(records, model.GenerationRecord{Generation: 2})
	data, err := EncodeGenerations(records)
	require.NoError(t, err)

	_, err = DecodeGenerations(data)
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

func TestDecodePretrainingRejectsMalformedPayload(t *testing.T) {
	_, err := DecodePretraining([]byte("{not json"))
	assert.Error(t, err)
}

func TestSortRunsUsesParsedTime(t *testing.T) {
	// Trimmed fractional seconds sort wrongly as text: 'Z' > '.'.
	runs := []model.RunRecord{
		sampleRun("half", "2026-01-02T03:04:05.5Z"),
		sampleRun("whole", "2026-01-02T03:04:05Z"),
		sampleRun("fixed", "2026-01-02T03:04:05.250000000Z"),
		sampleRun("garbled", "not a time"),
	}
	sortRuns(runs)

	ids := make([]string, 0, len(runs))
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"garbled", "whole", "fixed", "half"}, ids)
}
