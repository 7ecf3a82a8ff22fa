package storage

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"dilemma/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// CurrentVersion stamps records written by this build.
func CurrentVersion() model.VersionedRecord {
	return model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeGenerations(records []model.GenerationRecord) ([]byte, error) {
	return json.Marshal(records)
}

func DecodeGenerations(data []byte) ([]model.GenerationRecord, error) {
	var records []model.GenerationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := checkVersion(record.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func EncodePretraining(records []model.PretrainRecord) ([]byte, error) {
	return json.Marshal(records)
}

func DecodePretraining(data []byte) ([]model.PretrainRecord, error) {
	var records []model.PretrainRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := checkVersion(record.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}

// sortRuns orders runs oldest first by parsed creation time. Records whose
// timestamp does not parse sort before all others.
func sortRuns(runs []model.RunRecord) {
	created := make(map[string]time.Time, len(runs))
	for _, run := range runs {
		if ts, err := time.Parse(time.RFC3339Nano, run.CreatedAtUTC); err == nil {
			created[run.ID] = ts
		}
	}
	sort.SliceStable(runs, func(i, j int) bool {
		ti, tj := created[runs[i].ID], created[runs[j].ID]
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return runs[i].ID < runs[j].ID
	})
}
