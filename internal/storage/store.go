package storage

import (
	"context"
	"errors"

	"dilemma/internal/model"
)

var ErrUnsupportedStore = errors.New("unsupported store backend")

// Store persists run summaries together with their per-generation reports.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	// ListRuns returns every stored run, oldest first.
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveGenerations(ctx context.Context, runID string, generations []model.GenerationRecord) error
	GetGenerations(ctx context.Context, runID string) ([]model.GenerationRecord, bool, error)
	SavePretraining(ctx context.Context, runID string, records []model.PretrainRecord) error
	GetPretraining(ctx context.Context, runID string) ([]model.PretrainRecord, bool, error)
}
