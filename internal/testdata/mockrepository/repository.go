package mockrepository

import (
	"context"

	"ga4-report-service/internal/model"
	"ga4-report-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

// Interface compliance check
var _ repository.SnapshotRepository = &Repository{}

func (m *Repository) CreateBatch(ctx context.Context, snapshots []model.Snapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func (m *Repository) FetchRecent(ctx context.Context, limit int) ([]model.Snapshot, error) {
	args := m.Called(ctx, limit)
	snapshots, _ := args.Get(0).([]model.Snapshot)
	return snapshots, args.Error(1)
}
