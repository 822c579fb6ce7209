package mockservice

import (
	"context"

	"ga4-report-service/internal/model"
	"ga4-report-service/internal/service"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

var _ service.ReportService = &Service{}

func (m *Service) Summarize(ctx context.Context) (model.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Summary), args.Error(1)
}

func (m *Service) Overview(ctx context.Context) (model.Overview, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Overview), args.Error(1)
}

func (m *Service) RecentSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	args := m.Called(ctx, limit)
	snapshots, _ := args.Get(0).([]model.Snapshot)
	return snapshots, args.Error(1)
}

func (m *Service) Status() model.ServiceStatus {
	args := m.Called()
	return args.Get(0).(model.ServiceStatus)
}
