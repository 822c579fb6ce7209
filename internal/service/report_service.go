package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"

	"ga4-report-service/internal/ga4"
	"ga4-report-service/internal/model"
	"ga4-report-service/internal/repository"
)

// MaxSnapshotLimit bounds RecentSnapshots.
const MaxSnapshotLimit = 100

type ReportService interface {
	Summarize(ctx context.Context) (model.Summary, error)
	Overview(ctx context.Context) (model.Overview, error)
	RecentSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error)
	Status() model.ServiceStatus
}

// reportService fetches the overview report and reshapes it.
// A nil client means credentials were unavailable at startup; a nil
// repo and worker mean archiving is off.
type reportService struct {
	client     ga4.Client
	propertyID string
	timeout    time.Duration
	repo       repository.SnapshotRepository
	worker     SnapshotWorker
	now        func() time.Time
	newID      func() uuid.UUID
}

// NewReportService constructs a reportService.
func NewReportService(client ga4.Client, propertyID string, timeout time.Duration, repo repository.SnapshotRepository, worker SnapshotWorker) ReportService {
	return &reportService{
		client:     client,
		propertyID: propertyID,
		timeout:    timeout,
		repo:       repo,
		worker:     worker,
		now:        time.Now,
		newID:      uuid.New,
	}
}

// Summarize runs the report and returns the simplified result.
func (s *reportService) Summarize(ctx context.Context) (model.Summary, error) {
	req := ga4.NewReportRequest(s.propertyID)

	resp, err := s.runReport(ctx, req)
	if err != nil {
		return model.Summary{}, err
	}

	report, err := ParseReport(req, resp)
	if err != nil {
		return model.Summary{}, err
	}

	summary, avgSeconds := buildSummary(report)
	s.archive(summary, avgSeconds)
	return summary, nil
}

// Overview runs the report and returns the upstream response untouched.
func (s *reportService) Overview(ctx context.Context) (model.Overview, error) {
	resp, err := s.runReport(ctx, ga4.NewReportRequest(s.propertyID))
	if err != nil {
		return model.Overview{}, err
	}
	if resp == nil {
		return model.Overview{}, &MalformedResponseError{Reason: "empty response"}
	}

	return model.Overview{
		Success:    true,
		PropertyID: s.propertyID,
		Data:       resp,
	}, nil
}

// RecentSnapshots returns up to limit archived summaries, newest first.
func (s *reportService) RecentSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	if s.repo == nil {
		return nil, ErrArchiveDisabled
	}
	if limit < 1 || limit > MaxSnapshotLimit {
		return nil, &ValidationError{Message: "invalid limit"}
	}
	return s.repo.FetchRecent(ctx, limit)
}

func (s *reportService) Status() model.ServiceStatus {
	status := model.ServiceStatus{GA4: "ready", Archive: "enabled"}
	if s.client == nil {
		status.GA4 = "not_initialized"
	}
	if s.worker == nil {
		status.Archive = "disabled"
	}
	return status
}

func (s *reportService) runReport(ctx context.Context, req model.ReportRequest) (*analyticsdata.RunReportResponse, error) {
	if s.client == nil {
		return nil, ErrClientNotInitialized
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.RunReport(ctx, req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	return resp, nil
}

func (s *reportService) archive(summary model.Summary, avgSeconds float64) {
	if s.worker == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("marshal snapshot: %v", err)
		return
	}

	s.worker.Enqueue(model.Snapshot{
		ID:                   s.newID(),
		PropertyID:           s.propertyID,
		TotalUsers:           summary.TotalUsers.Uint(),
		AvgEngagementSeconds: avgSeconds,
		Summary:              payload,
		FetchedAt:            s.now().UTC(),
	})
}
