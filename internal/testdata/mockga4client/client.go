package mockga4client

import (
	"context"

	"ga4-report-service/internal/ga4"
	"ga4-report-service/internal/model"

	"github.com/stretchr/testify/mock"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

type Client struct {
	mock.Mock
}

var _ ga4.Client = &Client{}

func (m *Client) RunReport(ctx context.Context, req model.ReportRequest) (*analyticsdata.RunReportResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*analyticsdata.RunReportResponse)
	return resp, args.Error(1)
}
