package ga4

import (
	"context"
	"fmt"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"

	"ga4-report-service/internal/model"
)

// Dimension and metric names of the overview report.
const (
	DimensionCountry  = "country"
	DimensionPagePath = "pagePath"

	MetricActiveUsers            = "activeUsers"
	MetricAverageSessionDuration = "averageSessionDuration"
	MetricScreenPageViews        = "screenPageViews"
)

// Client runs reports against the GA4 Data API.
type Client interface {
	RunReport(ctx context.Context, req model.ReportRequest) (*analyticsdata.RunReportResponse, error)
}

type dataAPIClient struct {
	svc *analyticsdata.Service
}

// NewClient builds a Data API client authenticated with creds.
// Extra options are applied after the credentials.
func NewClient(ctx context.Context, creds *Credentials, opts ...option.ClientOption) (Client, error) {
	if creds == nil {
		return nil, ErrNoCredentials
	}

	clientOpts := []option.ClientOption{
		option.WithCredentialsJSON(creds.JSON()),
		option.WithScopes(analyticsdata.AnalyticsReadonlyScope),
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := analyticsdata.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("analyticsdata.NewService: %w", err)
	}
	return &dataAPIClient{svc: svc}, nil
}

// Connect decodes encodedKey and builds a client from it.
func Connect(ctx context.Context, encodedKey string, opts ...option.ClientOption) (Client, error) {
	creds, err := DecodeCredentials(encodedKey)
	if err != nil {
		return nil, err
	}
	return NewClient(ctx, creds, opts...)
}

func (c *dataAPIClient) RunReport(ctx context.Context, req model.ReportRequest) (*analyticsdata.RunReportResponse, error) {
	return c.svc.Properties.RunReport(req.Property, buildRunReportRequest(req)).Context(ctx).Do()
}

// NewReportRequest returns the fixed overview query for propertyID.
func NewReportRequest(propertyID string) model.ReportRequest {
	return model.ReportRequest{
		Property:  "properties/" + propertyID,
		StartDate: "7daysAgo",
		EndDate:   "today",
		Metrics: []string{
			MetricActiveUsers,
			MetricAverageSessionDuration,
			MetricScreenPageViews,
		},
		Dimensions: []string{
			DimensionCountry,
			DimensionPagePath,
		},
	}
}

func buildRunReportRequest(req model.ReportRequest) *analyticsdata.RunReportRequest {
	out := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{
			{StartDate: req.StartDate, EndDate: req.EndDate},
		},
	}
	for _, name := range req.Metrics {
		out.Metrics = append(out.Metrics, &analyticsdata.Metric{Name: name})
	}
	for _, name := range req.Dimensions {
		out.Dimensions = append(out.Dimensions, &analyticsdata.Dimension{Name: name})
	}
	return out
}
