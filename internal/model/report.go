package model

// ReportRequest describes the report query sent to the GA4 Data API.
// Metric and dimension order determines the value positions in every row.
type ReportRequest struct {
	Property   string
	StartDate  string
	EndDate    string
	Metrics    []string
	Dimensions []string
}

// ReportRow is one upstream row after typed parsing.
type ReportRow struct {
	Country                string
	PagePath               string
	ActiveUsers            MetricValue
	AverageSessionDuration MetricValue
	ScreenPageViews        MetricValue
}

// Report is the typed form of a GA4 runReport response.
type Report struct {
	Rows []ReportRow
}
