package service

import (
	"fmt"
	"math/big"
	"strconv"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"

	"ga4-report-service/internal/ga4"
	"ga4-report-service/internal/model"
)

// topRowsLimit caps topPages and trafficByCountry.
const topRowsLimit = 5

// defaults is the single policy for values a row does not carry.
// Missing metrics stay empty and render as 0.
var defaults = struct {
	Country  string
	PagePath string
}{
	Country:  "Unknown",
	PagePath: "N/A",
}

// columns holds the value positions of each field, taken from the request.
type columns struct {
	country            int
	pagePath           int
	activeUsers        int
	avgSessionDuration int
	screenPageViews    int
}

func resolveColumns(req model.ReportRequest) (columns, error) {
	var (
		cols columns
		err  error
	)
	lookup := func(names []string, name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		if err == nil {
			err = fmt.Errorf("report request has no %q column", name)
		}
		return -1
	}

	cols.country = lookup(req.Dimensions, ga4.DimensionCountry)
	cols.pagePath = lookup(req.Dimensions, ga4.DimensionPagePath)
	cols.activeUsers = lookup(req.Metrics, ga4.MetricActiveUsers)
	cols.avgSessionDuration = lookup(req.Metrics, ga4.MetricAverageSessionDuration)
	cols.screenPageViews = lookup(req.Metrics, ga4.MetricScreenPageViews)
	return cols, err
}

// ParseReport maps a runReport response onto typed rows. Headers, when the
// response carries them, must name the requested columns in request order.
func ParseReport(req model.ReportRequest, resp *analyticsdata.RunReportResponse) (model.Report, error) {
	if resp == nil {
		return model.Report{}, &MalformedResponseError{Reason: "empty response"}
	}

	cols, err := resolveColumns(req)
	if err != nil {
		return model.Report{}, err
	}

	if err := checkHeaders(req, resp); err != nil {
		return model.Report{}, err
	}

	rows := make([]model.ReportRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		var dims []*analyticsdata.DimensionValue
		var mets []*analyticsdata.MetricValue
		if r != nil {
			dims, mets = r.DimensionValues, r.MetricValues
		}
		rows = append(rows, model.ReportRow{
			Country:                dimensionAt(dims, cols.country, defaults.Country),
			PagePath:               dimensionAt(dims, cols.pagePath, defaults.PagePath),
			ActiveUsers:            metricAt(mets, cols.activeUsers),
			AverageSessionDuration: metricAt(mets, cols.avgSessionDuration),
			ScreenPageViews:        metricAt(mets, cols.screenPageViews),
		})
	}
	return model.Report{Rows: rows}, nil
}

func checkHeaders(req model.ReportRequest, resp *analyticsdata.RunReportResponse) error {
	if len(resp.DimensionHeaders) > 0 {
		names := make([]string, 0, len(resp.DimensionHeaders))
		for _, h := range resp.DimensionHeaders {
			if h != nil {
				names = append(names, h.Name)
			}
		}
		if !equalNames(names, req.Dimensions) {
			return &MalformedResponseError{Reason: fmt.Sprintf("dimension headers %v, want %v", names, req.Dimensions)}
		}
	}
	if len(resp.MetricHeaders) > 0 {
		names := make([]string, 0, len(resp.MetricHeaders))
		for _, h := range resp.MetricHeaders {
			if h != nil {
				names = append(names, h.Name)
			}
		}
		if !equalNames(names, req.Metrics) {
			return &MalformedResponseError{Reason: fmt.Sprintf("metric headers %v, want %v", names, req.Metrics)}
		}
	}
	return nil
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dimensionAt(values []*analyticsdata.DimensionValue, i int, fallback string) string {
	if i < 0 || i >= len(values) || values[i] == nil {
		return fallback
	}
	return values[i].Value
}

func metricAt(values []*analyticsdata.MetricValue, i int) model.MetricValue {
	if i < 0 || i >= len(values) || values[i] == nil {
		return ""
	}
	return model.MetricValue(values[i].Value)
}

// BuildSummary reshapes a typed report into the simplified result.
func BuildSummary(report model.Report) model.Summary {
	summary, _ := buildSummary(report)
	return summary
}

// buildSummary also returns the engagement time exactly as rounded for the
// summary.
func buildSummary(report model.Report) (model.Summary, float64) {
	summary := model.Summary{
		TopPages:         make([]model.PageViews, 0, topRowsLimit),
		TrafficByCountry: make([]model.CountryTraffic, 0, topRowsLimit),
	}

	var avgSeconds float64
	if len(report.Rows) > 0 {
		first := report.Rows[0]
		summary.TotalUsers = first.ActiveUsers
		summary.AvgEngagementTime, avgSeconds = formatSeconds(first.AverageSessionDuration.Float())
	} else {
		summary.AvgEngagementTime, avgSeconds = formatSeconds(0)
	}

	top := report.Rows
	if len(top) > topRowsLimit {
		top = top[:topRowsLimit]
	}
	for _, row := range top {
		summary.TopPages = append(summary.TopPages, model.PageViews{Path: row.PagePath, Views: row.ScreenPageViews})
		summary.TrafficByCountry = append(summary.TrafficByCountry, model.CountryTraffic{Country: row.Country, Users: row.ActiveUsers})
	}
	return summary, avgSeconds
}

// formatSeconds renders v with one decimal and an "s" suffix, and returns
// the rounded value. Exact ties round away from zero, so 8.25 becomes "8.3s".
func formatSeconds(v float64) (string, float64) {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	scaled := new(big.Float).SetPrec(256).SetFloat64(v)
	scaled.Mul(scaled, big.NewFloat(10))
	scaled.Add(scaled, big.NewFloat(0.5))
	tenths, _ := scaled.Int(nil)

	whole, frac := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	digits := sign + whole.String() + "." + frac.String()

	rounded, _ := strconv.ParseFloat(digits, 64)
	if rounded == 0 {
		rounded = 0 // drop the sign of -0.0
	}
	return digits + "s", rounded
}
