package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

// MetricValue is a metric value as GA4 returns it: a decimal string.
// An empty value is absent and renders as the number 0. Decoding is the
// inverse: a bare 0 becomes absent, while the string "0" is a value GA4
// reported and stays "0", so both forms re-encode unchanged.
type MetricValue string

// MarshalJSON implements json.Marshaler.
func (v MetricValue) MarshalJSON() ([]byte, error) {
	if v == "" {
		return []byte("0"), nil
	}
	return json.Marshal(string(v))
}

// UnmarshalJSON accepts both the string form and a bare number.
// A bare 0 decodes to the absent value.
func (v *MetricValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = MetricValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n == "0" {
		*v = ""
		return nil
	}
	*v = MetricValue(n)
	return nil
}

// Float parses the value, returning 0 when it is absent or not a finite number.
func (v MetricValue) Float() float64 {
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Uint parses the value as a count, returning 0 when it is not one.
func (v MetricValue) Uint() uint64 {
	n, err := strconv.ParseUint(string(v), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Summary is the simplified report returned by /refresh.
type Summary struct {
	TotalUsers        MetricValue      `json:"totalUsers"`
	AvgEngagementTime string           `json:"avgEngagementTime"`
	TopPages          []PageViews      `json:"topPages"`
	TrafficByCountry  []CountryTraffic `json:"trafficByCountry"`
}

// PageViews is one entry of Summary.TopPages.
type PageViews struct {
	Path  string      `json:"path"`
	Views MetricValue `json:"views"`
}

// CountryTraffic is one entry of Summary.TrafficByCountry.
type CountryTraffic struct {
	Country string      `json:"country"`
	Users   MetricValue `json:"users"`
}

// Overview wraps the raw upstream response for /ga4/overview.
type Overview struct {
	Success    bool                             `json:"success"`
	PropertyID string                           `json:"propertyId"`
	Data       *analyticsdata.RunReportResponse `json:"data"`
}

// OverviewError is the failure envelope of /ga4/overview.
type OverviewError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrorResponse is the failure envelope of every other route.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServiceStatus describes which optional parts of the service are usable.
type ServiceStatus struct {
	GA4     string `json:"ga4"`
	Archive string `json:"archive"`
}
