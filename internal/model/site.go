package model

// Site is the minimal site metadata the reports need.
type Site struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone,omitempty"`
}

// SiteSummary is the timeseries summary of a site over a window.
type SiteSummary struct {
	TotalKWh float64 `json:"total_kwh"`
	Points   int     `json:"points"`
}

// Insights holds the statistical fields produced by the backend's analytics.
// Each field is independently nullable.
type Insights struct {
	DeviationPct         *float64 `json:"deviation_pct"`
	ExpectedKWh          *float64 `json:"expected_kwh"`
	CriticalHours        *int     `json:"critical_hours"`
	ElevatedHours        *int     `json:"elevated_hours"`
	BaselineLookbackDays *int     `json:"baseline_lookback_days"`
	StatsSource          *string  `json:"stats_source"`
}

// ReportRow is one row per site for a fixed reporting window.
type ReportRow struct {
	SiteID         string   `json:"site_id"`
	SiteName       string   `json:"site_name"`
	WindowHours    float64  `json:"window_hours"`
	TotalKWh       float64  `json:"total_kwh"`
	Points         int      `json:"points"`
	AvgKWhPerPoint *float64 `json:"avg_kwh_per_point"`

	DeviationPct         *float64 `json:"deviation_pct"`
	ExpectedKWh          *float64 `json:"expected_kwh"`
	CriticalHours        *int     `json:"critical_hours"`
	ElevatedHours        *int     `json:"elevated_hours"`
	BaselineLookbackDays *int     `json:"baseline_lookback_days"`
	StatsSource          *string  `json:"stats_source"`
}
