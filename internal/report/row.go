package report

import (
	"energy-insights/internal/model"
)

// BuildRow folds one site's summary and insights into a report row.
// A nil summary counts as zero energy over zero points. A nil insights
// payload leaves every statistical field nil; the row is still produced.
func BuildRow(site model.Site, summary *model.SiteSummary, insights *model.Insights) model.ReportRow {
	row := model.ReportRow{
		SiteID:   site.ID,
		SiteName: site.Name,
	}
	if summary != nil {
		row.TotalKWh = summary.TotalKWh
		row.Points = summary.Points
	}
	if row.Points > 0 {
		avg := row.TotalKWh / float64(row.Points)
		row.AvgKWhPerPoint = &avg
	}
	if insights != nil {
		row.DeviationPct = insights.DeviationPct
		row.ExpectedKWh = insights.ExpectedKWh
		row.CriticalHours = insights.CriticalHours
		row.ElevatedHours = insights.ElevatedHours
		row.BaselineLookbackDays = insights.BaselineLookbackDays
		row.StatsSource = insights.StatsSource
	}
	return row
}

// Input is everything fetched for one site of a report.
type Input struct {
	Site     model.Site
	Summary  *model.SiteSummary
	Insights *model.Insights
}

// BuildRows builds one row per input, in input order, for a report over
// windowHours.
func BuildRows(inputs []Input, windowHours float64) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(inputs))
	for _, in := range inputs {
		row := BuildRow(in.Site, in.Summary, in.Insights)
		row.WindowHours = windowHours
		rows = append(rows, row)
	}
	return rows
}

// Totals is the portfolio roll-up of a report.
type Totals struct {
	Sites            int      `json:"sites"`
	SitesWithData    int      `json:"sites_with_data"`
	SitesWithStats   int      `json:"sites_with_stats"`
	TotalKWh         float64  `json:"total_kwh"`
	TotalPoints      int      `json:"total_points"`
	CriticalHours    int      `json:"critical_hours"`
	ElevatedHours    int      `json:"elevated_hours"`
	MaxDeviationPct  *float64 `json:"max_deviation_pct"`
	MaxDeviationSite string   `json:"max_deviation_site,omitempty"`
}

// Summarize rolls rows up into portfolio totals.
func Summarize(rows []model.ReportRow) Totals {
	t := Totals{Sites: len(rows)}
	for _, r := range rows {
		t.TotalKWh += r.TotalKWh
		t.TotalPoints += r.Points
		if r.Points > 0 {
			t.SitesWithData++
		}
		if r.StatsSource != nil || r.DeviationPct != nil {
			t.SitesWithStats++
		}
		if r.CriticalHours != nil {
			t.CriticalHours += *r.CriticalHours
		}
		if r.ElevatedHours != nil {
			t.ElevatedHours += *r.ElevatedHours
		}
		if r.DeviationPct != nil && (t.MaxDeviationPct == nil || *r.DeviationPct > *t.MaxDeviationPct) {
			v := *r.DeviationPct
			t.MaxDeviationPct = &v
			t.MaxDeviationSite = r.SiteID
		}
	}
	return t
}
