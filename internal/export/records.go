package export

import (
	"time"

	"energy-insights/internal/model"
)

// ReportRecords flattens report rows for serialization.
func ReportRecords(rows []model.ReportRow) []model.Record {
	out := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Record{
			"site_id":                r.SiteID,
			"site_name":              r.SiteName,
			"window_hours":           r.WindowHours,
			"total_kwh":              r.TotalKWh,
			"points":                 r.Points,
			"avg_kwh_per_point":      r.AvgKWhPerPoint,
			"deviation_pct":          r.DeviationPct,
			"expected_kwh":           r.ExpectedKWh,
			"critical_hours":         r.CriticalHours,
			"elevated_hours":         r.ElevatedHours,
			"baseline_lookback_days": r.BaselineLookbackDays,
			"stats_source":           r.StatsSource,
		})
	}
	return out
}

// OpportunityRecords flattens a ranked opportunity list.
func OpportunityRecords(ranked []model.RankedOpportunity) []model.Record {
	out := make([]model.Record, 0, len(ranked))
	for _, r := range ranked {
		o := r.Opportunity
		out = append(out, model.Record{
			"rank":                  r.Rank,
			"id":                    o.ID,
			"name":                  o.Name,
			"source":                string(o.Source),
			"description":           o.Description,
			"est_annual_kwh_saved":  o.AnnualKWhSaved,
			"annual_value":          r.Score.AnnualValue,
			"price_per_kwh":         r.Score.PricePerKWh,
			"simple_payback_years":  o.PaybackYears,
			"est_capex":             o.CapexCost,
			"est_co2_tons_per_year": o.CO2TonsPerYear,
			"criterion":             string(r.Score.Criterion),
			"score_key":             r.Score.Key,
		})
	}
	return out
}

// TrendRecords flattens trend buckets.
func TrendRecords(agg model.TrendAggregate) []model.Record {
	out := make([]model.Record, 0, len(agg.Points))
	for _, p := range agg.Points {
		ts := ""
		if !p.Timestamp.IsZero() {
			ts = p.Timestamp.UTC().Format(time.RFC3339)
		}
		out = append(out, model.Record{
			"label": p.Label,
			"ts":    ts,
			"value": p.Value,
		})
	}
	return out
}

// KPIRecords flattens a snapshot into one record per window.
func KPIRecords(snap model.KPISnapshot) []model.Record {
	out := make([]model.Record, 0, len(snap.Windows))
	for _, w := range snap.Windows {
		out = append(out, model.Record{
			"site_id":       snap.SiteID,
			"window":        string(w.Window),
			"energy_kwh":    w.EnergyKWh,
			"baseline_kwh":  w.BaselineKWh,
			"deviation_pct": w.DeviationPct,
			"cost_actual":   w.CostActual,
			"cost_baseline": w.CostBaseline,
			"cost_delta":    w.CostDelta,
			"currency":      snap.Currency,
			"price_per_kwh": snap.PricePerKWh,
		})
	}
	return out
}
