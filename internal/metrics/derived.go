package metrics

import (
	"math"

	"energy-insights/internal/model"
	"energy-insights/internal/normalize"
)

// AnnualSavings is the yearly monetary value of an energy saving.
// It is defined only for a finite kWh figure strictly above zero and a
// finite price; otherwise it returns nil.
func AnnualSavings(kwhPerYear, pricePerKWh *float64) *float64 {
	if !normalize.Finite(kwhPerYear) || *kwhPerYear <= 0 {
		return nil
	}
	if !normalize.Finite(pricePerKWh) {
		return nil
	}
	return finite(*kwhPerYear * *pricePerKWh)
}

// CostDelta prefers an explicit delta and falls back to actual - baseline.
func CostDelta(explicit, actual, baseline *float64) *float64 {
	if normalize.Finite(explicit) {
		v := *explicit
		return &v
	}
	if normalize.Finite(actual) && normalize.Finite(baseline) {
		return finite(*actual - *baseline)
	}
	return nil
}

// DeviationPct prefers an explicit percentage and falls back to
// (actual - baseline) / baseline * 100. A zero baseline yields nil.
func DeviationPct(explicit, actual, baseline *float64) *float64 {
	if normalize.Finite(explicit) {
		v := *explicit
		return &v
	}
	if normalize.Finite(actual) && normalize.Finite(baseline) && *baseline != 0 {
		return finite((*actual - *baseline) / *baseline * 100)
	}
	return nil
}

// ResolveWindow reads one KPI window from rec. Every window goes through the
// same precedence rules; only the alias fields differ.
func ResolveWindow(aliases normalize.Aliases, rec model.Record, w model.Window) model.WindowKPI {
	out := model.WindowKPI{Window: w}
	f, ok := normalize.FieldsFor(w)
	if !ok || rec == nil {
		return out
	}
	out.EnergyKWh = aliases.Resolve(rec, f.Energy)
	out.BaselineKWh = aliases.Resolve(rec, f.Baseline)
	out.DeviationPct = DeviationPct(aliases.Resolve(rec, f.Deviation), out.EnergyKWh, out.BaselineKWh)
	out.CostActual = aliases.Resolve(rec, f.CostActual)
	out.CostBaseline = aliases.Resolve(rec, f.CostBaseline)
	out.CostDelta = CostDelta(aliases.Resolve(rec, f.CostDelta), out.CostActual, out.CostBaseline)
	return out
}

// NormalizeKPI converts a raw KPI record into a snapshot covering every
// known window. A nil record yields a snapshot with all figures nil.
func NormalizeKPI(aliases normalize.Aliases, siteID string, rec model.Record) model.KPISnapshot {
	if aliases == nil {
		aliases = normalize.DefaultAliases()
	}
	snap := model.KPISnapshot{
		SiteID:  siteID,
		Windows: make([]model.WindowKPI, 0, len(model.Windows)),
	}
	for _, w := range model.Windows {
		snap.Windows = append(snap.Windows, ResolveWindow(aliases, rec, w))
	}
	if rec == nil {
		return snap
	}
	if c, ok := rec["currency"].(string); ok {
		snap.Currency = c
	}
	snap.PricePerKWh = aliases.Resolve(rec, normalize.FieldPricePerKWh)
	return snap
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
