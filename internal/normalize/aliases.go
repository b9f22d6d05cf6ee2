package normalize

import "energy-insights/internal/model"

// Field is a canonical quantity name.
type Field string

const (
	FieldEnergy24h       Field = "energy_24h"
	FieldBaseline24h     Field = "baseline_24h"
	FieldDeviation24h    Field = "deviation_24h"
	FieldCostActual24h   Field = "cost_actual_24h"
	FieldCostBaseline24h Field = "cost_baseline_24h"
	FieldCostDelta24h    Field = "cost_delta_24h"

	FieldEnergy7d       Field = "energy_7d"
	FieldBaseline7d     Field = "baseline_7d"
	FieldDeviation7d    Field = "deviation_7d"
	FieldCostActual7d   Field = "cost_actual_7d"
	FieldCostBaseline7d Field = "cost_baseline_7d"
	FieldCostDelta7d    Field = "cost_delta_7d"

	FieldPricePerKWh Field = "price_per_kwh"

	FieldAnnualKWhSaved Field = "annual_kwh_saved"
	FieldCapex          Field = "capex"
	FieldPaybackYears   Field = "payback_years"
	FieldCO2Tons        Field = "co2_tons_per_year"

	FieldTotalKWh     Field = "total_kwh"
	FieldPoints       Field = "points"
	FieldInsDeviation Field = "insights_deviation_pct"
	FieldExpectedKWh  Field = "expected_kwh"
	FieldCritical     Field = "critical_hours"
	FieldElevated     Field = "elevated_hours"
	FieldLookbackDays Field = "baseline_lookback_days"
)

// Aliases maps a canonical field to the backend key names that have carried
// it, most preferred first.
type Aliases map[Field][]string

// WindowFields names the canonical fields that make up one KPI window.
type WindowFields struct {
	Energy       Field
	Baseline     Field
	Deviation    Field
	CostActual   Field
	CostBaseline Field
	CostDelta    Field
}

var windowFields = map[model.Window]WindowFields{
	model.Window24h: {
		Energy:       FieldEnergy24h,
		Baseline:     FieldBaseline24h,
		Deviation:    FieldDeviation24h,
		CostActual:   FieldCostActual24h,
		CostBaseline: FieldCostBaseline24h,
		CostDelta:    FieldCostDelta24h,
	},
	model.Window7d: {
		Energy:       FieldEnergy7d,
		Baseline:     FieldBaseline7d,
		Deviation:    FieldDeviation7d,
		CostActual:   FieldCostActual7d,
		CostBaseline: FieldCostBaseline7d,
		CostDelta:    FieldCostDelta7d,
	},
}

// FieldsFor returns the canonical fields of window w.
func FieldsFor(w model.Window) (WindowFields, bool) {
	f, ok := windowFields[w]
	return f, ok
}

// DefaultAliases returns the alias table for every backend version we know of.
// The returned map is a fresh copy and may be modified by the caller.
func DefaultAliases() Aliases {
	return Aliases{
		FieldEnergy24h:       {"energy_24h_kwh", "last_24h_kwh", "total_kwh_24h", "kwh_24h"},
		FieldBaseline24h:     {"baseline_24h_kwh", "baseline_kwh_24h", "expected_24h_kwh"},
		FieldDeviation24h:    {"deviation_pct_24h", "deviation_24h_pct", "deviation_24h"},
		FieldCostActual24h:   {"cost_24h_actual", "cost_actual_24h", "actual_cost_24h"},
		FieldCostBaseline24h: {"cost_24h_baseline", "cost_baseline_24h", "baseline_cost_24h"},
		FieldCostDelta24h:    {"cost_24h_delta", "cost_delta_24h", "delta_cost_24h"},

		FieldEnergy7d:       {"energy_7d_kwh", "last_7d_kwh", "total_kwh_7d", "kwh_7d"},
		FieldBaseline7d:     {"prev_7d_kwh", "energy_prev_7d_kwh", "baseline_7d_kwh", "baseline_kwh_7d"},
		FieldDeviation7d:    {"deviation_pct_7d", "deviation_7d_pct", "deviation_7d"},
		FieldCostActual7d:   {"cost_7d_actual", "cost_actual_7d", "actual_cost_7d"},
		FieldCostBaseline7d: {"cost_7d_baseline", "cost_baseline_7d", "baseline_cost_7d"},
		FieldCostDelta7d:    {"cost_7d_delta", "cost_delta_7d", "delta_cost_7d"},

		FieldPricePerKWh: {"electricity_price_per_kwh", "price_per_kwh", "tariff_per_kwh"},

		FieldAnnualKWhSaved: {"est_annual_kwh_saved", "estimated_annual_kwh_savings", "annual_kwh_saved", "kwh_per_year"},
		FieldCapex:          {"est_capex", "estimated_capex", "capex"},
		FieldPaybackYears:   {"simple_payback_years", "payback_years", "simple_roi_years", "roi_years", "roi"},
		FieldCO2Tons:        {"est_co2_tons_saved_per_year", "co2_tons_per_year", "co2_savings_tons"},

		FieldTotalKWh:     {"total_kwh", "total_energy_kwh", "energy_kwh"},
		FieldPoints:       {"points", "point_count", "n_points", "count"},
		FieldInsDeviation: {"deviation_pct", "deviation_percent", "deviation"},
		FieldExpectedKWh:  {"expected_kwh", "expected_energy_kwh", "baseline_kwh"},
		FieldCritical:     {"critical_hours", "hours_critical"},
		FieldElevated:     {"elevated_hours", "warning_hours", "hours_elevated"},
		FieldLookbackDays: {"baseline_lookback_days", "lookback_days", "baseline_days"},
	}
}

// MergeAliases overlays override onto base. A field with a non-empty list in
// override replaces the base list; empty lists are ignored.
func MergeAliases(base, override Aliases) Aliases {
	out := make(Aliases, len(base)+len(override))
	for f, keys := range base {
		out[f] = append([]string(nil), keys...)
	}
	for f, keys := range override {
		if len(keys) == 0 {
			continue
		}
		out[f] = append([]string(nil), keys...)
	}
	return out
}

// Keys returns the alias list of f. Unknown fields resolve by their own name.
func (a Aliases) Keys(f Field) []string {
	if keys, ok := a[f]; ok {
		return keys
	}
	return []string{string(f)}
}

// Resolve reads canonical field f from rec.
func (a Aliases) Resolve(rec model.Record, f Field) *float64 {
	return Resolve(rec, a.Keys(f))
}

// Present reports whether any alias of f is a key of rec, whatever its value.
func (a Aliases) Present(rec model.Record, f Field) bool {
	for _, k := range a.Keys(f) {
		if _, ok := rec[k]; ok {
			return true
		}
	}
	return false
}
