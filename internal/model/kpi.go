package model

// Record is a decoded, untyped JSON object as it arrives from the analytics
// backend. Only the normalize package reads it.
type Record = map[string]any

// Window identifies a rolling reporting window.
type Window string

const (
	Window24h Window = "24h"
	Window7d  Window = "7d"
)

// Windows lists every window a KPI snapshot carries, in display order.
var Windows = []Window{Window24h, Window7d}

// WindowKPI holds the energy and cost figures for one window.
// Units:
// - EnergyKWh, BaselineKWh: kWh
// - DeviationPct: signed percent, (actual-baseline)/baseline*100
// - Cost*: snapshot currency
type WindowKPI struct {
	Window       Window   `json:"window"`
	EnergyKWh    *float64 `json:"energy_kwh"`
	BaselineKWh  *float64 `json:"baseline_kwh"`
	DeviationPct *float64 `json:"deviation_pct"`
	CostActual   *float64 `json:"cost_actual"`
	CostBaseline *float64 `json:"cost_baseline"`
	CostDelta    *float64 `json:"cost_delta"`
}

// KPISnapshot is a per-site (or portfolio) KPI record after normalization.
type KPISnapshot struct {
	SiteID      string      `json:"site_id,omitempty"`
	Windows     []WindowKPI `json:"windows"`
	Currency    string      `json:"currency,omitempty"`
	PricePerKWh *float64    `json:"price_per_kwh"`
}

// Window returns the figures for w, or the zero value when the snapshot does
// not carry that window.
func (k KPISnapshot) Window(w Window) WindowKPI {
	for _, wk := range k.Windows {
		if wk.Window == w {
			return wk
		}
	}
	return WindowKPI{Window: w}
}
