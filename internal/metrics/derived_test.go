package metrics

import (
	"math"
	"testing"

	"energy-insights/internal/model"
	"energy-insights/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestAnnualSavings(t *testing.T) {
	got := AnnualSavings(f(1000), f(0.3))
	require.NotNil(t, got)
	assert.InDelta(t, 300, *got, 1e-9)

	assert.Nil(t, AnnualSavings(nil, f(0.3)))
	assert.Nil(t, AnnualSavings(f(1000), nil))
	assert.Nil(t, AnnualSavings(f(0), f(0.3)), "zero savings has no value")
	assert.Nil(t, AnnualSavings(f(-5), f(0.3)))
	assert.Nil(t, AnnualSavings(f(math.NaN()), f(0.3)))
	assert.Nil(t, AnnualSavings(f(1000), f(math.Inf(1))))
}

func TestCostDelta(t *testing.T) {
	got := CostDelta(nil, f(120), f(100))
	require.NotNil(t, got)
	assert.Equal(t, 20.0, *got)

	got = CostDelta(f(-4), f(120), f(100))
	require.NotNil(t, got)
	assert.Equal(t, -4.0, *got, "explicit delta wins")

	got = CostDelta(f(math.NaN()), f(90), f(100))
	require.NotNil(t, got)
	assert.Equal(t, -10.0, *got)

	assert.Nil(t, CostDelta(nil, f(120), nil))
}

func TestDeviationPct(t *testing.T) {
	got := DeviationPct(nil, f(110), f(100))
	require.NotNil(t, got)
	assert.InDelta(t, 10, *got, 1e-9)

	got = DeviationPct(f(7.5), f(110), f(100))
	require.NotNil(t, got)
	assert.Equal(t, 7.5, *got)

	assert.Nil(t, DeviationPct(nil, f(110), f(0)), "zero baseline")
	assert.Nil(t, DeviationPct(nil, nil, f(100)))
}

func TestNormalizeKPI(t *testing.T) {
	rec := model.Record{
		"last_24h_kwh":      50.0,
		"baseline_24h_kwh":  40.0,
		"cost_24h_actual":   120.0,
		"cost_24h_baseline": 100.0,
		"energy_7d_kwh":     300.0,
		"prev_7d_kwh":       "n/a",
		"deviation_pct_7d":  -2.0,
		"currency":          "EUR",
		"price_per_kwh":     0.25,
	}
	snap := NormalizeKPI(nil, "site-1", rec)
	assert.Equal(t, "site-1", snap.SiteID)
	assert.Equal(t, "EUR", snap.Currency)
	require.NotNil(t, snap.PricePerKWh)
	assert.Equal(t, 0.25, *snap.PricePerKWh)
	require.Len(t, snap.Windows, 2)

	day := snap.Window(model.Window24h)
	require.NotNil(t, day.CostDelta)
	assert.Equal(t, 20.0, *day.CostDelta)
	require.NotNil(t, day.DeviationPct)
	assert.InDelta(t, 25, *day.DeviationPct, 1e-9)

	week := snap.Window(model.Window7d)
	require.NotNil(t, week.EnergyKWh)
	assert.Equal(t, 300.0, *week.EnergyKWh)
	assert.Nil(t, week.BaselineKWh, "strings are not coerced")
	require.NotNil(t, week.DeviationPct)
	assert.Equal(t, -2.0, *week.DeviationPct)
	assert.Nil(t, week.CostDelta)
}

func TestNormalizeKPINilRecord(t *testing.T) {
	snap := NormalizeKPI(normalize.DefaultAliases(), "x", nil)
	require.Len(t, snap.Windows, 2)
	for _, w := range snap.Windows {
		assert.Nil(t, w.EnergyKWh)
		assert.Nil(t, w.CostDelta)
	}
	assert.Nil(t, snap.PricePerKWh)
}
