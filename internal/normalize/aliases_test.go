package normalize

import (
	"testing"

	"energy-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAliasesCoverWindows(t *testing.T) {
	a := DefaultAliases()
	for _, w := range model.Windows {
		f, ok := FieldsFor(w)
		require.True(t, ok, "window %s", w)
		for _, field := range []Field{f.Energy, f.Baseline, f.Deviation, f.CostActual, f.CostBaseline, f.CostDelta} {
			assert.NotEmpty(t, a[field], "field %s", field)
		}
	}
	_, ok := FieldsFor(model.Window("30d"))
	assert.False(t, ok)
}

func TestMergeAliases(t *testing.T) {
	base := DefaultAliases()
	merged := MergeAliases(base, Aliases{
		FieldEnergy24h: {"kwh_today"},
		FieldCapex:     {},
	})

	assert.Equal(t, []string{"kwh_today"}, merged[FieldEnergy24h])
	assert.Equal(t, base[FieldCapex], merged[FieldCapex], "empty override is ignored")

	merged[FieldEnergy7d][0] = "mutated"
	assert.NotEqual(t, "mutated", base[FieldEnergy7d][0], "merge copies lists")
}

func TestAliasesResolveAndPresent(t *testing.T) {
	a := DefaultAliases()
	rec := model.Record{"last_24h_kwh": 42.0, "price_per_kwh": nil}

	got := a.Resolve(rec, FieldEnergy24h)
	require.NotNil(t, got)
	assert.Equal(t, 42.0, *got)

	assert.True(t, a.Present(rec, FieldPricePerKWh))
	assert.Nil(t, a.Resolve(rec, FieldPricePerKWh))
	assert.False(t, a.Present(rec, FieldCapex))

	assert.Equal(t, []string{"custom"}, a.Keys(Field("custom")))
}
