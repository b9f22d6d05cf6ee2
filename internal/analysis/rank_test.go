package analysis

import (
	"math"
	"testing"

	"energy-insights/internal/model"
	"energy-insights/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func names(ranked []model.RankedOpportunity) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Opportunity.Name
	}
	return out
}

func TestRankMixedCompleteness(t *testing.T) {
	dec := normalize.NewDecoder(nil)
	opps := dec.DecodeOpportunities([]model.Record{
		{"name": "big-no-price", "est_annual_kwh_saved": 5000.0, "price_per_kwh": nil},
		{"name": "roi-only", "roi_years": 2.0},
		{"name": "priced", "est_annual_kwh_saved": 1000.0, "price_per_kwh": 0.3},
	})

	ranked := RankOpportunities(opps, f(0.3), RankOptions{})
	assert.Equal(t, []string{"priced", "big-no-price", "roi-only"}, names(ranked))

	require.NotNil(t, ranked[0].Score.AnnualValue)
	assert.InDelta(t, 300, *ranked[0].Score.AnnualValue, 1e-9)
	assert.Equal(t, model.CriterionAnnualValue, ranked[0].Score.Criterion)
	assert.Equal(t, model.CriterionAnnualKWh, ranked[1].Score.Criterion)
	assert.Nil(t, ranked[1].Score.AnnualValue)
	assert.Equal(t, model.CriterionPayback, ranked[2].Score.Criterion)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankGlobalPriceFallback(t *testing.T) {
	opps := []model.Opportunity{
		{Name: "small", AnnualKWhSaved: f(100)},
		{Name: "large", AnnualKWhSaved: f(900)},
	}
	ranked := RankOpportunities(opps, f(0.2), RankOptions{})
	assert.Equal(t, []string{"large", "small"}, names(ranked))
	require.NotNil(t, ranked[0].Score.PricePerKWh)
	assert.Equal(t, 0.2, *ranked[0].Score.PricePerKWh)

	ranked = RankOpportunities(opps, nil, RankOptions{})
	assert.Equal(t, model.CriterionAnnualKWh, ranked[0].Score.Criterion)
}

func TestRankTierDominance(t *testing.T) {
	opps := []model.Opportunity{
		{Name: "none"},
		{Name: "payback-fast", PaybackYears: f(0.01)},
		{Name: "kwh-tiny", AnnualKWhSaved: f(0.5)},
		{Name: "kwh-huge", AnnualKWhSaved: f(1e9), PriceUnavailable: true},
		{Name: "value-tiny", AnnualKWhSaved: f(1), PricePerKWh: f(0.01)},
	}
	ranked := RankOpportunities(opps, nil, RankOptions{})
	assert.Equal(t, []string{"value-tiny", "kwh-huge", "kwh-tiny", "payback-fast", "none"}, names(ranked))

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score.Key, ranked[i].Score.Key)
	}
	assert.Equal(t, 0.0, ranked[4].Score.Key)
	assert.Equal(t, model.CriterionNone, ranked[4].Score.Criterion)
}

func TestRankPaybackFloor(t *testing.T) {
	opps := []model.Opportunity{
		{Name: "tiny", PaybackYears: f(0.01)},
		{Name: "tenth", PaybackYears: f(0.1)},
		{Name: "slow", PaybackYears: f(8)},
	}
	ranked := RankOpportunities(opps, nil, RankOptions{MinPaybackYears: DefaultMinPaybackYears})
	require.NotNil(t, ranked[0].Score.PaybackScore)
	assert.InDelta(t, 10, *ranked[0].Score.PaybackScore, 1e-9)
	// tiny and tenth tie after flooring, so input order holds.
	assert.Equal(t, []string{"tiny", "tenth", "slow"}, names(ranked))
}

func TestRankNonPositivePaybackIsAbsent(t *testing.T) {
	opps := []model.Opportunity{
		{Name: "negative", PaybackYears: f(-5)},
		{Name: "zero", PaybackYears: f(0)},
		{Name: "one-year", PaybackYears: f(1)},
	}
	ranked := RankOpportunities(opps, nil, RankOptions{})
	assert.Equal(t, []string{"one-year", "negative", "zero"}, names(ranked))
	for _, r := range ranked[1:] {
		assert.Nil(t, r.Score.PaybackScore)
		assert.Equal(t, model.CriterionNone, r.Score.Criterion)
		assert.Equal(t, 0.0, r.Score.Key)
	}
}

func TestRankStableTies(t *testing.T) {
	opps := []model.Opportunity{
		{Name: "a", AnnualKWhSaved: f(10)},
		{Name: "b", AnnualKWhSaved: f(20)},
		{Name: "c", AnnualKWhSaved: f(10)},
		{Name: "d"},
		{Name: "e"},
	}
	ranked := RankOpportunities(opps, nil, RankOptions{})
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, names(ranked))
}

func TestRankIsPermutationAndIdempotent(t *testing.T) {
	opps := []model.Opportunity{
		{Name: "p1", PaybackYears: f(3)},
		{Name: "v1", AnnualKWhSaved: f(200), PricePerKWh: f(0.5)},
		{Name: "k1", AnnualKWhSaved: f(300)},
		{Name: "n1"},
		{Name: "v2", AnnualKWhSaved: f(50)},
	}
	first := RankOpportunities(opps, f(0.1), RankOptions{})
	assert.ElementsMatch(t, opps, Opportunities(first))

	second := RankOpportunities(Opportunities(first), f(0.1), RankOptions{})
	assert.Equal(t, names(first), names(second))
	assert.Empty(t, RankOpportunities(nil, nil, RankOptions{}))
}

func TestTierKeyBounds(t *testing.T) {
	assert.Less(t, tierKey(2, math.MaxFloat64), tierKey(3, -math.MaxFloat64))
	assert.Less(t, tierKey(1, 5), tierKey(1, 6))
}
