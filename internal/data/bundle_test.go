package data

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"energy-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]error
}

func (f *fakeBackend) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failures[call]
}

func (f *fakeBackend) ListSites(ctx context.Context) ([]model.Record, error) {
	return []model.Record{{"id": "a"}}, f.record("sites")
}

func (f *fakeBackend) SiteKPI(ctx context.Context, siteID string) (model.Record, error) {
	if err := f.record("kpi:" + siteID); err != nil {
		return nil, err
	}
	return model.Record{"site": siteID}, nil
}

func (f *fakeBackend) Opportunities(ctx context.Context, siteID string) ([]model.Record, error) {
	if err := f.record("opportunities:" + siteID); err != nil {
		return nil, err
	}
	return []model.Record{{"name": "x"}}, nil
}

func (f *fakeBackend) CreateOpportunity(ctx context.Context, siteID string, o model.Opportunity) (model.Record, error) {
	return nil, f.record("create:" + siteID)
}

func (f *fakeBackend) Series(ctx context.Context, siteID string, hours float64) ([]model.Record, error) {
	if err := f.record("series:" + siteID); err != nil {
		return nil, err
	}
	return []model.Record{{"value": 1.0}}, nil
}

func (f *fakeBackend) SeriesSummary(ctx context.Context, siteID string, hours float64) (model.Record, error) {
	if err := f.record("summary:" + siteID); err != nil {
		return nil, err
	}
	return model.Record{"total_kwh": hours}, nil
}

func (f *fakeBackend) Insights(ctx context.Context, siteID string, hours float64) (model.Record, error) {
	if err := f.record("insights:" + siteID); err != nil {
		return nil, err
	}
	return model.Record{"deviation_pct": 1.0}, nil
}

func TestFetchSiteBundlePartialFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeBackend{failures: map[string]error{"insights:a": boom}}

	b := FetchSiteBundle(context.Background(), src, "a", 24, PartSummary|PartInsights, nil)
	assert.Equal(t, "a", b.SiteID)
	assert.Equal(t, model.Record{"total_kwh": 24.0}, b.Summary)
	assert.Nil(t, b.Insights)
	assert.True(t, b.Failed("insights"))
	assert.False(t, b.Failed("summary"))
	assert.ErrorIs(t, b.Errors["insights"], boom)

	sort.Strings(src.calls)
	assert.Equal(t, []string{"insights:a", "summary:a"}, src.calls, "only requested parts are fetched")
}

func TestFetchSiteBundleAll(t *testing.T) {
	src := &fakeBackend{}
	b := FetchSiteBundle(context.Background(), src, "a", 24, PartAll, nil)
	assert.Empty(t, b.Errors)
	assert.NotNil(t, b.KPI)
	assert.Len(t, b.Series, 1)
	assert.Len(t, b.Opportunities, 1)
	assert.Len(t, src.calls, 5)
}

func TestFetchBundlesKeepsOrder(t *testing.T) {
	src := &fakeBackend{failures: map[string]error{"summary:b": errors.New("down")}}
	ids := []string{"a", "b", "c", "d"}

	bundles := FetchBundles(context.Background(), src, ids, 168, PartSummary, 2, nil)
	require.Len(t, bundles, 4)
	for i, id := range ids {
		assert.Equal(t, id, bundles[i].SiteID)
	}
	assert.True(t, bundles[1].Failed("summary"))
	assert.False(t, bundles[2].Failed("summary"))
}
