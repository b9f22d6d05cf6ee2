package data

import (
	"context"
	"sync"

	"energy-insights/internal/logging"
	"energy-insights/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Part selects which payloads FetchSiteBundle loads.
type Part uint8

const (
	PartKPI Part = 1 << iota
	PartSummary
	PartSeries
	PartInsights
	PartOpportunities

	PartAll = PartKPI | PartSummary | PartSeries | PartInsights | PartOpportunities
)

// SiteBundle holds what was fetched for one site. A part that failed stays
// nil and its error is recorded under the part name.
type SiteBundle struct {
	SiteID        string
	KPI           model.Record
	Summary       model.Record
	Series        []model.Record
	Insights      model.Record
	Opportunities []model.Record
	Errors        map[string]error
}

// Failed reports whether the named part failed.
func (b *SiteBundle) Failed(part string) bool {
	_, ok := b.Errors[part]
	return ok
}

// FetchSiteBundle fetches the requested parts concurrently. Individual
// failures never abort the others.
func FetchSiteBundle(ctx context.Context, src Backend, siteID string, hours float64, parts Part, logger *zap.Logger) *SiteBundle {
	logger = logging.OrNop(logger)
	b := &SiteBundle{SiteID: siteID, Errors: map[string]error{}}
	var mu sync.Mutex
	fail := func(part string, err error) {
		mu.Lock()
		b.Errors[part] = err
		mu.Unlock()
		logger.Warn("site fetch failed",
			zap.String("site_id", siteID), zap.String("part", part), zap.Error(err))
	}

	var g errgroup.Group
	if parts&PartKPI != 0 {
		g.Go(func() error {
			rec, err := src.SiteKPI(ctx, siteID)
			if err != nil {
				fail("kpi", err)
				return nil
			}
			b.KPI = rec
			return nil
		})
	}
	if parts&PartSummary != 0 {
		g.Go(func() error {
			rec, err := src.SeriesSummary(ctx, siteID, hours)
			if err != nil {
				fail("summary", err)
				return nil
			}
			b.Summary = rec
			return nil
		})
	}
	if parts&PartSeries != 0 {
		g.Go(func() error {
			recs, err := src.Series(ctx, siteID, hours)
			if err != nil {
				fail("series", err)
				return nil
			}
			b.Series = recs
			return nil
		})
	}
	if parts&PartInsights != 0 {
		g.Go(func() error {
			rec, err := src.Insights(ctx, siteID, hours)
			if err != nil {
				fail("insights", err)
				return nil
			}
			b.Insights = rec
			return nil
		})
	}
	if parts&PartOpportunities != 0 {
		g.Go(func() error {
			recs, err := src.Opportunities(ctx, siteID)
			if err != nil {
				fail("opportunities", err)
				return nil
			}
			b.Opportunities = recs
			return nil
		})
	}
	_ = g.Wait()
	return b
}

// FetchBundles fetches parts for every site with at most limit sites in
// flight. Results keep the order of siteIDs.
func FetchBundles(ctx context.Context, src Backend, siteIDs []string, hours float64, parts Part, limit int, logger *zap.Logger) []*SiteBundle {
	out := make([]*SiteBundle, len(siteIDs))
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, id := range siteIDs {
		g.Go(func() error {
			out[i] = FetchSiteBundle(ctx, src, id, hours, parts, logger)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
