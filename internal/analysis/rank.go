package analysis

import (
	"math"
	"sort"

	"energy-insights/internal/metrics"
	"energy-insights/internal/model"
	"energy-insights/internal/normalize"
)

// DefaultMinPaybackYears floors payback periods before taking the reciprocal
// so near-zero paybacks cannot blow up the score.
const DefaultMinPaybackYears = 0.1

// Score tiers, highest first.
const (
	tierNone        = 0
	tierPayback     = 1
	tierAnnualKWh   = 2
	tierAnnualValue = 3
)

type RankOptions struct {
	MinPaybackYears float64
}

func (o RankOptions) minPayback() float64 {
	if o.MinPaybackYears > 0 && !math.IsInf(o.MinPaybackYears, 0) {
		return o.MinPaybackYears
	}
	return DefaultMinPaybackYears
}

// ScoreOpportunity derives the ranking figures of one opportunity.
// pricePerKWh is the global price, used when the opportunity has no price of
// its own and has not reported its price as unavailable.
func ScoreOpportunity(o model.Opportunity, pricePerKWh *float64, opts RankOptions) model.OpportunityScore {
	price := o.PricePerKWh
	if price == nil && !o.PriceUnavailable {
		price = pricePerKWh
	}

	s := model.OpportunityScore{Criterion: model.CriterionNone}
	if normalize.Finite(price) {
		v := *price
		s.PricePerKWh = &v
	}
	if normalize.Finite(o.AnnualKWhSaved) {
		v := *o.AnnualKWhSaved
		s.AnnualKWh = &v
	}
	// A payback of zero or less is not a real estimate.
	if normalize.Finite(o.PaybackYears) && *o.PaybackYears > 0 {
		v := 1 / math.Max(*o.PaybackYears, opts.minPayback())
		s.PaybackScore = &v
	}
	s.AnnualValue = metrics.AnnualSavings(o.AnnualKWhSaved, price)

	switch {
	case s.AnnualValue != nil:
		s.Tier, s.Criterion = tierAnnualValue, model.CriterionAnnualValue
		s.Key = tierKey(s.Tier, *s.AnnualValue)
	case s.AnnualKWh != nil:
		s.Tier, s.Criterion = tierAnnualKWh, model.CriterionAnnualKWh
		s.Key = tierKey(s.Tier, *s.AnnualKWh)
	case s.PaybackScore != nil:
		s.Tier, s.Criterion = tierPayback, model.CriterionPayback
		s.Key = tierKey(s.Tier, *s.PaybackScore)
	}
	return s
}

// RankOpportunities orders opportunities for operator review. Tiers strictly
// dominate each other; inside a tier higher values come first and equal
// values keep their input order. The result is a permutation of opps.
func RankOpportunities(opps []model.Opportunity, pricePerKWh *float64, opts RankOptions) []model.RankedOpportunity {
	out := make([]model.RankedOpportunity, 0, len(opps))
	for _, o := range opps {
		out = append(out, model.RankedOpportunity{
			Opportunity: o,
			Score:       ScoreOpportunity(o, pricePerKWh, opts),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Score, out[j].Score
		if a.Tier != b.Tier {
			return a.Tier > b.Tier
		}
		return criterionValue(a) > criterionValue(b)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Opportunities strips the scores off a ranked list.
func Opportunities(ranked []model.RankedOpportunity) []model.Opportunity {
	out := make([]model.Opportunity, len(ranked))
	for i, r := range ranked {
		out[i] = r.Opportunity
	}
	return out
}

func criterionValue(s model.OpportunityScore) float64 {
	switch s.Criterion {
	case model.CriterionAnnualValue:
		return *s.AnnualValue
	case model.CriterionAnnualKWh:
		return *s.AnnualKWh
	case model.CriterionPayback:
		return *s.PaybackScore
	default:
		return 0
	}
}

// tierKey folds a tier and an unbounded value into one scalar. The value is
// squashed into [0.001, 0.999] so a tier never reaches the next one.
func tierKey(tier int, v float64) float64 {
	squashed := 0.5 + math.Atan(v)/math.Pi
	return float64(tier) + 0.001 + 0.998*squashed
}
