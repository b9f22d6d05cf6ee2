package model

import "time"

// Opportunity is a candidate efficiency measure, either produced by the
// analytics backend or logged by an operator.
type Opportunity struct {
	ID          string `json:"id"`
	SiteID      string `json:"site_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	AnnualKWhSaved *float64 `json:"est_annual_kwh_saved"`
	CapexCost      *float64 `json:"est_capex"`
	PaybackYears   *float64 `json:"simple_payback_years"`
	CO2TonsPerYear *float64 `json:"est_co2_tons_per_year"`

	// PricePerKWh is the opportunity's own energy price, if it carries one.
	PricePerKWh *float64 `json:"price_per_kwh"`
	// PriceUnavailable is set when the backend explicitly reported no usable
	// price for this opportunity. The global price is then not applied either.
	PriceUnavailable bool `json:"price_unavailable,omitempty"`

	Source Source `json:"source"`
	// CreatedAt is nil when the backend did not report a usable timestamp.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Criterion names which figure decided an opportunity's position.
type Criterion string

const (
	CriterionAnnualValue Criterion = "annual_value"
	CriterionAnnualKWh   Criterion = "annual_kwh"
	CriterionPayback     Criterion = "payback"
	CriterionNone        Criterion = "none"
)

// OpportunityScore is computed per ranking pass and never stored.
type OpportunityScore struct {
	AnnualValue  *float64 `json:"annual_value"`
	AnnualKWh    *float64 `json:"annual_kwh"`
	PaybackScore *float64 `json:"payback_score"`
	// PricePerKWh is the price the annual value was computed with.
	PricePerKWh *float64  `json:"price_per_kwh"`
	Tier        int       `json:"tier"`
	Criterion   Criterion `json:"criterion"`
	// Key is a single scalar whose ordering matches the ranking: the tier
	// dominates, the criterion value breaks ties inside a tier.
	Key float64 `json:"key"`
}

// RankedOpportunity is one entry of a ranked list.
type RankedOpportunity struct {
	Rank        int              `json:"rank"`
	Opportunity Opportunity      `json:"opportunity"`
	Score       OpportunityScore `json:"score"`
}
