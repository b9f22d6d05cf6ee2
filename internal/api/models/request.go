package models

// CreateOpportunityRequest is the body of POST /api/v1/sites/:id/opportunities.
type CreateOpportunityRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description,omitempty"`
	AnnualKWhSaved *float64 `json:"est_annual_kwh_saved,omitempty"`
	CapexCost      *float64 `json:"est_capex,omitempty"`
	PaybackYears   *float64 `json:"simple_payback_years,omitempty"`
	CO2TonsPerYear *float64 `json:"est_co2_tons_per_year,omitempty"`
	PricePerKWh    *float64 `json:"price_per_kwh,omitempty"`
}

// OpportunityQuery are the query parameters of the ranked opportunity list.
type OpportunityQuery struct {
	Price  *float64 `form:"price"`
	Format string   `form:"format,omitempty"` // "json" (default) or "csv"
}

// TrendQuery are the query parameters of the trend endpoint.
type TrendQuery struct {
	Hours    float64 `form:"hours,omitempty"`
	Timezone string  `form:"tz,omitempty"`
	Format   string  `form:"format,omitempty"`
}

// ReportQuery are the query parameters of the report endpoint.
type ReportQuery struct {
	Hours  float64 `form:"hours,omitempty"`
	Format string  `form:"format,omitempty"` // "json", "csv" or "xlsx"
}
