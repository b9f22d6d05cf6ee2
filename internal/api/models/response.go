package models

import (
	"energy-insights/internal/model"
	"energy-insights/internal/report"
)

// SitesResponse lists the sites known to the backend.
type SitesResponse struct {
	Sites []model.Site `json:"sites"`
}

// OpportunitiesResponse is the ranked opportunity list of a site.
type OpportunitiesResponse struct {
	SiteID        string                    `json:"site_id"`
	PricePerKWh   *float64                  `json:"price_per_kwh"`
	PriceSource   string                    `json:"price_source"` // "request", "kpi", "config" or "none"
	Opportunities []model.RankedOpportunity `json:"opportunities"`
}

// TrendResponse is the trend aggregate of a site.
type TrendResponse struct {
	SiteID string `json:"site_id"`
	model.TrendAggregate
}

// ReportResponse holds one row per site plus the portfolio totals.
type ReportResponse struct {
	WindowHours float64           `json:"window_hours"`
	Rows        []model.ReportRow `json:"rows"`
	Totals      report.Totals     `json:"totals"`
	Partial     []SiteFailure     `json:"partial,omitempty"`
}

// SiteFailure names a part of a site that could not be fetched.
type SiteFailure struct {
	SiteID  string `json:"site_id"`
	Part    string `json:"part"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
