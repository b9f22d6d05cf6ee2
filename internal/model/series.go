package model

import "time"

// SeriesPoint is one sample of an energy series. Slices of SeriesPoint are in
// chronological order.
type SeriesPoint struct {
	Timestamp time.Time `json:"ts"`
	Value     float64   `json:"value"`
}

// TrendPoint is a display-ready bucket. Index i corresponds to input point i.
type TrendPoint struct {
	Label     string    `json:"label"`
	Timestamp time.Time `json:"ts"`
	Value     float64   `json:"value"`
}

// TrendSummary is the read-only aggregate of a series.
type TrendSummary struct {
	PeakLabel   string  `json:"peak_label"`
	PeakValue   float64 `json:"peak_value"`
	Average     float64 `json:"average"`
	Min         float64 `json:"min"`
	Count       int     `json:"count"`
	WindowHours float64 `json:"window_hours"`
}

// TrendAggregate is the output of the trend aggregator. A nil Summary means
// there was no data, not zero activity.
type TrendAggregate struct {
	Points  []TrendPoint  `json:"points"`
	Summary *TrendSummary `json:"summary"`
}
