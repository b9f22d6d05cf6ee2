package analysis

import (
	"fmt"
	"math"
	"time"

	"energy-insights/internal/model"
)

// LabelLayout is the local-time label of a trend bucket.
const LabelLayout = "15:04"

// Aggregate turns a chronological series into display buckets plus a
// summary. Non-finite values are shown as zero, never dropped, so bucket i
// always belongs to point i. An empty series yields no summary.
//
// windowHours must be finite and positive. loc defaults to UTC.
func Aggregate(points []model.SeriesPoint, windowHours float64, loc *time.Location) (model.TrendAggregate, error) {
	if math.IsNaN(windowHours) || math.IsInf(windowHours, 0) || windowHours <= 0 {
		return model.TrendAggregate{}, fmt.Errorf("%w: window hours must be positive, got %v", model.ErrPrecondition, windowHours)
	}
	if loc == nil {
		loc = time.UTC
	}

	agg := model.TrendAggregate{Points: make([]model.TrendPoint, 0, len(points))}
	if len(points) == 0 {
		return agg, nil
	}

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	peak := 0
	for i, p := range points {
		v := p.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		agg.Points = append(agg.Points, model.TrendPoint{
			Label:     label(p.Timestamp, loc),
			Timestamp: p.Timestamp,
			Value:     v,
		})
		sum += v
		if v < minv {
			minv = v
		}
		// Strict comparison keeps the earliest point on ties.
		if v > maxv {
			maxv = v
			peak = i
		}
	}

	agg.Summary = &model.TrendSummary{
		PeakLabel:   agg.Points[peak].Label,
		PeakValue:   maxv,
		Average:     sum / float64(len(points)),
		Min:         minv,
		Count:       len(points),
		WindowHours: windowHours,
	}
	return agg, nil
}

func label(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(LabelLayout)
}
