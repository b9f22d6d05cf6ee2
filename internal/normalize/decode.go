package normalize

import (
	"fmt"
	"math"
	"strings"
	"time"

	"energy-insights/internal/model"
)

// Decoder validates untyped backend records into the typed model. It is the
// single place where backend payload shapes are interpreted.
type Decoder struct {
	Aliases Aliases
}

// NewDecoder returns a decoder using aliases, or DefaultAliases when nil.
func NewDecoder(aliases Aliases) *Decoder {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Decoder{Aliases: aliases}
}

var timestampKeys = []string{"ts", "timestamp", "time", "t"}
var valueKeys = []string{"value", "kwh", "v"}

// DecodeSeries converts raw series points. Points are never dropped: a
// missing value decodes as NaN (the aggregator zeroes it) and an unparseable
// timestamp decodes as the zero time.
func (d *Decoder) DecodeSeries(recs []model.Record) []model.SeriesPoint {
	out := make([]model.SeriesPoint, 0, len(recs))
	for _, rec := range recs {
		p := model.SeriesPoint{
			Timestamp: parseTime(firstString(rec, timestampKeys...)),
			Value:     math.NaN(),
		}
		if v := Resolve(rec, valueKeys); v != nil {
			p.Value = *v
		}
		out = append(out, p)
	}
	return out
}

// DecodeOpportunity converts one opportunity record.
func (d *Decoder) DecodeOpportunity(rec model.Record) model.Opportunity {
	o := model.Opportunity{
		ID:          firstID(rec, "id", "opportunity_id"),
		SiteID:      firstID(rec, "site_id", "siteId"),
		Name:        firstString(rec, "name", "title"),
		Description: firstString(rec, "description", "notes"),

		AnnualKWhSaved: d.Aliases.Resolve(rec, FieldAnnualKWhSaved),
		CapexCost:      d.Aliases.Resolve(rec, FieldCapex),
		PaybackYears:   d.Aliases.Resolve(rec, FieldPaybackYears),
		CO2TonsPerYear: d.Aliases.Resolve(rec, FieldCO2Tons),
		PricePerKWh:    d.Aliases.Resolve(rec, FieldPricePerKWh),

		Source: model.SourceFromTag(strings.ToLower(firstString(rec, "source", "origin"))),
	}
	if t := parseTime(firstString(rec, "created_at", "createdAt")); !t.IsZero() {
		o.CreatedAt = &t
	}
	if o.PricePerKWh == nil && d.Aliases.Present(rec, FieldPricePerKWh) {
		o.PriceUnavailable = true
	}
	return o
}

// DecodeOpportunities converts an opportunity list, preserving order.
func (d *Decoder) DecodeOpportunities(recs []model.Record) []model.Opportunity {
	out := make([]model.Opportunity, 0, len(recs))
	for _, rec := range recs {
		out = append(out, d.DecodeOpportunity(rec))
	}
	return out
}

// DecodeSiteSummary converts a timeseries summary payload. A nil record
// yields nil so callers can tell "unavailable" from "zero".
func (d *Decoder) DecodeSiteSummary(rec model.Record) *model.SiteSummary {
	if rec == nil {
		return nil
	}
	s := &model.SiteSummary{}
	if v := d.Aliases.Resolve(rec, FieldTotalKWh); v != nil {
		s.TotalKWh = *v
	}
	if n := d.count(rec, FieldPoints); n != nil {
		s.Points = *n
	}
	return s
}

// DecodeInsights converts an insights payload. Fields that do not validate
// stay nil; a nil record yields nil.
func (d *Decoder) DecodeInsights(rec model.Record) *model.Insights {
	if rec == nil {
		return nil
	}
	ins := &model.Insights{
		DeviationPct:         d.Aliases.Resolve(rec, FieldInsDeviation),
		ExpectedKWh:          d.Aliases.Resolve(rec, FieldExpectedKWh),
		CriticalHours:        d.count(rec, FieldCritical),
		ElevatedHours:        d.count(rec, FieldElevated),
		BaselineLookbackDays: d.count(rec, FieldLookbackDays),
	}
	if s := firstString(rec, "stats_source", "source", "method"); s != "" {
		ins.StatsSource = &s
	}
	return ins
}

// DecodeSites converts the site list. Records without an id are skipped
// since nothing downstream can address them.
func (d *Decoder) DecodeSites(recs []model.Record) []model.Site {
	out := make([]model.Site, 0, len(recs))
	for _, rec := range recs {
		id := firstID(rec, "id", "site_id")
		if id == "" {
			continue
		}
		out = append(out, model.Site{
			ID:       id,
			Name:     firstString(rec, "name", "display_name"),
			Timezone: firstString(rec, "timezone", "tz"),
		})
	}
	return out
}

// count resolves f as a non-negative integer.
func (d *Decoder) count(rec model.Record, f Field) *int {
	v := d.Aliases.Resolve(rec, f)
	if v == nil || *v < 0 || *v != math.Trunc(*v) || *v > math.MaxInt32 {
		return nil
	}
	n := int(*v)
	return &n
}

func firstString(rec model.Record, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// firstID accepts string ids and integral numeric ids.
func firstID(rec model.Record, keys ...string) string {
	if s := firstString(rec, keys...); s != "" {
		return s
	}
	for _, k := range keys {
		if f, ok := toFinite(rec[k]); ok && f == math.Trunc(f) {
			return fmt.Sprintf("%.0f", f)
		}
	}
	return ""
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
