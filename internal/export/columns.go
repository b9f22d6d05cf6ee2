package export

// Kind tells the serializer how to render a column.
type Kind int

const (
	Text Kind = iota
	Number
)

// Column is one output column. Decimals applies to Number columns only.
type Column struct {
	Key      string
	Header   string
	Kind     Kind
	Decimals int
}

func text(key string) Column { return Column{Key: key, Header: key, Kind: Text} }

func num(key string, decimals int) Column {
	return Column{Key: key, Header: key, Kind: Number, Decimals: decimals}
}

// Precision by field semantics: energy 1-2 places, currency 2, price per
// unit 6, percentages 2, counts 0.
var (
	ReportColumns = []Column{
		text("site_id"),
		text("site_name"),
		num("window_hours", 0),
		num("total_kwh", 2),
		num("points", 0),
		num("avg_kwh_per_point", 4),
		num("deviation_pct", 2),
		num("expected_kwh", 2),
		num("critical_hours", 0),
		num("elevated_hours", 0),
		num("baseline_lookback_days", 0),
		text("stats_source"),
	}

	OpportunityColumns = []Column{
		num("rank", 0),
		text("id"),
		text("name"),
		text("source"),
		text("description"),
		num("est_annual_kwh_saved", 1),
		num("annual_value", 2),
		num("price_per_kwh", 6),
		num("simple_payback_years", 2),
		num("est_capex", 2),
		num("est_co2_tons_per_year", 2),
		text("criterion"),
		num("score_key", 6),
	}

	TrendColumns = []Column{
		text("label"),
		text("ts"),
		num("value", 2),
	}

	KPIColumns = []Column{
		text("site_id"),
		text("window"),
		num("energy_kwh", 2),
		num("baseline_kwh", 2),
		num("deviation_pct", 2),
		num("cost_actual", 2),
		num("cost_baseline", 2),
		num("cost_delta", 2),
		text("currency"),
		num("price_per_kwh", 6),
	}
)
