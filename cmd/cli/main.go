package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata"

	"energy-insights/internal/analysis"
	"energy-insights/internal/config"
	"energy-insights/internal/data"
	"energy-insights/internal/export"
	"energy-insights/internal/model"
	"energy-insights/internal/normalize"
	"energy-insights/internal/report"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	_ = godotenv.Load()

	switch os.Args[1] {
	case "rank":
		cmdRank(os.Args[2:])
	case "trend":
		cmdTrend(os.Args[2:])
	case "report":
		cmdReport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli rank --data opportunities.json [--price 0.30] [--out ranked.csv]")
	fmt.Println("  cli trend --data series.json [--hours 24] [--tz Europe/Rome] [--out trend.csv]")
	fmt.Println("  cli report --sites sites.json --summaries summaries/ --insights insights/ [--out report.csv]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - inputs are saved analytics backend payloads (JSON)")
	fmt.Println("  - summaries/ and insights/ hold one <site_id>.json per site; missing files are allowed")
	fmt.Println("  - --config points at the same YAML the API server uses")
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	return cfg
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dataPath := fs.String("data", "opportunities.json", "Path to an opportunity list payload")
	var price priceFlag
	fs.Var(&price, "price", "Electricity price per kWh (default: config fallback)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional CSV output path")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	recs, err := data.LoadRecordsJSON(*dataPath)
	if err != nil {
		fail(err)
	}

	p := price.value
	if p == nil {
		p = cfg.FallbackPrice()
	}

	dec := normalize.NewDecoder(cfg.AliasTable())
	ranked := analysis.RankOpportunities(dec.DecodeOpportunities(recs), p, cfg.RankOptions())

	if *outPath != "" {
		writeCSV(cfg, *outPath, export.OpportunityRecords(ranked), export.OpportunityColumns)
		return
	}

	fmt.Printf("%-4s %-28s %-7s %-12s %-12s %-10s %-12s\n", "rank", "name", "source", "kWh/yr", "value/yr", "payback", "criterion")
	for _, r := range ranked {
		fmt.Printf("%-4d %-28s %-7s %-12s %-12s %-10s %-12s\n",
			r.Rank,
			truncate(r.Opportunity.Name, 28),
			r.Opportunity.Source,
			fmtOpt(r.Opportunity.AnnualKWhSaved, 1),
			fmtOpt(r.Score.AnnualValue, 2),
			fmtOpt(r.Opportunity.PaybackYears, 2),
			r.Score.Criterion,
		)
	}
}

func cmdTrend(args []string) {
	fs := flag.NewFlagSet("trend", flag.ExitOnError)
	dataPath := fs.String("data", "series.json", "Path to a timeseries payload")
	hours := fs.Float64("hours", 0, "Window length in hours (0 = config)")
	tz := fs.String("tz", "", "Display timezone (default: config)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional CSV output path")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	recs, err := data.LoadRecordsJSON(*dataPath)
	if err != nil {
		fail(err)
	}
	loc := cfg.Location()
	if *tz != "" {
		if loc, err = time.LoadLocation(*tz); err != nil {
			fail(err)
		}
	}
	window := *hours
	if window == 0 {
		window = cfg.Trend.WindowHours
	}

	dec := normalize.NewDecoder(cfg.AliasTable())
	agg, err := analysis.Aggregate(dec.DecodeSeries(recs), window, loc)
	if err != nil {
		fail(err)
	}

	if *outPath != "" {
		writeCSV(cfg, *outPath, export.TrendRecords(agg), export.TrendColumns)
		return
	}
	if agg.Summary == nil {
		fmt.Println("no data")
		return
	}
	s := agg.Summary
	fmt.Printf("points=%d window=%gh\n", s.Count, s.WindowHours)
	fmt.Printf("peak=%.2f at %s avg=%.2f min=%.2f\n", s.PeakValue, s.PeakLabel, s.Average, s.Min)
}

func cmdReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	sitesPath := fs.String("sites", "sites.json", "Path to the site list payload")
	summariesDir := fs.String("summaries", "", "Directory of <site_id>.json timeseries summaries")
	insightsDir := fs.String("insights", "", "Directory of <site_id>.json insights payloads")
	hours := fs.Float64("hours", 0, "Window length in hours (0 = config)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/report.csv", "Output path (.csv or .xlsx)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	siteRecs, err := data.LoadRecordsJSON(*sitesPath)
	if err != nil {
		fail(err)
	}
	summaries, err := data.LoadRecordDir(*summariesDir)
	if err != nil {
		fail(err)
	}
	insights, err := data.LoadRecordDir(*insightsDir)
	if err != nil {
		fail(err)
	}
	window := *hours
	if window == 0 {
		window = cfg.Trend.WindowHours
	}

	dec := normalize.NewDecoder(cfg.AliasTable())
	sites := dec.DecodeSites(siteRecs)
	inputs := make([]report.Input, 0, len(sites))
	for _, s := range sites {
		inputs = append(inputs, report.Input{
			Site:     s,
			Summary:  dec.DecodeSiteSummary(summaries[s.ID]),
			Insights: dec.DecodeInsights(insights[s.ID]),
		})
	}
	rows := report.BuildRows(inputs, window)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fail(err)
	}
	if filepath.Ext(*outPath) == ".xlsx" {
		f, err := os.Create(*outPath)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		if err := export.WriteXLSX(f, export.DefaultSheet, export.ReportRecords(rows), export.ReportColumns); err != nil {
			fail(err)
		}
	} else {
		writeCSV(cfg, *outPath, export.ReportRecords(rows), export.ReportColumns)
	}

	t := report.Summarize(rows)
	fmt.Printf("Wrote %d rows to %s\n", len(rows), *outPath)
	fmt.Printf("Total=%.2f kWh sites_with_data=%d critical_hours=%d\n", t.TotalKWh, t.SitesWithData, t.CriticalHours)
}

func writeCSV(cfg *config.Config, path string, rows []model.Record, columns []export.Column) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fail(err)
	}
	f, err := os.Create(path)
	if err != nil {
		fail(err)
	}
	defer f.Close()
	if err := export.WriteCSV(f, rows, columns, cfg.ExportOptions()); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), path)
}

// priceFlag is an optional price. Unset means "use the config fallback"; an
// explicit 0 is a real price.
type priceFlag struct {
	value *float64
}

func (p *priceFlag) String() string {
	if p == nil || p.value == nil {
		return ""
	}
	return strconv.FormatFloat(*p.value, 'f', -1, 64)
}

func (p *priceFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("price must be a finite number >= 0, got %q", s)
	}
	p.value = &v
	return nil
}

func fmtOpt(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
