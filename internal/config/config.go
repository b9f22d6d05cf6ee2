package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"energy-insights/internal/analysis"
	"energy-insights/internal/export"
	"energy-insights/internal/normalize"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Pricing PricingConfig `yaml:"pricing"`
	Ranking RankingConfig `yaml:"ranking"`
	Trend   TrendConfig   `yaml:"trend"`
	Export  ExportConfig  `yaml:"export"`
	// Aliases replaces the backend key list of individual canonical fields.
	Aliases map[string][]string `yaml:"aliases"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	Env            string   `yaml:"env"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	StaticDir      string   `yaml:"static_dir"`
}

type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxConcurrency int           `yaml:"max_concurrency"`
	Cache          CacheConfig   `yaml:"cache"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

type PricingConfig struct {
	// PricePerKWh is the fallback electricity price when neither the request
	// nor the site KPI carries one. Zero means "no fallback price".
	PricePerKWh float64 `yaml:"price_per_kwh"`
	Currency    string  `yaml:"currency"`
}

type RankingConfig struct {
	MinPaybackYears float64 `yaml:"min_payback_years"`
}

type TrendConfig struct {
	WindowHours float64 `yaml:"window_hours"`
	Timezone    string  `yaml:"timezone"`
}

type ExportConfig struct {
	Delimiter string `yaml:"delimiter"`
	// Substitute replaces the delimiter inside free text. Empty picks ";",
	// or "," when the delimiter is ";".
	Substitute string `yaml:"substitute"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
			StaticDir:      "./web/dist",
		},
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000/api",
			Timeout:        30 * time.Second,
			MaxConcurrency: 4,
			Cache:          CacheConfig{TTL: 5 * time.Minute},
		},
		Pricing: PricingConfig{Currency: "EUR"},
		Ranking: RankingConfig{MinPaybackYears: analysis.DefaultMinPaybackYears},
		Trend:   TrendConfig{WindowHours: 24, Timezone: "UTC"},
		Export:  ExportConfig{Delimiter: ","},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads the file over the defaults without env overrides or
// validation. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overlays environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := getenv("ANALYTICS_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := getenv("ANALYTICS_API_KEY"); v != "" {
		c.Backend.APIKey = v
	}
	if v := getenv("ENABLE_ANALYTICS_CACHE"); v != "" {
		c.Backend.Cache.Enabled = v == "true"
	}
	if v := getenv("ANALYTICS_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ANALYTICS_CACHE_TTL: %w", err)
		}
		c.Backend.Cache.TTL = d
	}
	if v := getenv("PRICE_PER_KWH"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PRICE_PER_KWH: %w", err)
		}
		c.Pricing.PricePerKWh = p
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be > 0")
	}
	if c.Backend.MaxConcurrency < 1 {
		return errors.New("backend.max_concurrency must be >= 1")
	}
	if math.IsNaN(c.Pricing.PricePerKWh) || math.IsInf(c.Pricing.PricePerKWh, 0) || c.Pricing.PricePerKWh < 0 {
		return errors.New("pricing.price_per_kwh must be a finite number >= 0")
	}
	if c.Ranking.MinPaybackYears <= 0 {
		return errors.New("ranking.min_payback_years must be > 0")
	}
	if c.Trend.WindowHours <= 0 {
		return errors.New("trend.window_hours must be > 0")
	}
	if _, err := time.LoadLocation(c.Trend.Timezone); err != nil {
		return fmt.Errorf("trend.timezone invalid: %w", err)
	}
	if len([]rune(c.Export.Delimiter)) != 1 {
		return errors.New("export.delimiter must be a single character")
	}
	if err := c.ExportOptions().Validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for field := range c.Aliases {
		if _, ok := normalize.DefaultAliases()[normalize.Field(field)]; !ok {
			return fmt.Errorf("aliases: unknown field %q", field)
		}
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// FallbackPrice returns the configured price, or nil when none is set.
func (c *Config) FallbackPrice() *float64 {
	if c.Pricing.PricePerKWh <= 0 {
		return nil
	}
	p := c.Pricing.PricePerKWh
	return &p
}

// AliasTable merges the configured overrides onto the default alias table.
func (c *Config) AliasTable() normalize.Aliases {
	override := normalize.Aliases{}
	for field, keys := range c.Aliases {
		override[normalize.Field(field)] = keys
	}
	return normalize.MergeAliases(normalize.DefaultAliases(), override)
}

// Location returns the trend display timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Trend.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RankOptions returns the ranking options.
func (c *Config) RankOptions() analysis.RankOptions {
	return analysis.RankOptions{MinPaybackYears: c.Ranking.MinPaybackYears}
}

// ExportOptions returns the CSV options. An empty substitute is left for the
// serializer to pick.
func (c *Config) ExportOptions() export.Options {
	return export.Options{Delimiter: c.DelimiterRune(), Substitute: c.Export.Substitute}
}

// DelimiterRune returns the export delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.Export.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}
