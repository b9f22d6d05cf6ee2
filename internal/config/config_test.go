package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"energy-insights/internal/analysis"
	"energy-insights/internal/export"
	"energy-insights/internal/model"
	"energy-insights/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Nil(t, c.FallbackPrice())
	assert.Equal(t, ',', c.DelimiterRune())
	assert.Equal(t, time.UTC, c.Location())
	assert.Equal(t, analysis.DefaultMinPaybackYears, c.RankOptions().MinPaybackYears)
	assert.False(t, c.IsProduction())
}

func TestLoadUncheckedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
backend:
  base_url: https://analytics.example.com/api
  max_concurrency: 8
pricing:
  price_per_kwh: 0.28
trend:
  window_hours: 168
  timezone: Europe/Rome
export:
  delimiter: ";"
  substitute: ","
aliases:
  energy_24h: [kwh_today]
`), 0o644))

	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "9090", c.Server.Port)
	assert.Equal(t, 8, c.Backend.MaxConcurrency)
	assert.Equal(t, 30*time.Second, c.Backend.Timeout, "defaults survive a partial file")
	require.NotNil(t, c.FallbackPrice())
	assert.Equal(t, 0.28, *c.FallbackPrice())
	assert.Equal(t, ';', c.DelimiterRune())
	assert.Equal(t, "Europe/Rome", c.Location().String())
	assert.Equal(t, []string{"kwh_today"}, c.AliasTable()[normalize.FieldEnergy24h])
	assert.Equal(t, normalize.DefaultAliases()[normalize.FieldEnergy7d], c.AliasTable()[normalize.FieldEnergy7d])
}

func TestLoadSemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  delimiter: \";\"\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ';', c.ExportOptions().Delimiter)
	assert.Empty(t, c.ExportOptions().Substitute)

	out, err := export.Serialize([]model.Record{{"site_name": "North; East"}},
		[]export.Column{{Key: "site_name", Header: "site_name"}}, c.ExportOptions())
	require.NoError(t, err)
	assert.Equal(t, "site_name\nNorth, East\n", out)
}

func TestLoadUncheckedMissingFile(t *testing.T) {
	_, err := LoadUnchecked(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(env(map[string]string{
		"API_PORT":               "3000",
		"API_ENV":                "production",
		"ANALYTICS_API_KEY":      "0123456789abcdef",
		"ENABLE_ANALYTICS_CACHE": "true",
		"ANALYTICS_CACHE_TTL":    "90s",
		"PRICE_PER_KWH":          "0.31",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", c.Server.Port)
	assert.True(t, c.IsProduction())
	assert.Equal(t, "0123456789abcdef", c.Backend.APIKey)
	assert.True(t, c.Backend.Cache.Enabled)
	assert.Equal(t, 90*time.Second, c.Backend.Cache.TTL)
	assert.Equal(t, 0.31, c.Pricing.PricePerKWh)

	assert.Error(t, Default().ApplyEnv(env(map[string]string{"PRICE_PER_KWH": "cheap"})))
	assert.Error(t, Default().ApplyEnv(env(map[string]string{"ANALYTICS_CACHE_TTL": "soon"})))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no port", func(c *Config) { c.Server.Port = "" }},
		{"no base url", func(c *Config) { c.Backend.BaseURL = "" }},
		{"zero concurrency", func(c *Config) { c.Backend.MaxConcurrency = 0 }},
		{"negative price", func(c *Config) { c.Pricing.PricePerKWh = -1 }},
		{"zero window", func(c *Config) { c.Trend.WindowHours = 0 }},
		{"bad timezone", func(c *Config) { c.Trend.Timezone = "Mars/Olympus" }},
		{"long delimiter", func(c *Config) { c.Export.Delimiter = "||" }},
		{"substitute has delimiter", func(c *Config) { c.Export.Substitute = "a,b" }},
		{"quote substitute", func(c *Config) { c.Export.Substitute = `"` }},
		{"newline substitute", func(c *Config) { c.Export.Substitute = "\n" }},
		{"numeric delimiter", func(c *Config) { c.Export.Delimiter = "." }},
		{"unknown alias field", func(c *Config) { c.Aliases = map[string][]string{"bogus": {"x"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
