package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/journey/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with an empty home.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.Provider)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "https://eodhd.com/api", cfg.EODHD.BaseURL)
	assert.Equal(t, "US", cfg.EODHD.Exchange)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Yahoo.BaseURL)
	assert.Equal(t, 2.0, cfg.Yahoo.Rate)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	since, err := cfg.Since()
	require.NoError(t, err)
	assert.Equal(t, date.New(2000, 1, 1), since)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("HYT_PROVIDER", "EODHD")
	t.Setenv("HYT_EODHD_API_KEY", "secret")
	t.Setenv("HYT_CURRENCY", "eur")
	t.Setenv("HYT_CONCURRENCY", "8")
	t.Setenv("HYT_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eodhd", cfg.Provider)
	assert.Equal(t, "secret", cfg.EODHD.APIKey)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HYT_MASTER=tickers.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("HYT_MASTER") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tickers.csv", cfg.Master)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	yaml := `
provider: eodhd
master: https://example.com/master.csv
ledger: paydates.xlsx
history_start: "2015-06-01"
server:
  addr: 127.0.0.1:9000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hyt.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eodhd", cfg.Provider)
	assert.Equal(t, "https://example.com/master.csv", cfg.Master)
	assert.Equal(t, "paydates.xlsx", cfg.Ledger)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	since, err := cfg.Since()
	require.NoError(t, err)
	assert.Equal(t, date.New(2015, 6, 1), since)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Provider: "yahoo", Concurrency: 1, HistoryStart: "2000-01-01", Log: LogConfig{Format: "console"}}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"provider", func(c *Config) { c.Provider = "bloomberg" }},
		{"concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"rate", func(c *Config) { c.Yahoo.Rate = -1 }},
		{"history_start", func(c *Config) { c.HistoryStart = "yesterday" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
