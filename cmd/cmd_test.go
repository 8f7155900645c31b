package cmd

import (
	"testing"

	"github.com/etnz/journey"
	"github.com/etnz/journey/config"
	"github.com/etnz/journey/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTickers(t *testing.T) {
	all := []journey.Metadata{
		journey.NewMetadata("TSLY", "Option Income", "YieldMax TSLA", "TSLA"),
		journey.NewMetadata("JEPI", "Equity Premium", "JPMorgan", ""),
		journey.NewMetadata("QYLD", "Covered Call", "Global X", "QQQ"),
	}

	assert.Len(t, selectTickers(all, nil), 3)

	got := selectTickers(all, []string{" qyld", "TSLY", "NOPE"})
	require.Len(t, got, 2)
	assert.Equal(t, "TSLY", got[0].Ticker)
	assert.Equal(t, "QYLD", got[1].Ticker)
}

func TestJourneyRequest(t *testing.T) {
	c := journeyCmd{start: "2024-01-02", end: "2024-06-28", drip: true}
	req, err := c.request("TSLY", "USD")
	require.NoError(t, err)
	assert.Equal(t, date.Between(date.New(2024, 1, 2), date.New(2024, 6, 28)), req.Range)
	assert.True(t, req.DRIP)
	assert.Equal(t, "100.00 shares", req.Investment.String())

	c = journeyCmd{amount: "5000"}
	req, err = c.request("TSLY", "USD")
	require.NoError(t, err)
	assert.True(t, req.Range.From.IsZero())
	assert.True(t, req.Range.To.IsZero())
	assert.Equal(t, journey.ByAmount(journey.M(5000, "USD")).String(), req.Investment.String())
}

func TestJourneyRequest_Errors(t *testing.T) {
	tests := []struct {
		name string
		cmd  journeyCmd
	}{
		{"exclusive", journeyCmd{shares: "10", amount: "100"}},
		{"negative shares", journeyCmd{shares: "-1"}},
		{"bad amount", journeyCmd{amount: "lots"}},
		{"bad date", journeyCmd{start: "someday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cmd.request("TSLY", "USD")
			assert.Error(t, err)
		})
	}
}

func TestCompareRequest(t *testing.T) {
	c := compareCmd{start: "2024-01-02", amount: "10000", overlay: true}
	req, err := c.request([]string{"TSLY", "JEPI"}, "USD")
	require.NoError(t, err)
	assert.Equal(t, []string{"TSLY", "JEPI"}, req.Tickers)
	assert.Equal(t, date.New(2024, 1, 2), req.Range.From)
	assert.True(t, req.Range.To.IsZero())
	assert.True(t, req.Amount.Equal(journey.M(10000, "USD")))
	assert.True(t, req.Overlay)

	_, err = (&compareCmd{amount: "10000"}).request([]string{"TSLY"}, "USD")
	assert.Error(t, err, "start is required")
}

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	setupLogger(config.LogConfig{Level: "warn", Format: "json"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	setupLogger(config.LogConfig{Level: "bogus", Format: "console"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestProvider(t *testing.T) {
	cfg := &config.Config{Provider: "eodhd", Currency: "USD", HistoryStart: "2000-01-01"}
	_, err := provider(cfg)
	assert.Error(t, err, "missing API key")

	cfg.EODHD.APIKey = "demo"
	p, err := provider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)

	cfg.Provider = "yahoo"
	p, err = provider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)
}
