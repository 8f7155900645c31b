package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/journey"
	"github.com/etnz/journey/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(v float64) journey.Money { return journey.M(v, "USD") }

func testRouter() (http.Handler, *Metrics) {
	m := journey.NewMarket("USD")
	m.Add(journey.NewSecurity(journey.NewMetadata("INCY", "Covered Call", "Income Fund", "BASE"),
		journey.NewPriceSeries("INCY", "USD",
			journey.PricePoint{Date: date.New(2024, 1, 1), Close: usd(10)},
			journey.PricePoint{Date: date.New(2024, 1, 2), Close: usd(10)},
			journey.PricePoint{Date: date.New(2024, 1, 3), Close: usd(20)},
		),
		[]journey.RawDividendEvent{{ExDate: date.New(2023, 12, 29), Amount: usd(1)}},
		[]journey.LedgerPayDate{{PayDate: date.New(2024, 1, 2)}}))
	m.Add(journey.NewSecurity(journey.NewMetadata("FLAT", "", "", ""),
		journey.NewPriceSeries("FLAT", "USD",
			journey.PricePoint{Date: date.New(2024, 1, 1), Close: usd(5)},
			journey.PricePoint{Date: date.New(2024, 1, 3), Close: usd(5)},
		), nil, nil))
	m.AddUnderlying(journey.NewSecurity(journey.NewMetadata("BASE", "", "", ""),
		journey.NewPriceSeries("BASE", "USD",
			journey.PricePoint{Date: date.New(2024, 1, 1), Close: usd(100)},
			journey.PricePoint{Date: date.New(2024, 1, 3), Close: usd(150)},
		), nil, nil))
	metrics := NewMetrics()
	return NewRouter(m, metrics, zerolog.Nop()), metrics
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	h, _ := testRouter()
	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestTickers(t *testing.T) {
	h, _ := testRouter()
	rec := get(t, h, "/api/tickers")
	require.Equal(t, http.StatusOK, rec.Code)

	var metas []journey.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metas))
	require.Len(t, metas, 2)
	assert.Equal(t, "FLAT", metas[0].Ticker)
	assert.Equal(t, journey.NoValue, metas[0].Company)
	assert.Equal(t, "BASE", metas[1].Underlying)
}

func TestJourney(t *testing.T) {
	h, _ := testRouter()
	rec := get(t, h, "/api/journey/incy?from=2024-01-01&to=2024-01-03&shares=10&overlay=true")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		Summary struct {
			TrueValue   journey.Money   `json:"true_value"`
			TotalReturn journey.Percent `json:"total_return_pct"`
			DaysHeld    int             `json:"days_held"`
		} `json:"summary"`
		Trajectory []json.RawMessage `json:"trajectory"`
		Underlying struct {
			Ticker string          `json:"ticker"`
			Return journey.Percent `json:"return_pct"`
		} `json:"underlying"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Summary.TrueValue.Equal(usd(210)), "true value = %v", report.Summary.TrueValue)
	assert.True(t, report.Summary.TotalReturn.Equal(110))
	assert.Equal(t, 2, report.Summary.DaysHeld)
	assert.Len(t, report.Trajectory, 3)
	assert.Equal(t, "BASE", report.Underlying.Ticker)
	assert.True(t, report.Underlying.Return.Equal(50))
}

func TestJourney_Errors(t *testing.T) {
	h, _ := testRouter()
	tests := []struct {
		target string
		code   int
	}{
		{"/api/journey/NOPE", http.StatusNotFound},
		{"/api/journey/INCY?from=2025-01-01&to=2025-01-31", http.StatusNotFound},
		{"/api/journey/INCY?from=2024-01-03&to=2024-01-01", http.StatusBadRequest},
		{"/api/journey/INCY?from=yesterday-ish", http.StatusBadRequest},
		{"/api/journey/INCY?shares=1&amount=10", http.StatusBadRequest},
		{"/api/journey/INCY?shares=-1&to=2024-01-03", http.StatusBadRequest},
		{"/api/journey/INCY?drip=maybe", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			rec := get(t, h, tc.target)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestCompare(t *testing.T) {
	h, _ := testRouter()
	rec := get(t, h, "/api/compare?tickers=FLAT,INCY&from=2024-01-01&to=2024-01-03&amount=1000&overlay=true")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var lb struct {
		Standings []struct {
			Ticker     string          `json:"ticker"`
			Underlying bool            `json:"underlying"`
			Return     journey.Percent `json:"total_return_pct"`
			HasYield   bool            `json:"has_yield"`
		} `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lb))
	require.Len(t, lb.Standings, 3)
	assert.Equal(t, "INCY", lb.Standings[0].Ticker)
	assert.Equal(t, "BASE", lb.Standings[1].Ticker)
	assert.True(t, lb.Standings[1].Underlying)
	assert.Equal(t, "FLAT", lb.Standings[2].Ticker)
	assert.True(t, lb.Standings[0].HasYield)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/compare?from=2024-01-01").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/compare?tickers=INCY&amount=-5").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/compare?tickers=NOPE").Code)
}

func TestDividends(t *testing.T) {
	h, _ := testRouter()
	rec := get(t, h, "/api/dividends/INCY")
	require.Equal(t, http.StatusOK, rec.Code)

	var d []journey.AlignedDividend
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	require.Len(t, d, 1)
	assert.Equal(t, date.New(2024, 1, 2), d[0].PayDate)
}

func TestMetrics(t *testing.T) {
	h, _ := testRouter()
	get(t, h, "/api/journey/INCY?from=2024-01-01&to=2024-01-03")
	get(t, h, "/api/journey/NOPE")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	metrics := string(body)
	for _, want := range []string{
		`hyt_simulations_total{kind="journey",result="success"} 1`,
		`hyt_simulations_total{kind="journey",result="error"} 1`,
		`hyt_http_requests_total{code="404",route="/api/journey/{ticker}"} 1`,
		`hyt_simulation_latency_seconds_count{kind="journey"} 2`,
	} {
		assert.True(t, strings.Contains(metrics, want), "missing %s in:\n%s", want, metrics)
	}
}
