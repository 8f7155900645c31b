package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/journey"
	"github.com/etnz/journey/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func usd(v float64) journey.Money { return journey.M(v, "USD") }

func testMarket() *journey.Market {
	m := journey.NewMarket("USD")
	prices := journey.NewPriceSeries("INCY", "USD",
		journey.PricePoint{Date: date.New(2024, 1, 1), Close: usd(10)},
		journey.PricePoint{Date: date.New(2024, 1, 2), Close: usd(10)},
		journey.PricePoint{Date: date.New(2024, 1, 3), Close: usd(20)},
	)
	events := []journey.RawDividendEvent{{ExDate: date.New(2023, 12, 28), Amount: usd(1)}}
	ledger := []journey.LedgerPayDate{{PayDate: date.New(2024, 1, 2)}}
	m.Add(journey.NewSecurity(journey.NewMetadata("INCY", "Covered Call", "Income Fund", ""), prices, events, ledger))
	m.Add(journey.NewSecurity(journey.NewMetadata("FLAT", "", "", ""), journey.NewPriceSeries("FLAT", "USD",
		journey.PricePoint{Date: date.New(2024, 1, 1), Close: usd(5)},
		journey.PricePoint{Date: date.New(2024, 1, 3), Close: usd(5)},
	), nil, nil))
	return m
}

// toHTML converts markdown the way a markdown viewer would.
func toHTML(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert([]byte(md), &buf); err != nil {
		t.Fatalf("goldmark.Convert() failed: %v", err)
	}
	return buf.String()
}

func journeyReport(t *testing.T, drip bool) *journey.Report {
	t.Helper()
	r, err := testMarket().Journey(journey.JourneyRequest{
		Ticker:     "INCY",
		Range:      date.Between(date.New(2024, 1, 1), date.New(2024, 1, 3)),
		Investment: journey.ByShares(journey.Q(10)),
		DRIP:       drip,
	})
	if err != nil {
		t.Fatalf("Journey() unexpected error: %v", err)
	}
	return r
}

func TestRenderJourney(t *testing.T) {
	md := RenderJourney(journeyReport(t, false), JourneyRenderOptions{})
	if strings.HasPrefix(md, "error") {
		t.Fatalf("RenderJourney() failed: %s", md)
	}
	for _, want := range []string{
		"# Performance Simulator : INCY",
		"(2 days)",
		"| Initial Capital | $100.00 | |",
		"| End Asset Value | $200.00 | +100.00% |",
		"| Dividends Collected | $10.00 | |",
		"| True Total Value | $210.00 | +110.00% |",
		"PROFIT: +$110.00",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderJourney() missing %q in:\n%s", want, md)
		}
	}
	// newest first
	if strings.Index(md, "| 2024-01-03 |") > strings.Index(md, "| 2024-01-01 |") {
		t.Errorf("RenderJourney() detail is not newest first:\n%s", md)
	}

	html := toHTML(t, md)
	if n := strings.Count(html, "<table>"); n != 3 {
		t.Errorf("RenderJourney() renders %d tables, want 3:\n%s", n, html)
	}
}

func TestRenderJourney_DRIP(t *testing.T) {
	md := RenderJourney(journeyReport(t, true), JourneyRenderOptions{SkipDetail: true})
	for _, want := range []string{
		"| End Value (DRIP) | $220.00 | +120.00% |",
		"| New Shares Acquired | 1.00 Shares | |",
		"N/A (Reinvested)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderJourney() missing %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "## Detail") {
		t.Errorf("RenderJourney() renders the detail when skipped:\n%s", md)
	}
}

func TestRenderJourney_MaxRows(t *testing.T) {
	md := RenderJourney(journeyReport(t, false), JourneyRenderOptions{MaxRows: 1})
	if strings.Contains(md, "| 2024-01-01 |") || !strings.Contains(md, "_2 older days not shown._") {
		t.Errorf("RenderJourney() does not truncate the detail:\n%s", md)
	}
}

func TestRenderLeaderboard(t *testing.T) {
	m := testMarket()
	r := date.Between(date.New(2024, 1, 1), date.New(2024, 1, 3))
	for _, drip := range []bool{false, true} {
		lb, err := m.Compare(t.Context(), journey.CompareRequest{Tickers: []string{"FLAT", "INCY"}, Range: r, Amount: usd(1000), DRIP: drip})
		if err != nil {
			t.Fatalf("Compare() unexpected error: %v", err)
		}
		md := RenderLeaderboard(lb)
		if !strings.Contains(md, "Leaderboard ($1,000.00 Investment)") {
			t.Errorf("RenderLeaderboard() missing title:\n%s", md)
		}
		if strings.Index(md, "| INCY") > strings.Index(md, "| FLAT") {
			t.Errorf("RenderLeaderboard() is not ranked:\n%s", md)
		}
		if got := strings.Contains(md, "Yield %"); got == drip {
			t.Errorf("RenderLeaderboard(drip=%v) yield column = %v", drip, got)
		}
		if n := strings.Count(toHTML(t, md), "<tr>"); n != 3 {
			t.Errorf("RenderLeaderboard() renders %d rows, want 3:\n%s", n, md)
		}
	}
}

func TestRenderDividends(t *testing.T) {
	md := RenderDividends(testMarket().Get("INCY"))
	for _, want := range []string{"# Dividends of INCY", "1 dividends reported, 1 pay dates recorded.", "| 0 | 2024-01-02 | $1.00 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderDividends() missing %q in:\n%s", want, md)
		}
	}
}
