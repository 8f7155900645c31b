package journey

import (
	"errors"
	"testing"
)

func TestSummarize(t *testing.T) {
	prices, dividends, in := scenario(false)
	tr, err := Simulate(prices, dividends, in)
	if err != nil {
		t.Fatalf("Simulate() unexpected error: %v", err)
	}
	got, err := Summarize(tr, in, USD(10))
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}

	money := []struct {
		name      string
		got, want Money
	}{
		{"InitialCapital", got.InitialCapital, USD(100)},
		{"MarketValue", got.MarketValue, USD(200)},
		{"CashPocketed", got.CashPocketed, USD(10)},
		{"TrueValue", got.TrueValue, USD(210)},
		{"MarketPL", got.MarketPL, USD(100)},
		{"TotalPL", got.TotalPL, USD(110)},
	}
	for _, m := range money {
		if !m.got.Equal(m.want) {
			t.Errorf("Summary.%s = %v, want %v", m.name, m.got, m.want)
		}
	}
	if !got.MarketPLPercent.Equal(100) {
		t.Errorf("Summary.MarketPLPercent = %v, want 100%%", got.MarketPLPercent)
	}
	if !got.TotalReturn.Equal(110) {
		t.Errorf("Summary.TotalReturn = %v, want 110%%", got.TotalReturn)
	}
	if got.DaysHeld != 2 {
		t.Errorf("Summary.DaysHeld = %d, want 2", got.DaysHeld)
	}
	// 10/100 * 365.25/2 * 100
	if !got.AnnualizedYield.Equal(1826.25) {
		t.Errorf("Summary.AnnualizedYield = %v, want 1826.25%%", got.AnnualizedYield)
	}
	if !got.SharesAdded.IsZero() {
		t.Errorf("Summary.SharesAdded = %v, want 0", got.SharesAdded)
	}
}

func TestSummarize_DRIP(t *testing.T) {
	prices, dividends, in := scenario(true)
	tr, _ := Simulate(prices, dividends, in)
	got, err := Summarize(tr, in, USD(10))
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if !got.SharesAdded.Equal(Q(1)) {
		t.Errorf("Summary.SharesAdded = %v, want 1", got.SharesAdded)
	}
	if !got.TotalReturn.Equal(120) {
		t.Errorf("Summary.TotalReturn = %v, want 120%%", got.TotalReturn)
	}
	if !got.AnnualizedYield.Equal(0) {
		t.Errorf("Summary.AnnualizedYield = %v, want 0", got.AnnualizedYield)
	}
}

func TestSummarize_ZeroCapital(t *testing.T) {
	prices, dividends, in := scenario(false)
	in.InitialShares = Q(0)
	tr, _ := Simulate(prices, dividends, in)
	got, err := Summarize(tr, in, USD(10))
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if !got.MarketPLPercent.Equal(0) || !got.TotalReturn.Equal(0) || !got.AnnualizedYield.Equal(0) {
		t.Errorf("Summarize() with no capital = %v, %v, %v, want 0", got.MarketPLPercent, got.TotalReturn, got.AnnualizedYield)
	}
}

func TestSummarize_SameDay(t *testing.T) {
	prices, dividends, _ := scenario(false)
	in := SimulationInput{Ticker: "XYZ", Start: D("2024-01-02"), End: D("2024-01-02"), InitialShares: Q(10)}
	tr, _ := Simulate(prices, dividends, in)
	got, err := Summarize(tr, in, USD(10))
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if got.DaysHeld != 0 || !got.AnnualizedYield.Equal(0) {
		t.Errorf("Summarize() days = %d, yield = %v, want 0 and 0", got.DaysHeld, got.AnnualizedYield)
	}
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil, SimulationInput{}, USD(10))
	if !errors.Is(err, ErrEmptyTrajectory) {
		t.Errorf("Summarize(empty) error = %v, want %v", err, ErrEmptyTrajectory)
	}
}
