package journey

import (
	"context"
	"errors"

	"github.com/etnz/journey/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const wit no currency set
func NO(v float64) Money { return M(v, "") }

// D parses a date or panics.
func D(s string) date.Date { return date.MustParse(s) }

// series is a helper to build a USD price series from "date", price pairs.
func series(ticker string, kv ...any) *PriceSeries {
	s := NewPriceSeries(ticker, "USD")
	for i := 0; i+1 < len(kv); i += 2 {
		s.Append(D(kv[i].(string)), USD(kv[i+1].(float64)))
	}
	return s
}

func dividend(ticker, payDate string, amount float64) AlignedDividend {
	return AlignedDividend{Ticker: ticker, PayDate: D(payDate), Amount: USD(amount)}
}

// fakeSource serves canned data, and fails on tickers listed in errs.
type fakeSource struct {
	prices    map[string]*PriceSeries
	dividends map[string][]RawDividendEvent
	ledger    map[string][]LedgerPayDate
	errs      map[string]bool
}

var errFake = errors.New("fake failure")

func (f *fakeSource) Prices(ctx context.Context, ticker string, r date.Range) (*PriceSeries, error) {
	if f.errs[ticker] {
		return nil, errFake
	}
	s := NewPriceSeries(ticker, "USD")
	for p := range f.prices[ticker].Between(r) {
		s.Append(p.Date, p.Close)
	}
	return s, nil
}

func (f *fakeSource) Dividends(ctx context.Context, ticker string) ([]RawDividendEvent, error) {
	if f.errs[ticker] {
		return nil, errFake
	}
	return f.dividends[ticker], nil
}

func (f *fakeSource) PayDates(ctx context.Context, ticker string) ([]LedgerPayDate, error) {
	return f.ledger[ticker], nil
}
