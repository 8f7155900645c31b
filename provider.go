package journey

import (
	"context"

	"github.com/etnz/journey/date"
)

// PriceSource provides the daily closing prices of a ticker.
//
// Implementations return an empty series rather than an error when the
// ticker simply has no data in the range.
type PriceSource interface {
	Prices(ctx context.Context, ticker string, r date.Range) (*PriceSeries, error)
}

// DividendSource provides the whole dividend history of a ticker, by ex-date.
type DividendSource interface {
	Dividends(ctx context.Context, ticker string) ([]RawDividendEvent, error)
}

// LedgerSource provides the recorded pay dates of a ticker, in chronological order.
type LedgerSource interface {
	PayDates(ctx context.Context, ticker string) ([]LedgerPayDate, error)
}

// MarketData is a provider of both prices and dividends.
type MarketData interface {
	PriceSource
	DividendSource
}

// NoLedger is a LedgerSource without any pay date: dividends are paid on their ex-date.
type NoLedger struct{}

func (NoLedger) PayDates(context.Context, string) ([]LedgerPayDate, error) { return nil, nil }
