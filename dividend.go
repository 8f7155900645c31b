package journey

import (
	"slices"

	"github.com/etnz/journey/date"
)

// RawDividendEvent is a dividend as reported by a market data provider: the
// amount per share is known by its ex-dividend date.
type RawDividendEvent struct {
	ExDate date.Date `json:"ex_date"`
	Amount Money     `json:"amount"`
}

// LedgerPayDate is the date a dividend was actually paid, as recorded in an
// external ledger.
type LedgerPayDate struct {
	PayDate date.Date `json:"pay_date"`
}

// AlignedDividend is a dividend amount per share paid on a given day.
type AlignedDividend struct {
	PayDate date.Date `json:"pay_date"`
	Amount  Money     `json:"amount"`
	Ticker  string    `json:"ticker"`
}

// Align pairs dividend amounts with ledger pay dates for one ticker.
//
// Both sequences are taken in chronological order and matched by position:
// the i-th amount is paid on the i-th ledger date. Events beyond the ledger's
// length are paid on their own ex-date. Every event yields exactly one
// AlignedDividend, and ledger entries beyond the last event are ignored.
//
// Neither input is modified.
func Align(ticker string, events []RawDividendEvent, ledger []LedgerPayDate) []AlignedDividend {
	exs := slices.Clone(events)
	slices.SortStableFunc(exs, func(a, b RawDividendEvent) int { return a.ExDate.Compare(b.ExDate) })
	pays := slices.Clone(ledger)
	slices.SortStableFunc(pays, func(a, b LedgerPayDate) int { return a.PayDate.Compare(b.PayDate) })

	aligned := make([]AlignedDividend, 0, len(exs))
	for i, e := range exs {
		payDate := e.ExDate
		if i < len(pays) {
			payDate = pays[i].PayDate
		}
		aligned = append(aligned, AlignedDividend{
			PayDate: payDate,
			Amount:  e.Amount,
			Ticker:  ticker,
		})
	}
	return aligned
}
