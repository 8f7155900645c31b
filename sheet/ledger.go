package sheet

import (
	"context"
	"slices"
	"strconv"

	"github.com/etnz/journey"
	"github.com/etnz/journey/date"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

var ledgerAliases = map[string]string{
	"Pay Date":     "Date of Pay",
	"Payment Date": "Date of Pay",
	"Payout Date":  "Date of Pay",
	"Date":         "Date of Pay",
}

// Ledger holds the recorded pay dates of every ticker. It is a journey.LedgerSource.
type Ledger struct {
	dates map[string][]journey.LedgerPayDate
}

// NewLedger decodes a pay date sheet.
//
// A sheet without a ticker or a pay date column is an empty ledger. Rows
// with an invalid date are skipped.
func NewLedger(t *Table) *Ledger {
	l := &Ledger{dates: make(map[string][]journey.LedgerPayDate)}
	t.Rename(ledgerAliases)
	ticker, pay := t.Column("Ticker"), t.Column("Date of Pay")
	if ticker < 0 || pay < 0 {
		log.Warn().Strs("header", t.Header).Msg("pay date sheet needs 'Ticker' and 'Date of Pay' columns, ignored")
		return l
	}
	for i, row := range t.Rows {
		tk := journey.NormalizeTicker(t.Cell(row, ticker))
		if tk == "" {
			continue
		}
		d, err := parseDate(t.Cell(row, pay))
		if err != nil {
			log.Warn().Int("row", i+2).Str("ticker", tk).Err(err).Msg("invalid pay date, skipped")
			continue
		}
		l.dates[tk] = append(l.dates[tk], journey.LedgerPayDate{PayDate: d})
	}
	for _, dates := range l.dates {
		slices.SortStableFunc(dates, func(a, b journey.LedgerPayDate) int { return a.PayDate.Compare(b.PayDate) })
	}
	return l
}

// LoadLedger reads and decodes a pay date sheet.
func LoadLedger(ctx context.Context, source string) (*Ledger, error) {
	t, err := Read(ctx, source)
	if err != nil {
		return nil, err
	}
	return NewLedger(t), nil
}

// PayDates returns the pay dates of ticker in chronological order.
func (l *Ledger) PayDates(_ context.Context, ticker string) ([]journey.LedgerPayDate, error) {
	return slices.Clone(l.dates[journey.NormalizeTicker(ticker)]), nil
}

// Tickers returns the number of tickers with pay dates.
func (l *Ledger) Tickers() int { return len(l.dates) }

// parseDate accepts the usual spreadsheet formats, and Excel serial numbers.
func parseDate(s string) (date.Date, error) {
	d, err := date.Parse(s)
	if err == nil {
		return d, nil
	}
	if serial, ferr := strconv.ParseFloat(s, 64); ferr == nil && serial > 0 {
		t, terr := excelize.ExcelDateToTime(serial, false)
		if terr == nil {
			return date.Of(t), nil
		}
	}
	return date.Date{}, err
}
