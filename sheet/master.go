package sheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/journey"
)

// ErrNoTickerColumn is returned for a master sheet without a Ticker column.
var ErrNoTickerColumn = errors.New("master sheet must have a 'Ticker' column")

var masterAliases = map[string]string{
	"Fund Strategy": "Strategy",
	"Asset Class":   "Strategy",
	"Fund Name":     "Company",
	"Name":          "Company",
}

// Master decodes the tickers listed in a master sheet.
//
// Tickers are trimmed and upper case, listed once in order of first
// appearance. Missing values are journey.NoValue.
func Master(t *Table) ([]journey.Metadata, error) {
	t.Rename(masterAliases)
	ticker := t.Column("Ticker")
	if ticker < 0 {
		return nil, ErrNoTickerColumn
	}
	strategy, company, underlying := t.Column("Strategy"), t.Column("Company"), t.Column("Underlying")

	seen := make(map[string]bool)
	metas := make([]journey.Metadata, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := journey.NewMetadata(t.Cell(row, ticker), t.Cell(row, strategy), t.Cell(row, company), t.Cell(row, underlying))
		if m.Ticker == "" || m.Ticker == journey.NoValue || seen[m.Ticker] {
			continue
		}
		seen[m.Ticker] = true
		metas = append(metas, m)
	}
	return metas, nil
}

// LoadMaster reads and decodes a master sheet.
func LoadMaster(ctx context.Context, source string) ([]journey.Metadata, error) {
	t, err := Read(ctx, source)
	if err != nil {
		return nil, err
	}
	metas, err := Master(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return metas, nil
}
