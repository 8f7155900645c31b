package journey

import (
	"context"
	"sync"

	"github.com/etnz/journey/date"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Sources are the collaborators a Market is loaded from.
type Sources struct {
	Prices    PriceSource
	Dividends DividendSource
	Ledger    LedgerSource // nil means dividends are paid on their ex-date.
}

// Load fetches and aligns the market data of every listed ticker, and of
// the underlying assets they track, running up to limit fetches at once.
//
// Fetch failures are logged and leave the ticker with no data, Load only
// fails when ctx is done.
func Load(ctx context.Context, src Sources, metas []Metadata, r date.Range, currency string, limit int) (*Market, error) {
	if src.Ledger == nil {
		src.Ledger = NoLedger{}
	}
	m := NewMarket(currency)
	m.SetConcurrency(limit)

	listed := make(map[string]bool)
	for _, meta := range metas {
		listed[meta.Ticker] = true
	}
	var underlyings []Metadata
	seen := make(map[string]bool)
	for _, meta := range metas {
		u := meta.Underlying
		if !meta.HasUnderlying() || listed[u] || seen[u] {
			continue
		}
		seen[u] = true
		underlyings = append(underlyings, NewMetadata(u, "", "", ""))
	}

	securities := make([]*Security, len(metas))
	underlying := make([]*Security, len(underlyings))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, meta := range metas {
		g.Go(func() error {
			securities[i] = fetch(ctx, src.Prices, src.Dividends, src.Ledger, meta, r, currency)
			return ctx.Err()
		})
	}
	for i, meta := range underlyings {
		g.Go(func() error {
			// underlyings are not in the ledger.
			underlying[i] = fetch(ctx, src.Prices, src.Dividends, NoLedger{}, meta, r, currency)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range securities {
		m.Add(s)
	}
	for _, s := range underlying {
		m.AddUnderlying(s)
	}
	return m, nil
}

func fetch(ctx context.Context, prices PriceSource, dividends DividendSource, ledger LedgerSource, meta Metadata, r date.Range, currency string) *Security {
	var (
		series *PriceSeries
		events []RawDividendEvent
		dates  []LedgerPayDate
		wg     sync.WaitGroup
	)
	logger := log.With().Str("ticker", meta.Ticker).Logger()

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if series, err = prices.Prices(ctx, meta.Ticker, r); err != nil {
			logger.Warn().Err(err).Msg("cannot fetch prices")
			series = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if events, err = dividends.Dividends(ctx, meta.Ticker); err != nil {
			logger.Warn().Err(err).Msg("cannot fetch dividends")
			events = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if dates, err = ledger.PayDates(ctx, meta.Ticker); err != nil {
			logger.Warn().Err(err).Msg("cannot read pay dates")
			dates = nil
		}
	}()
	wg.Wait()

	if series == nil {
		series = NewPriceSeries(meta.Ticker, currency)
	}
	logger.Debug().Int("prices", series.Len()).Int("dividends", len(events)).Int("pay_dates", len(dates)).Msg("loaded")
	return NewSecurity(meta, series, events, dates)
}
