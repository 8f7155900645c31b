package journey

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/journey/date"
)

// ErrUnknownTicker is returned for a ticker absent from the market.
var ErrUnknownTicker = errors.New("unknown ticker")

// Security gathers everything known about a ticker.
type Security struct {
	Meta      Metadata
	Prices    *PriceSeries
	Events    []RawDividendEvent
	Ledger    []LedgerPayDate
	dividends []AlignedDividend
}

// NewSecurity aligns the dividend events of a ticker with its ledger.
func NewSecurity(meta Metadata, prices *PriceSeries, events []RawDividendEvent, ledger []LedgerPayDate) *Security {
	return &Security{
		Meta:      meta,
		Prices:    prices,
		Events:    events,
		Ledger:    ledger,
		dividends: Align(meta.Ticker, events, ledger),
	}
}

// Dividends returns the aligned dividends of the security.
func (s *Security) Dividends() []AlignedDividend { return s.dividends }

func (s *Security) contender(underlying bool) Contender {
	return Contender{Ticker: s.Meta.Ticker, Prices: s.Prices, Dividends: s.dividends, Underlying: underlying}
}

// Market holds market data for a set of securities, and the underlying
// assets they track.
type Market struct {
	currency    string
	securities  []*Security
	index       map[string]*Security
	underlyings map[string]*Security
	concurrency int
}

// NewMarket returns a new empty market data collection.
func NewMarket(currency string) *Market {
	return &Market{
		currency:    currency,
		securities:  make([]*Security, 0),
		index:       make(map[string]*Security),
		underlyings: make(map[string]*Security),
	}
}

// SetConcurrency sets the maximum number of simulations run at once by Compare.
func (m *Market) SetConcurrency(n int) { m.concurrency = n }

// Currency returns the reporting currency.
func (m *Market) Currency() string { return m.currency }

// Add adds or replaces a listed security.
func (m *Market) Add(sec *Security) {
	if old, ok := m.index[sec.Meta.Ticker]; ok {
		i := slices.Index(m.securities, old)
		m.securities[i] = sec
	} else {
		m.securities = append(m.securities, sec)
	}
	m.index[sec.Meta.Ticker] = sec
}

// AddUnderlying adds an asset only used as an underlying.
func (m *Market) AddUnderlying(sec *Security) { m.underlyings[sec.Meta.Ticker] = sec }

func (m *Market) Has(ticker string) bool {
	_, ok := m.index[ticker]
	return ok
}

func (m *Market) Get(ticker string) *Security { return m.index[ticker] }

// Tickers returns the listed tickers in alphabetical order.
func (m *Market) Tickers() []string {
	tickers := make([]string, 0, len(m.securities))
	for _, s := range m.securities {
		tickers = append(tickers, s.Meta.Ticker)
	}
	slices.Sort(tickers)
	return tickers
}

// underlying returns the security of an underlying asset, listed or not.
//
// Underlying dividends are always paid on their ex-date: a listed
// underlying is returned without its ledger.
func (m *Market) underlying(ticker string) (*Security, bool) {
	if s, ok := m.underlyings[ticker]; ok {
		return s, true
	}
	s, ok := m.index[ticker]
	if !ok {
		return nil, false
	}
	if len(s.Ledger) == 0 {
		return s, true
	}
	return NewSecurity(s.Meta, s.Prices, s.Events, nil), true
}

func (m *Market) lookup(ticker string) (*Security, error) {
	sec, ok := m.index[NormalizeTicker(ticker)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", ticker, ErrUnknownTicker)
	}
	return sec, nil
}

// Dividends returns the aligned dividends of a listed ticker.
func (m *Market) Dividends(ticker string) ([]AlignedDividend, error) {
	sec, err := m.lookup(ticker)
	if err != nil {
		return nil, err
	}
	return sec.Dividends(), nil
}

// CompareRequest selects tickers for a head to head comparison.
type CompareRequest struct {
	Tickers []string
	Range   date.Range
	Amount  Money
	DRIP    bool
	Overlay bool // also rank the underlying assets of the tickers.
}

// Compare ranks the requested tickers. A zero Range.To compares until today.
func (m *Market) Compare(ctx context.Context, req CompareRequest) (*Leaderboard, error) {
	if req.Range.To.IsZero() {
		req.Range.To = date.Today()
	}
	contenders := make([]Contender, 0, len(req.Tickers))
	for _, t := range req.Tickers {
		sec, err := m.lookup(t)
		if err != nil {
			return nil, err
		}
		contenders = append(contenders, sec.contender(false))
	}
	if req.Overlay {
		seen := make(map[string]bool)
		for _, t := range req.Tickers {
			meta := m.index[NormalizeTicker(t)].Meta
			if !meta.HasUnderlying() || seen[meta.Underlying] {
				continue
			}
			seen[meta.Underlying] = true
			if u, ok := m.underlying(meta.Underlying); ok {
				contenders = append(contenders, u.contender(true))
			}
		}
	}
	amount := req.Amount
	if amount.Currency() == "" {
		amount = M(amount.Decimal(), m.currency)
	}
	return CompareConcurrent(ctx, contenders, req.Range, amount, req.DRIP, m.concurrency)
}
