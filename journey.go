package journey

import (
	"errors"
	"fmt"

	"github.com/etnz/journey/date"
)

// ErrNoData is returned when a ticker has no price within the requested range.
var ErrNoData = errors.New("no data for date range")

// Investment is what is bought on the first day of a journey: either a
// number of shares or an amount of money.
type Investment struct {
	shares   Quantity
	amount   Money
	byAmount bool
}

// ByShares invests in a number of shares.
func ByShares(q Quantity) Investment { return Investment{shares: q} }

// ByAmount invests an amount of money.
func ByAmount(m Money) Investment { return Investment{amount: m, byAmount: true} }

// resolve returns the initial shares and the amount invested at a given entry price.
func (i Investment) resolve(entry Money) (Quantity, Money) {
	if !i.byAmount {
		return i.shares, entry.Mul(i.shares)
	}
	if !entry.IsPositive() {
		return Q(0), i.amount
	}
	return i.amount.DivPrice(entry), i.amount
}

func (i Investment) String() string {
	if i.byAmount {
		return i.amount.String()
	}
	return i.shares.String() + " shares"
}

// JourneyRequest describes a single asset journey.
//
// A zero Range.From starts on the first trading day of the ticker, a zero
// Range.To holds until today.
type JourneyRequest struct {
	Ticker     string
	Range      date.Range
	Investment Investment
	DRIP       bool
	Overlay    bool // also simulate the underlying with the same capital.
}

// UnderlyingReport is the performance of the asset tracked by a ticker.
type UnderlyingReport struct {
	Ticker string `json:"ticker"`
	// Performance of a single share, dividends included.
	Performance Performance `json:"performance"`
	Return      Percent     `json:"return_pct"`
	// Trajectory of the same capital invested in the underlying, only with overlay.
	Trajectory Trajectory `json:"trajectory,omitempty"`
}

// Report is the complete result of a single asset journey.
type Report struct {
	Meta       Metadata          `json:"meta"`
	Input      SimulationInput   `json:"input"`
	EntryPrice Money             `json:"entry_price"`
	Summary    Summary           `json:"summary"`
	Trajectory Trajectory        `json:"trajectory"`
	Underlying *UnderlyingReport `json:"underlying,omitempty"`
}

// Journey simulates holding a ticker.
func (m *Market) Journey(req JourneyRequest) (*Report, error) {
	sec, err := m.lookup(req.Ticker)
	if err != nil {
		return nil, err
	}
	r := req.Range
	if r.From.IsZero() {
		inception, ok := sec.Prices.Inception()
		if !ok {
			return nil, fmt.Errorf("%s: %w", sec.Meta.Ticker, ErrNoData)
		}
		r.From = inception
	}
	if r.To.IsZero() {
		r.To = date.Today()
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	entry, ok := sec.Prices.EntryPoint(r)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", sec.Meta.Ticker, r, ErrNoData)
	}
	shares, capital := req.Investment.resolve(entry.Close)
	in := SimulationInput{Ticker: sec.Meta.Ticker, Start: r.From, End: r.To, InitialShares: shares, DRIP: req.DRIP}

	t, err := Simulate(sec.Prices, sec.Dividends(), in)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(t, in, entry.Close)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sec.Meta.Ticker, ErrNoData)
	}

	report := &Report{
		Meta:       sec.Meta,
		Input:      in,
		EntryPrice: entry.Close,
		Summary:    summary,
		Trajectory: t,
	}
	if sec.Meta.HasUnderlying() {
		if u, ok := m.underlying(sec.Meta.Underlying); ok {
			report.Underlying, err = underlyingReport(u, r, req.DRIP, req.Overlay, capital)
			if err != nil {
				return nil, err
			}
		}
	}
	return report, nil
}

// underlyingReport simulates one share of the underlying and, with overlay,
// the capital invested in it. It returns nil when the underlying has no data.
func underlyingReport(u *Security, r date.Range, drip, overlay bool, capital Money) (*UnderlyingReport, error) {
	entry, ok := u.Prices.EntryPoint(r)
	if !ok {
		return nil, nil
	}
	one := SimulationInput{Ticker: u.Meta.Ticker, Start: r.From, End: r.To, InitialShares: Q(1), DRIP: drip}
	t, err := Simulate(u.Prices, u.Dividends(), one)
	if err != nil {
		return nil, err
	}
	last, ok := t.Last()
	if !ok {
		return nil, nil
	}
	perf := NewPerformance(entry.Close, last.TrueValue)
	ur := &UnderlyingReport{Ticker: u.Meta.Ticker, Performance: perf, Return: perf.Percent()}

	if overlay && entry.Close.IsPositive() {
		scaled := one
		scaled.InitialShares = capital.DivPrice(entry.Close)
		if ur.Trajectory, err = Simulate(u.Prices, u.Dividends(), scaled); err != nil {
			return nil, err
		}
	}
	return ur, nil
}
