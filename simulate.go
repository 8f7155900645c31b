package journey

import (
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/journey/date"
)

var (
	// ErrInvalidRange is returned when a simulation starts after it ends.
	ErrInvalidRange = date.ErrInvalidRange
	// ErrNegativeShares is returned when a simulation starts with a negative position.
	ErrNegativeShares = errors.New("initial shares must not be negative")
	// ErrCurrencyMismatch is returned when dividends and prices are not in the same currency.
	ErrCurrencyMismatch = errors.New("dividend currency differs from price currency")
)

// SimulationInput describes one holding to replay.
type SimulationInput struct {
	Ticker        string    `json:"ticker"`
	Start         date.Date `json:"start"`
	End           date.Date `json:"end"`
	InitialShares Quantity  `json:"initial_shares"`
	DRIP          bool      `json:"drip"`
}

// Range returns the simulated range of dates.
func (in SimulationInput) Range() date.Range { return date.Between(in.Start, in.End) }

// Validate reports inputs the simulator cannot replay.
func (in SimulationInput) Validate() error {
	if err := in.Range().Validate(); err != nil {
		return fmt.Errorf("invalid simulation of %q: %w", in.Ticker, err)
	}
	if in.InitialShares.IsNegative() {
		return fmt.Errorf("invalid simulation of %q: %v: %w", in.Ticker, in.InitialShares, ErrNegativeShares)
	}
	return nil
}

// DailyState is the state of the holding at the close of a trading day.
type DailyState struct {
	Date           date.Date `json:"date"`
	Close          Money     `json:"close"`
	Shares         Quantity  `json:"shares"`
	CashPocketed   Money     `json:"cash_pocketed"`
	MarketValue    Money     `json:"market_value"`
	BaseAssetValue Money     `json:"base_asset_value"` // value of the initial shares alone.
	TrueValue      Money     `json:"true_value"`
}

// Trajectory is the chronological sequence of daily states of one simulation.
type Trajectory []DailyState

// Last returns the final state, if any.
func (t Trajectory) Last() (DailyState, bool) {
	if len(t) == 0 {
		return DailyState{}, false
	}
	return t[len(t)-1], true
}

// ReturnPoint is the total return of a holding on a given day.
type ReturnPoint struct {
	Date   date.Date `json:"date"`
	Return Percent   `json:"return"`
}

// Returns computes the daily total return relative to an invested capital.
func (t Trajectory) Returns(capital Money) []ReturnPoint {
	points := make([]ReturnPoint, 0, len(t))
	for _, s := range t {
		points = append(points, ReturnPoint{Date: s.Date, Return: s.TrueValue.Sub(capital).Ratio(capital)})
	}
	return points
}

// Simulate replays a holding day by day.
//
// dividends is the full dividend history of the ticker, only those paid
// within the simulated range, on a trading day, apply. Each dividend pays
// the shares held at that point: with DRIP it buys more shares at that
// day's close (nothing when the close is zero), without DRIP it is
// pocketed as cash. Several dividends on the same day apply in order.
//
// Dividends and prices must share one currency, a dividend paid within the
// range in another currency fails with ErrCurrencyMismatch. An amount
// without currency takes the currency of the prices.
//
// An empty trajectory is returned when there is no price within the range.
// Inputs are never modified.
func Simulate(prices *PriceSeries, dividends []AlignedDividend, in SimulationInput) (Trajectory, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	r := in.Range()

	paid := make([]AlignedDividend, 0, len(dividends))
	for _, d := range dividends {
		if !r.Contains(d.PayDate) {
			continue
		}
		if d.Ticker != "" && in.Ticker != "" && d.Ticker != in.Ticker {
			continue
		}
		if c := d.Amount.Currency(); c != "" && prices.Currency() != "" && c != prices.Currency() {
			return nil, fmt.Errorf("%s dividend paid on %v in %s, prices in %s: %w", in.Ticker, d.PayDate, c, prices.Currency(), ErrCurrencyMismatch)
		}
		paid = append(paid, d)
	}
	slices.SortStableFunc(paid, func(a, b AlignedDividend) int { return a.PayDate.Compare(b.PayDate) })

	shares := in.InitialShares
	cash := M(0, prices.Currency())
	trajectory := make(Trajectory, 0, prices.Len())

	next := 0
	for p := range prices.Between(r) {
		// dividends paid on a non trading day are never applied.
		for next < len(paid) && paid[next].PayDate.Before(p.Date) {
			next++
		}
		for next < len(paid) && paid[next].PayDate == p.Date {
			payout := paid[next].Amount.Mul(shares)
			if in.DRIP {
				if p.Close.IsPositive() {
					shares = shares.Add(payout.DivPrice(p.Close))
				}
			} else {
				cash = cash.Add(payout)
			}
			next++
		}

		market := p.Close.Mul(shares)
		state := DailyState{
			Date:           p.Date,
			Close:          p.Close,
			Shares:         shares,
			CashPocketed:   cash,
			MarketValue:    market,
			BaseAssetValue: p.Close.Mul(in.InitialShares),
			TrueValue:      market,
		}
		if !in.DRIP {
			state.TrueValue = market.Add(cash)
		}
		trajectory = append(trajectory, state)
	}
	return trajectory, nil
}
