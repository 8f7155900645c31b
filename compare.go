package journey

import (
	"context"
	"fmt"
	"sort"

	"github.com/etnz/journey/date"
	"golang.org/x/sync/errgroup"
)

// Contender is a ticker entering a head to head comparison.
type Contender struct {
	Ticker     string
	Prices     *PriceSeries
	Dividends  []AlignedDividend
	Underlying bool // the contender is the underlying asset of another one.
}

// Standing is the result of one contender in a Leaderboard.
type Standing struct {
	Ticker        string   `json:"ticker"`
	Underlying    bool     `json:"underlying,omitempty"`
	EntryPrice    Money    `json:"entry_price"`
	InitialShares Quantity `json:"initial_shares"`
	TotalReturn   Percent  `json:"total_return_pct"`
	TrueValue     Money    `json:"true_value"`
	// CashGenerated is the dividends pocketed, without DRIP.
	CashGenerated Money `json:"cash_generated"`
	// SharesAdded is the shares bought with dividends, with DRIP.
	SharesAdded Quantity `json:"shares_added"`
	// Yield is the dividends pocketed relative to the amount invested, it
	// is not available (HasYield is false) with DRIP.
	Yield                Percent `json:"yield_pct"`
	HasYield             bool    `json:"has_yield"`
	RemainingMarketValue Money   `json:"remaining_market_value"`

	Trajectory Trajectory `json:"-"`
}

// Leaderboard ranks contenders that invested the same amount over the same range.
type Leaderboard struct {
	Range     date.Range `json:"range"`
	Amount    Money      `json:"amount"`
	DRIP      bool       `json:"drip"`
	Standings []Standing `json:"standings"`
}

// Compare simulates every contender with the same amount invested on the
// first trading day of r, and ranks them by total return, best first.
//
// Contenders without any price in r are left out. Ties keep the contenders order.
func Compare(contenders []Contender, r date.Range, amount Money, drip bool) (*Leaderboard, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	results := make([]*Standing, len(contenders))
	for i, c := range contenders {
		s, err := stand(c, r, amount, drip)
		if err != nil {
			return nil, err
		}
		results[i] = s
	}
	return rank(results, r, amount, drip), nil
}

// CompareConcurrent is like Compare but runs up to limit simulations at once.
//
// A limit <= 0 means no limit. The leaderboard is identical to Compare's.
func CompareConcurrent(ctx context.Context, contenders []Contender, r date.Range, amount Money, drip bool, limit int) (*Leaderboard, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	results := make([]*Standing, len(contenders))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, c := range contenders {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := stand(c, r, amount, drip)
			if err != nil {
				return err
			}
			// each goroutine owns its own slot.
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rank(results, r, amount, drip), nil
}

// stand simulates a single contender, it returns nil when there is no data in range.
func stand(c Contender, r date.Range, amount Money, drip bool) (*Standing, error) {
	entry, ok := c.Prices.EntryPoint(r)
	if !ok {
		return nil, nil
	}
	var shares Quantity
	if entry.Close.IsPositive() {
		shares = amount.DivPrice(entry.Close)
	}
	in := SimulationInput{Ticker: c.Ticker, Start: r.From, End: r.To, InitialShares: shares, DRIP: drip}
	t, err := Simulate(c.Prices, c.Dividends, in)
	if err != nil {
		return nil, fmt.Errorf("cannot compare %q: %w", c.Ticker, err)
	}
	last, ok := t.Last()
	if !ok {
		return nil, nil
	}

	s := &Standing{
		Ticker:               c.Ticker,
		Underlying:           c.Underlying,
		EntryPrice:           entry.Close,
		InitialShares:        shares,
		TotalReturn:          last.TrueValue.Sub(amount).Ratio(amount),
		TrueValue:            last.TrueValue,
		CashGenerated:        last.CashPocketed,
		SharesAdded:          last.Shares.Sub(shares),
		RemainingMarketValue: last.MarketValue,
		Trajectory:           t,
	}
	if !drip {
		s.Yield = last.CashPocketed.Ratio(amount)
		s.HasYield = true
	}
	return s, nil
}

func rank(results []*Standing, r date.Range, amount Money, drip bool) *Leaderboard {
	lb := &Leaderboard{Range: r, Amount: amount, DRIP: drip, Standings: make([]Standing, 0, len(results))}
	for _, s := range results {
		if s != nil {
			lb.Standings = append(lb.Standings, *s)
		}
	}
	sort.SliceStable(lb.Standings, func(i, j int) bool {
		return lb.Standings[i].TotalReturn > lb.Standings[j].TotalReturn
	})
	return lb
}
