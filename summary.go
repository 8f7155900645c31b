package journey

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrEmptyTrajectory is returned when summarizing a simulation without any trading day.
var ErrEmptyTrajectory = errors.New("no price data in range")

var daysPerYear = decimal.RequireFromString("365.25")

// Summary holds the headline figures of a completed simulation.
type Summary struct {
	InitialCapital  Money    `json:"initial_capital"`
	MarketValue     Money    `json:"market_value"`
	CashPocketed    Money    `json:"cash_pocketed"`
	TrueValue       Money    `json:"true_value"`
	FinalShares     Quantity `json:"final_shares"`
	SharesAdded     Quantity `json:"shares_added"`
	MarketPL        Money    `json:"market_pl"`
	MarketPLPercent Percent  `json:"market_pl_pct"`
	TotalPL         Money    `json:"total_pl"`
	TotalReturn     Percent  `json:"total_return_pct"`
	DaysHeld        int      `json:"days_held"`
	// AnnualizedYield is only meaningful without DRIP, where dividends are pocketed.
	AnnualizedYield Percent `json:"annualized_yield_pct"`
	DRIP            bool    `json:"drip"`
}

// Summarize derives the summary of a trajectory simulated for in, bought at the entry price.
//
// Percentages are 0 when the initial capital is 0, and the annualized yield
// is 0 unless the holding lasted at least a day.
func Summarize(t Trajectory, in SimulationInput, entry Money) (Summary, error) {
	last, ok := t.Last()
	if !ok {
		return Summary{}, ErrEmptyTrajectory
	}
	capital := entry.Mul(in.InitialShares)

	s := Summary{
		InitialCapital: capital,
		MarketValue:    last.MarketValue,
		CashPocketed:   last.CashPocketed,
		TrueValue:      last.TrueValue,
		FinalShares:    last.Shares,
		SharesAdded:    last.Shares.Sub(in.InitialShares),
		MarketPL:       last.MarketValue.Sub(capital),
		TotalPL:        last.TrueValue.Sub(capital),
		DaysHeld:       in.End.Sub(in.Start),
		DRIP:           in.DRIP,
	}
	s.MarketPLPercent = s.MarketPL.Ratio(capital)
	s.TotalReturn = s.TotalPL.Ratio(capital)

	if s.DaysHeld > 0 && capital.IsPositive() {
		y := last.CashPocketed.Decimal().Div(capital.Decimal()).
			Mul(daysPerYear).
			Div(decimal.NewFromInt(int64(s.DaysHeld))).
			Mul(hundred)
		s.AnnualizedYield = Percent(y.InexactFloat64())
	}
	return s, nil
}
