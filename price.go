package journey

import (
	"iter"

	"github.com/etnz/journey/date"
)

// PricePoint is the closing price of a security on a trading day.
type PricePoint struct {
	Date  date.Date `json:"date"`
	Close Money     `json:"close"`
}

// PriceSeries is the chronological series of closing prices of one ticker.
//
// Dates are unique. A nil *PriceSeries is a valid empty series.
type PriceSeries struct {
	ticker   string
	currency string
	history  date.History[Money]
}

// NewPriceSeries returns a series with the given points.
func NewPriceSeries(ticker, currency string, points ...PricePoint) *PriceSeries {
	s := &PriceSeries{ticker: ticker, currency: currency}
	for _, p := range points {
		s.Append(p.Date, p.Close)
	}
	return s
}

// Ticker returns the ticker this series belongs to.
func (s *PriceSeries) Ticker() string {
	if s == nil {
		return ""
	}
	return s.ticker
}

// Currency returns the currency of the prices.
func (s *PriceSeries) Currency() string {
	if s == nil {
		return ""
	}
	return s.currency
}

// Append sets the closing price on a given day.
//
// Negative prices are invalid and coerced to zero. An existing price on the same day is overwritten.
func (s *PriceSeries) Append(on date.Date, close Money) *PriceSeries {
	if close.IsNegative() {
		close = M(0, close.Currency())
	}
	if close.Currency() == "" {
		close = M(close.Decimal(), s.currency)
	}
	s.history.Append(on, close)
	return s
}

// Len returns the number of trading days in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return s.history.Len()
}

// Close returns the closing price on that day if it is a trading day.
func (s *PriceSeries) Close(on date.Date) (Money, bool) {
	if s == nil {
		return Money{}, false
	}
	return s.history.Get(on)
}

// Inception returns the first trading day of the series.
func (s *PriceSeries) Inception() (date.Date, bool) {
	if s.Len() == 0 {
		return date.Date{}, false
	}
	on, _ := s.history.First()
	return on, true
}

// Latest returns the last trading day of the series.
func (s *PriceSeries) Latest() (date.Date, bool) {
	if s.Len() == 0 {
		return date.Date{}, false
	}
	on, _ := s.history.Latest()
	return on, true
}

// Points returns an iterator over all the points in chronological order.
func (s *PriceSeries) Points() iter.Seq[PricePoint] {
	return func(yield func(PricePoint) bool) {
		if s == nil {
			return
		}
		for on, close := range s.history.Values() {
			if !yield(PricePoint{Date: on, Close: close}) {
				return
			}
		}
	}
}

// Between returns an iterator over the points within r in chronological order.
func (s *PriceSeries) Between(r date.Range) iter.Seq[PricePoint] {
	return func(yield func(PricePoint) bool) {
		if s == nil {
			return
		}
		for on, close := range s.history.Between(r) {
			if !yield(PricePoint{Date: on, Close: close}) {
				return
			}
		}
	}
}

// EntryPoint returns the first point within r.
func (s *PriceSeries) EntryPoint(r date.Range) (PricePoint, bool) {
	for p := range s.Between(r) {
		return p, true
	}
	return PricePoint{}, false
}
