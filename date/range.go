package date

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// ErrInvalidRange is returned when a range starts after it ends.
var ErrInvalidRange = errors.New("start date is after end date")

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange return a well known period
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Between returns the range [from, to] without any check.
func Between(from, to Date) Range { return Range{From: from, To: to} }

// Validate returns ErrInvalidRange if From is after To.
func (r Range) Validate() error {
	if r.From.After(r.To) {
		return fmt.Errorf("range %s: %w", r, ErrInvalidRange)
	}
	return nil
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// Len returns the number of whole days between From and To.
func (r Range) Len() int { return r.To.Sub(r.From) }

// Days returns an iterator that yields each date within the range, inclusive.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// return the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From == r.To:
		return Daily, true
	case r.From.Weekday() == time.Monday && r.From.EndOf(Weekly) == r.To:
		return Weekly, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Identifier compute a unique identifier for the Range.
// If the period is defined, use a short insighful name
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}

	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		_, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case Monthly:
		return r.From.Format("2006-01")
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}
