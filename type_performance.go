package journey

// Performance holds the starting value and the final value over a range.
type Performance struct {
	Start, End Money
}

func NewPerformance(start, end Money) Performance {
	return Performance{Start: start, End: end}
}

func (p Performance) Change() Money {
	return p.End.Sub(p.Start)
}

// Percent returns the change relative to the start value, 0 when the start is zero.
func (p Performance) Percent() Percent {
	return p.Change().Ratio(p.Start)
}
