package journey

import "strings"

// NoValue is displayed in place of missing metadata.
const NoValue = "-"

// Metadata describes a ticker as listed in the master sheet.
type Metadata struct {
	Ticker     string `json:"ticker"`
	Strategy   string `json:"strategy"`
	Company    string `json:"company"`
	Underlying string `json:"underlying"`
}

// NewMetadata returns normalized metadata: the ticker is trimmed and upper
// case, and missing values are replaced by NoValue.
func NewMetadata(ticker, strategy, company, underlying string) Metadata {
	return Metadata{
		Ticker:     NormalizeTicker(ticker),
		Strategy:   orNoValue(strategy),
		Company:    orNoValue(company),
		Underlying: NormalizeTicker(orNoValue(underlying)),
	}
}

// HasUnderlying reports whether the ticker tracks another asset.
func (m Metadata) HasUnderlying() bool {
	return m.Underlying != NoValue && m.Underlying != "" && m.Underlying != m.Ticker
}

// NormalizeTicker trims and upper cases a ticker.
func NormalizeTicker(t string) string { return strings.ToUpper(strings.TrimSpace(t)) }

func orNoValue(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", NoValue:
		return NoValue
	}
	return s
}
