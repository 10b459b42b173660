// Package marketdata supplies the live observables a curve consumes: jump
// quotes anchored to calendar dates and flat curve rates, backed either by a
// static map or by Postgres.
package marketdata

import "time"

// QuoteFeed supplies a scalar observable keyed by date.
type QuoteFeed interface {
	QuoteOn(date time.Time) (float64, bool)
}

// MapQuoteFeed is a static map-backed implementation for development/testing.
type MapQuoteFeed struct {
	values map[string]float64
}

// NewMapQuoteFeed builds a feed from values keyed YYYY-MM-DD.
func NewMapQuoteFeed(values map[string]float64) *MapQuoteFeed {
	return &MapQuoteFeed{values: values}
}

func (m *MapQuoteFeed) QuoteOn(date time.Time) (float64, bool) {
	val, ok := m.values[date.Format("2006-01-02")]
	return val, ok
}
