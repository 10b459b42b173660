// Package quote defines the market-observable scalar consumed by the term
// structure. A Quote may be temporarily invalid (no value published yet);
// consumers must check IsValid before trusting Value.
package quote

// Quote is a live scalar market observable.
type Quote interface {
	Value() float64
	IsValid() bool
}

// SimpleQuote is a settable quote. The zero value is invalid until the first
// SetValue call.
type SimpleQuote struct {
	value float64
	valid bool
}

// NewSimpleQuote returns a valid quote holding value.
func NewSimpleQuote(value float64) *SimpleQuote {
	return &SimpleQuote{value: value, valid: true}
}

func (q *SimpleQuote) Value() float64 { return q.value }

func (q *SimpleQuote) IsValid() bool { return q.valid }

// SetValue updates the quote and marks it valid.
func (q *SimpleQuote) SetValue(value float64) {
	q.value = value
	q.valid = true
}

// Reset invalidates the quote until the next SetValue.
func (q *SimpleQuote) Reset() {
	q.value = 0
	q.valid = false
}

// DerivedQuote applies a transform to an underlying quote. It is valid
// exactly when the underlying quote is.
type DerivedQuote struct {
	underlying Quote
	transform  func(float64) float64
}

// NewDerivedQuote wraps underlying with transform.
func NewDerivedQuote(underlying Quote, transform func(float64) float64) *DerivedQuote {
	return &DerivedQuote{underlying: underlying, transform: transform}
}

func (q *DerivedQuote) Value() float64 { return q.transform(q.underlying.Value()) }

func (q *DerivedQuote) IsValid() bool { return q.underlying.IsValid() }
