package termstructure

import (
	"fmt"
	"math"

	"github.com/meenmo/curvelib/daycount"
)

// DiscountRule is the pluggable discount function underlying a yield term
// structure. Evaluate returns the discount factor at a year fraction from
// the reference date; callers guarantee t >= 0 via range checks.
//
// Flat, interpolated, and bootstrapped curves all plug in here without the
// engine knowing the difference.
type DiscountRule interface {
	Evaluate(t float64) float64
}

// DiscountRuleFunc adapts a plain function to a DiscountRule.
type DiscountRuleFunc func(t float64) float64

func (f DiscountRuleFunc) Evaluate(t float64) float64 { return f(t) }

// boundedRule is implemented by rules whose validity horizon is capped.
// The curve picks the bound up at construction.
type boundedRule interface {
	MaxTime() float64
}

// FlatForward discounts at a single constant rate.
type FlatForward struct {
	rate InterestRate
}

// NewFlatForward builds a flat discount rule from an annualized rate under
// the given convention.
func NewFlatForward(rate float64, dc daycount.DayCounter, comp Compounding, freq Frequency) (*FlatForward, error) {
	r := NewInterestRate(rate, dc, comp, freq)
	// Probe the convention once so a bad frequency fails here, not inside
	// a query.
	if _, err := r.CompoundFactor(1.0); err != nil {
		return nil, fmt.Errorf("flat forward: %w", err)
	}
	return &FlatForward{rate: r}, nil
}

// Rate is the underlying flat rate.
func (f *FlatForward) Rate() InterestRate { return f.rate }

func (f *FlatForward) Evaluate(t float64) float64 {
	df, err := f.rate.DiscountFactor(math.Max(t, 0))
	if err != nil {
		// Convention was validated at construction; only a negative time
		// could fail and it is clamped above.
		return math.NaN()
	}
	return df
}

// BoundedRule caps another rule's validity horizon. Queries past the bound
// fail with ErrOutOfRange unless extrapolation is requested.
type BoundedRule struct {
	rule    DiscountRule
	maxTime float64
}

// NewBoundedRule wraps rule with an upper validity bound in years.
func NewBoundedRule(rule DiscountRule, maxTime float64) (*BoundedRule, error) {
	if maxTime <= 0 {
		return nil, fmt.Errorf("%w: non-positive max time %g", ErrDomain, maxTime)
	}
	return &BoundedRule{rule: rule, maxTime: maxTime}, nil
}

func (b *BoundedRule) Evaluate(t float64) float64 { return b.rule.Evaluate(t) }

// MaxTime is the latest year fraction the rule is defined for.
func (b *BoundedRule) MaxTime() float64 { return b.maxTime }
