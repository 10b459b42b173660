package termstructure

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/curvelib/calendar"
	"github.com/meenmo/curvelib/daycount"
	"github.com/meenmo/curvelib/quote"
)

// dt is the step used by every instantaneous-rate approximation. Small
// relative to typical curve curvature, large relative to floating-point
// epsilon.
const dt = 1e-4

// YieldTermStructure answers discount-factor, zero-rate, and forward-rate
// queries against an underlying discount rule, optionally adjusted by
// date-anchored multiplicative jumps (tax-date or liquidity effects).
//
// Whether a curve is jumped is fixed at construction. Jump time offsets are
// reference-relative; SetReferenceDate and SetEvaluationDate rebuild the
// (jumpDates, jumpTimes) snapshot. Queries are pure reads; reference-date
// changes must be serialized externally against concurrent queries.
type YieldTermStructure struct {
	base      Base
	rule      DiscountRule
	jumps     []quote.Quote
	jumpDates []time.Time
	jumpTimes []float64
}

// Option configures a YieldTermStructure at construction.
type Option func(*YieldTermStructure) error

// WithJumps attaches multiplicative jumps to the curve. dates may be nil, in
// which case anchors default to December 31 of successive years starting
// from the reference year. A non-nil dates slice must parallel quotes.
func WithJumps(quotes []quote.Quote, dates []time.Time) Option {
	return func(ts *YieldTermStructure) error {
		if len(dates) > 0 && len(dates) != len(quotes) {
			return fmt.Errorf("%w: %d jump quotes vs %d jump dates",
				ErrDomain, len(quotes), len(dates))
		}
		ts.jumps = append([]quote.Quote(nil), quotes...)
		ts.jumpDates = append([]time.Time(nil), dates...)
		return nil
	}
}

// WithExtrapolation enables curve-level extrapolation past the validity
// horizon for every query.
func WithExtrapolation() Option {
	return func(ts *YieldTermStructure) error {
		ts.base.EnableExtrapolation()
		return nil
	}
}

// NewYieldTermStructure builds a curve over the given discount rule, anchored
// at reference. If the rule declares a validity bound (see BoundedRule) the
// curve adopts it; otherwise the horizon is unbounded.
func NewYieldTermStructure(
	reference time.Time,
	cal calendar.CalendarID,
	dc daycount.DayCounter,
	settlementDays int,
	rule DiscountRule,
	opts ...Option,
) (*YieldTermStructure, error) {
	if rule == nil {
		return nil, fmt.Errorf("%w: nil discount rule", ErrDomain)
	}
	ts := &YieldTermStructure{
		base: NewBase(cal, dc, settlementDays),
		rule: rule,
	}
	ts.base.SetReferenceDate(reference)
	if br, ok := rule.(boundedRule); ok {
		ts.base.setMaxTime(br.MaxTime())
	}
	for _, opt := range opts {
		if err := opt(ts); err != nil {
			return nil, err
		}
	}
	if err := ts.rebuildJumps(); err != nil {
		return nil, err
	}
	return ts, nil
}

// rebuildJumps recomputes the jump snapshot against the current reference
// date. Anchor dates missing at construction default to December 31 of
// successive years starting from the reference year.
func (ts *YieldTermStructure) rebuildJumps() error {
	if len(ts.jumps) == 0 {
		ts.jumpDates = nil
		ts.jumpTimes = nil
		return nil
	}
	ref, err := ts.base.ReferenceDate()
	if err != nil {
		return err
	}
	if len(ts.jumpDates) == 0 {
		dates := make([]time.Time, len(ts.jumps))
		for n := range ts.jumps {
			dates[n] = time.Date(ref.Year()+n, time.December, 31, 0, 0, 0, 0, time.UTC)
		}
		ts.jumpDates = dates
	}
	times := make([]float64, len(ts.jumpDates))
	for n, d := range ts.jumpDates {
		times[n] = ts.base.DayCounter().YearFraction(ref, d)
	}
	ts.jumpTimes = times
	return nil
}

// SetReferenceDate re-anchors the curve and refreshes the jump time offsets.
// Not safe against concurrent queries.
func (ts *YieldTermStructure) SetReferenceDate(d time.Time) {
	ts.base.SetReferenceDate(d)
	// Reference is set; rebuild cannot fail.
	_ = ts.rebuildJumps()
}

// SetEvaluationDate re-anchors the curve at d advanced by the settlement lag
// on the curve calendar, then refreshes the jump time offsets. Not safe
// against concurrent queries.
func (ts *YieldTermStructure) SetEvaluationDate(d time.Time) {
	ts.base.SetEvaluationDate(d)
	_ = ts.rebuildJumps()
}

// Discount is the discount factor at a date.
func (ts *YieldTermStructure) Discount(d time.Time, extrapolate bool) (float64, error) {
	t, err := ts.base.TimeFromReference(d)
	if err != nil {
		return 0, err
	}
	return ts.DiscountAtTime(t, extrapolate)
}

// DiscountAtTime is the discount factor at a year fraction from the
// reference date. Jumps anchored strictly inside (0, t) apply as
// multiplicative factors; a jump at exactly t, or at the reference itself,
// does not.
func (ts *YieldTermStructure) DiscountAtTime(t float64, extrapolate bool) (float64, error) {
	if err := ts.base.CheckRangeTime(t, extrapolate); err != nil {
		return 0, err
	}
	if len(ts.jumps) == 0 {
		return ts.rule.Evaluate(t), nil
	}

	jumpEffect := 1.0
	for n := range ts.jumps {
		if !(ts.jumpTimes[n] > 0 && ts.jumpTimes[n] < t) {
			continue
		}
		if !ts.jumps[n].IsValid() {
			return 0, fmt.Errorf("%w: jump %d at %s",
				ErrInvalidQuote, n, ts.jumpDates[n].Format("2006-01-02"))
		}
		v := ts.jumps[n].Value()
		if v <= 0 {
			return 0, fmt.Errorf("%w: non-positive jump value %g at %s",
				ErrDomain, v, ts.jumpDates[n].Format("2006-01-02"))
		}
		jumpEffect *= v
	}
	return jumpEffect * ts.rule.Evaluate(t), nil
}

// ZeroRate is the zero-coupon yield implied by the discount factor at d,
// expressed under the requested convention. At the reference date the
// zero-length interval is replaced by a dt forward difference.
func (ts *YieldTermStructure) ZeroRate(
	d time.Time,
	resultDC daycount.DayCounter,
	comp Compounding,
	freq Frequency,
	extrapolate bool,
) (InterestRate, error) {
	ref, err := ts.base.ReferenceDate()
	if err != nil {
		return InterestRate{}, err
	}
	if d.Equal(ref) {
		df, err := ts.DiscountAtTime(dt, extrapolate)
		if err != nil {
			return InterestRate{}, err
		}
		return ImpliedRate(1.0/df, resultDC, comp, freq, dt)
	}
	df, err := ts.Discount(d, extrapolate)
	if err != nil {
		return InterestRate{}, err
	}
	return ImpliedRateBetween(1.0/df, resultDC, comp, freq, ref, d)
}

// ZeroRateAtTime is ZeroRate on the time axis, expressed with the curve's
// own day counter. t == 0 substitutes dt.
func (ts *YieldTermStructure) ZeroRateAtTime(
	t float64,
	comp Compounding,
	freq Frequency,
	extrapolate bool,
) (InterestRate, error) {
	if t == 0 {
		t = dt
	}
	df, err := ts.DiscountAtTime(t, extrapolate)
	if err != nil {
		return InterestRate{}, err
	}
	return ImpliedRate(1.0/df, ts.base.DayCounter(), comp, freq, t)
}

// ForwardRate is the rate implied between two dates, observed today. Equal
// dates yield the instantaneous forward rate via a centered dt difference;
// that micro-interval always extrapolates since it may straddle the validity
// boundary.
func (ts *YieldTermStructure) ForwardRate(
	d1, d2 time.Time,
	resultDC daycount.DayCounter,
	comp Compounding,
	freq Frequency,
	extrapolate bool,
) (InterestRate, error) {
	if d1.Equal(d2) {
		if err := ts.base.CheckRange(d1, extrapolate); err != nil {
			return InterestRate{}, err
		}
		t, err := ts.base.TimeFromReference(d1)
		if err != nil {
			return InterestRate{}, err
		}
		t1 := math.Max(t-dt/2, 0)
		t2 := t1 + dt
		compound, err := ts.microCompound(t1, t2)
		if err != nil {
			return InterestRate{}, err
		}
		// Times were measured with the curve day counter, not resultDC;
		// over dt the difference is immaterial.
		return ImpliedRate(compound, resultDC, comp, freq, dt)
	}
	if d2.Before(d1) {
		return InterestRate{}, fmt.Errorf("%w: d2 (%s) < d1 (%s)",
			ErrDomain, d2.Format("2006-01-02"), d1.Format("2006-01-02"))
	}
	df1, err := ts.Discount(d1, extrapolate)
	if err != nil {
		return InterestRate{}, err
	}
	df2, err := ts.Discount(d2, extrapolate)
	if err != nil {
		return InterestRate{}, err
	}
	return ImpliedRateBetween(df1/df2, resultDC, comp, freq, d1, d2)
}

// ForwardRateBetweenTimes is ForwardRate on the time axis, expressed with
// the curve's own day counter. Equal times recenter a dt interval around the
// requested instant.
func (ts *YieldTermStructure) ForwardRateBetweenTimes(
	t1, t2 float64,
	comp Compounding,
	freq Frequency,
	extrapolate bool,
) (InterestRate, error) {
	var compound float64
	if t1 == t2 {
		if err := ts.base.CheckRangeTime(t1, extrapolate); err != nil {
			return InterestRate{}, err
		}
		t1 = math.Max(t1-dt/2, 0)
		t2 = t1 + dt
		var err error
		compound, err = ts.microCompound(t1, t2)
		if err != nil {
			return InterestRate{}, err
		}
	} else {
		if t2 < t1 {
			return InterestRate{}, fmt.Errorf("%w: t2 (%g) < t1 (%g)", ErrDomain, t2, t1)
		}
		df1, err := ts.DiscountAtTime(t1, extrapolate)
		if err != nil {
			return InterestRate{}, err
		}
		df2, err := ts.DiscountAtTime(t2, extrapolate)
		if err != nil {
			return InterestRate{}, err
		}
		compound = df1 / df2
	}
	return ImpliedRate(compound, ts.base.DayCounter(), comp, freq, t2-t1)
}

// microCompound is the compound factor across a dt-wide interval, always
// extrapolating.
func (ts *YieldTermStructure) microCompound(t1, t2 float64) (float64, error) {
	df1, err := ts.DiscountAtTime(t1, true)
	if err != nil {
		return 0, err
	}
	df2, err := ts.DiscountAtTime(t2, true)
	if err != nil {
		return 0, err
	}
	return df1 / df2, nil
}

// ReferenceDate is the date at which discount = 1.0.
func (ts *YieldTermStructure) ReferenceDate() (time.Time, error) { return ts.base.ReferenceDate() }

// TimeFromReference converts a date to a year fraction from the reference date.
func (ts *YieldTermStructure) TimeFromReference(d time.Time) (float64, error) {
	return ts.base.TimeFromReference(d)
}

// MaxDate is the latest date for which the curve can return values.
func (ts *YieldTermStructure) MaxDate() time.Time { return ts.base.MaxDate() }

// MaxTime is the latest year fraction for which the curve can return values.
func (ts *YieldTermStructure) MaxTime() float64 { return ts.base.MaxTime() }

// Calendar used for reference date calculation.
func (ts *YieldTermStructure) Calendar() calendar.CalendarID { return ts.base.Calendar() }

// DayCounter used for date/time conversion.
func (ts *YieldTermStructure) DayCounter() daycount.DayCounter { return ts.base.DayCounter() }

// SettlementDays used for reference date calculation.
func (ts *YieldTermStructure) SettlementDays() int { return ts.base.SettlementDays() }

// AllowsExtrapolation reports the curve-level extrapolation flag.
func (ts *YieldTermStructure) AllowsExtrapolation() bool { return ts.base.AllowsExtrapolation() }

// JumpDates is the ordered jump anchor snapshot. The returned slice is a copy.
func (ts *YieldTermStructure) JumpDates() []time.Time {
	return append([]time.Time(nil), ts.jumpDates...)
}

// JumpTimes is the ordered jump time-offset snapshot. The returned slice is a copy.
func (ts *YieldTermStructure) JumpTimes() []float64 {
	return append([]float64(nil), ts.jumpTimes...)
}
