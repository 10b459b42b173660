package termstructure

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/curvelib/calendar"
	"github.com/meenmo/curvelib/daycount"
)

// farFutureDate stands in for an unbounded max date.
var farFutureDate = time.Date(2199, time.December, 31, 0, 0, 0, 0, time.UTC)

// Base holds the state every term structure shares: the reference date the
// time axis is anchored to, the calendar and settlement lag used to resolve
// it, the day counter for date/time conversion, and the validity bounds.
//
// The reference date is an explicit unset/set state. Every query entry point
// must go through ReferenceDate (or a check that calls it) so that an
// unresolved curve fails fast instead of producing times measured from a
// sentinel date.
type Base struct {
	referenceDate  time.Time
	referenceSet   bool
	cal            calendar.CalendarID
	dayCounter     daycount.DayCounter
	settlementDays int
	extrapolate    bool
	maxTime        float64
}

// NewBase returns a Base with an unresolved reference date and no upper
// validity bound.
func NewBase(cal calendar.CalendarID, dc daycount.DayCounter, settlementDays int) Base {
	return Base{
		cal:            cal,
		dayCounter:     dc,
		settlementDays: settlementDays,
		maxTime:        math.Inf(1),
	}
}

// ReferenceDate is the date at which discount = 1.0. It returns
// ErrUnresolvedReference if the date has not been set.
func (b *Base) ReferenceDate() (time.Time, error) {
	if !b.referenceSet {
		return time.Time{}, ErrUnresolvedReference
	}
	return b.referenceDate, nil
}

// SetReferenceDate pins the reference date directly.
func (b *Base) SetReferenceDate(d time.Time) {
	b.referenceDate = d
	b.referenceSet = true
}

// SetEvaluationDate resolves the reference date as the evaluation date
// advanced by the settlement lag on the curve's calendar.
func (b *Base) SetEvaluationDate(d time.Time) {
	b.SetReferenceDate(calendar.AddBusinessDays(b.cal, d, b.settlementDays))
}

// TimeFromReference converts a date into the year fraction elapsed since the
// reference date, measured with the curve's day counter. Negative when the
// date precedes the reference.
func (b *Base) TimeFromReference(d time.Time) (float64, error) {
	ref, err := b.ReferenceDate()
	if err != nil {
		return 0, err
	}
	return b.dayCounter.YearFraction(ref, d), nil
}

// CheckRange fails with ErrOutOfRange when d precedes the reference date, or
// exceeds MaxDate without extrapolation (either the call-site flag or the
// curve-level flag).
func (b *Base) CheckRange(d time.Time, extrapolate bool) error {
	ref, err := b.ReferenceDate()
	if err != nil {
		return err
	}
	if d.Before(ref) {
		return fmt.Errorf("%w: date %s before reference date %s",
			ErrOutOfRange, d.Format("2006-01-02"), ref.Format("2006-01-02"))
	}
	if extrapolate || b.extrapolate || !d.After(b.MaxDate()) {
		return nil
	}
	return fmt.Errorf("%w: date %s past max date %s",
		ErrOutOfRange, d.Format("2006-01-02"), b.MaxDate().Format("2006-01-02"))
}

// CheckRangeTime is CheckRange for a year fraction against [0, MaxTime].
func (b *Base) CheckRangeTime(t float64, extrapolate bool) error {
	if _, err := b.ReferenceDate(); err != nil {
		return err
	}
	if t < 0 {
		return fmt.Errorf("%w: negative time %g", ErrOutOfRange, t)
	}
	if extrapolate || b.extrapolate || t <= b.maxTime {
		return nil
	}
	return fmt.Errorf("%w: time %g past max time %g", ErrOutOfRange, t, b.maxTime)
}

// MaxTime is the latest year fraction for which the curve can return values.
func (b *Base) MaxTime() float64 { return b.maxTime }

// MaxDate is the latest date for which the curve can return values.
func (b *Base) MaxDate() time.Time {
	if !b.referenceSet || math.IsInf(b.maxTime, 1) {
		return farFutureDate
	}
	// The bound is defined on the time axis; translate it back to a date
	// with the ACT/365F density of the curve day counter as an upper cover.
	days := int(math.Ceil(b.maxTime * 365.0))
	return b.referenceDate.AddDate(0, 0, days)
}

// setMaxTime caps the validity horizon. Used by curves whose discount rule
// declares a bound.
func (b *Base) setMaxTime(t float64) { b.maxTime = t }

// EnableExtrapolation allows every query to evaluate past MaxTime.
func (b *Base) EnableExtrapolation() { b.extrapolate = true }

// DisableExtrapolation restores strict range enforcement.
func (b *Base) DisableExtrapolation() { b.extrapolate = false }

// AllowsExtrapolation reports the curve-level extrapolation flag.
func (b *Base) AllowsExtrapolation() bool { return b.extrapolate }

// Calendar used for reference date resolution.
func (b *Base) Calendar() calendar.CalendarID { return b.cal }

// DayCounter used for date/time conversion.
func (b *Base) DayCounter() daycount.DayCounter { return b.dayCounter }

// SettlementDays used for reference date resolution.
func (b *Base) SettlementDays() int { return b.settlementDays }
