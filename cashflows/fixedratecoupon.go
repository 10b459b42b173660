package cashflows

import (
	"fmt"
	"time"

	"github.com/meenmo/curvelib/daycount"
)

// FixedRateCoupon accrues a fixed annualized rate on a nominal between two
// dates and pays the accrued amount on the payment date. All fields are
// immutable for the coupon's lifetime.
type FixedRateCoupon struct {
	nominal      float64
	rate         float64
	dayCounter   daycount.DayCounter
	paymentDate  time.Time
	accrualStart time.Time
	accrualEnd   time.Time
	refStart     time.Time
	refEnd       time.Time
}

// NewFixedRateCoupon builds a coupon paying rate (decimal) on nominal accrued
// over [accrualStart, accrualEnd] under dc, settling on paymentDate.
// refStart/refEnd bound the regular reference period for stub handling; zero
// values default to the accrual dates.
func NewFixedRateCoupon(
	nominal, rate float64,
	dc daycount.DayCounter,
	paymentDate, accrualStart, accrualEnd time.Time,
	refStart, refEnd time.Time,
) (*FixedRateCoupon, error) {
	if accrualEnd.Before(accrualStart) {
		return nil, fmt.Errorf("fixed rate coupon: accrual end %s before start %s",
			accrualEnd.Format("2006-01-02"), accrualStart.Format("2006-01-02"))
	}
	if paymentDate.Before(accrualStart) {
		return nil, fmt.Errorf("fixed rate coupon: payment date %s before accrual start %s",
			paymentDate.Format("2006-01-02"), accrualStart.Format("2006-01-02"))
	}
	if refStart.IsZero() {
		refStart = accrualStart
	}
	if refEnd.IsZero() {
		refEnd = accrualEnd
	}
	return &FixedRateCoupon{
		nominal:      nominal,
		rate:         rate,
		dayCounter:   dc,
		paymentDate:  paymentDate,
		accrualStart: accrualStart,
		accrualEnd:   accrualEnd,
		refStart:     refStart,
		refEnd:       refEnd,
	}, nil
}

func (c *FixedRateCoupon) Amount() float64 {
	return c.nominal * c.rate * c.AccrualPeriod()
}

func (c *FixedRateCoupon) Date() time.Time { return c.paymentDate }

func (c *FixedRateCoupon) HasOccurred(ref time.Time) bool {
	return c.paymentDate.Before(ref)
}

func (c *FixedRateCoupon) Nominal() float64 { return c.nominal }

func (c *FixedRateCoupon) Rate() float64 { return c.rate }

func (c *FixedRateCoupon) AccrualPeriod() float64 {
	return c.dayCounter.YearFraction(c.accrualStart, c.accrualEnd)
}

func (c *FixedRateCoupon) AccrualDays() int {
	return c.dayCounter.DayCount(c.accrualStart, c.accrualEnd)
}

// AccruedAmount is the accrual earned up to d. Zero before the accrual
// start, the full amount at or past the accrual end.
func (c *FixedRateCoupon) AccruedAmount(d time.Time) float64 {
	if !d.After(c.accrualStart) {
		return 0
	}
	end := d
	if end.After(c.accrualEnd) {
		end = c.accrualEnd
	}
	return c.nominal * c.rate * c.dayCounter.YearFraction(c.accrualStart, end)
}

func (c *FixedRateCoupon) AccrualStartDate() time.Time { return c.accrualStart }

func (c *FixedRateCoupon) AccrualEndDate() time.Time { return c.accrualEnd }

// ReferencePeriodStart bounds the regular coupon period for stub conventions.
func (c *FixedRateCoupon) ReferencePeriodStart() time.Time { return c.refStart }

// ReferencePeriodEnd bounds the regular coupon period for stub conventions.
func (c *FixedRateCoupon) ReferencePeriodEnd() time.Time { return c.refEnd }

// DayCounter used for accrual.
func (c *FixedRateCoupon) DayCounter() daycount.DayCounter { return c.dayCounter }
