// Package cashflows defines the cash-flow and coupon contracts that
// instrument pricers implement on top of the yield term structure, plus a
// concrete fixed-rate coupon.
package cashflows

import (
	"errors"
	"reflect"
	"time"

	"github.com/meenmo/curvelib/daycount"
)

// ErrNilCurve is returned when a required curve argument is nil.
var ErrNilCurve = errors.New("nil curve")

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// CashFlow is a single payment at a known date.
type CashFlow interface {
	// Amount of the payment, in the instrument's currency.
	Amount() float64
	// Date the payment settles.
	Date() time.Time
	// HasOccurred reports whether the payment settles strictly before ref.
	HasOccurred(ref time.Time) bool
}

// Coupon is a cash flow that accrues over a period. Its underlying fields
// (notional, day counter, payment and accrual dates, reference period) are
// fixed at construction.
type Coupon interface {
	CashFlow
	// Nominal the coupon accrues on.
	Nominal() float64
	// Rate is the annualized accrual rate as a decimal.
	Rate() float64
	// AccruedAmount accrued from the accrual start up to d, clamped to the
	// accrual period.
	AccruedAmount(d time.Time) float64
	// AccrualPeriod is the accrual year fraction under the coupon's day counter.
	AccrualPeriod() float64
	// AccrualDays is the integer day count of the accrual period.
	AccrualDays() int
	AccrualStartDate() time.Time
	AccrualEndDate() time.Time
	// DayCounter used for accrual.
	DayCounter() daycount.DayCounter
}

// DiscountingCurve is the slice of the term structure NPV needs.
type DiscountingCurve interface {
	Discount(d time.Time, extrapolate bool) (float64, error)
}

// NPV discounts every cash flow settling on or after the settlement date.
func NPV(flows []CashFlow, curve DiscountingCurve, settlement time.Time) (float64, error) {
	if isNilInterface(curve) {
		return 0, ErrNilCurve
	}
	total := 0.0
	for _, cf := range flows {
		if cf.HasOccurred(settlement) {
			continue
		}
		df, err := curve.Discount(cf.Date(), false)
		if err != nil {
			return 0, err
		}
		total += cf.Amount() * df
	}
	return total, nil
}
