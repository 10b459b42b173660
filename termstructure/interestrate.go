package termstructure

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/curvelib/daycount"
)

// InterestRate is an immutable annualized rate together with the convention
// needed to interpret it: day counter, compounding rule, and compounding
// frequency.
type InterestRate struct {
	rate        float64
	dayCounter  daycount.DayCounter
	compounding Compounding
	frequency   Frequency
}

// NewInterestRate builds a rate under the given convention. The frequency is
// only meaningful for the discrete compounding rules and is normalized to
// NoFrequency for Simple and Continuous.
func NewInterestRate(rate float64, dc daycount.DayCounter, comp Compounding, freq Frequency) InterestRate {
	if comp == Simple || comp == Continuous {
		freq = NoFrequency
	}
	return InterestRate{rate: rate, dayCounter: dc, compounding: comp, frequency: freq}
}

func (r InterestRate) Rate() float64                   { return r.rate }
func (r InterestRate) DayCounter() daycount.DayCounter { return r.dayCounter }
func (r InterestRate) Compounding() Compounding        { return r.compounding }
func (r InterestRate) Frequency() Frequency            { return r.frequency }

func (r InterestRate) String() string {
	switch r.compounding {
	case Simple, Continuous:
		return fmt.Sprintf("%.6f %s %s", r.rate, r.dayCounter.Name(), r.compounding)
	default:
		return fmt.Sprintf("%.6f %s %s %s", r.rate, r.dayCounter.Name(), r.compounding, r.frequency)
	}
}

// CompoundFactor is the growth of a unit amount over t years.
func (r InterestRate) CompoundFactor(t float64) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("%w: negative time %g", ErrDomain, t)
	}
	f := float64(r.frequency)
	switch r.compounding {
	case Simple:
		return 1.0 + r.rate*t, nil
	case Compounded:
		if f <= 0 {
			return 0, fmt.Errorf("%w: frequency %s not allowed with compounded rates", ErrDomain, r.frequency)
		}
		return math.Pow(1.0+r.rate/f, f*t), nil
	case Continuous:
		return math.Exp(r.rate * t), nil
	case SimpleThenCompounded:
		if f <= 0 {
			return 0, fmt.Errorf("%w: frequency %s not allowed with compounded rates", ErrDomain, r.frequency)
		}
		if t <= 1.0/f {
			return 1.0 + r.rate*t, nil
		}
		return math.Pow(1.0+r.rate/f, f*t), nil
	case CompoundedThenSimple:
		if f <= 0 {
			return 0, fmt.Errorf("%w: frequency %s not allowed with compounded rates", ErrDomain, r.frequency)
		}
		if t > 1.0/f {
			return 1.0 + r.rate*t, nil
		}
		return math.Pow(1.0+r.rate/f, f*t), nil
	default:
		return 0, fmt.Errorf("%w: unknown compounding %d", ErrDomain, int(r.compounding))
	}
}

// CompoundFactorBetween is CompoundFactor over the span measured by the
// rate's own day counter.
func (r InterestRate) CompoundFactorBetween(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end date %s before start date %s",
			ErrDomain, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return r.CompoundFactor(r.dayCounter.YearFraction(start, end))
}

// DiscountFactor is the present value of a unit amount due in t years,
// the reciprocal of CompoundFactor.
func (r InterestRate) DiscountFactor(t float64) (float64, error) {
	compound, err := r.CompoundFactor(t)
	if err != nil {
		return 0, err
	}
	return 1.0 / compound, nil
}

// EquivalentRate re-expresses the rate under another convention such that
// both produce the same compound factor over t years.
func (r InterestRate) EquivalentRate(dc daycount.DayCounter, comp Compounding, freq Frequency, t float64) (InterestRate, error) {
	compound, err := r.CompoundFactor(t)
	if err != nil {
		return InterestRate{}, err
	}
	return ImpliedRate(compound, dc, comp, freq, t)
}

// ImpliedRate inverts a compound factor observed over t years into the
// annualized rate that reproduces it under the given convention.
func ImpliedRate(compound float64, dc daycount.DayCounter, comp Compounding, freq Frequency, t float64) (InterestRate, error) {
	if compound <= 0 {
		return InterestRate{}, fmt.Errorf("%w: non-positive compound factor %g", ErrDomain, compound)
	}
	if t <= 0 {
		return InterestRate{}, fmt.Errorf("%w: non-positive time %g", ErrDomain, t)
	}

	f := float64(freq)
	var rate float64
	switch comp {
	case Simple:
		rate = (compound - 1.0) / t
	case Compounded:
		if f <= 0 {
			return InterestRate{}, fmt.Errorf("%w: frequency %s not allowed with compounded rates", ErrDomain, freq)
		}
		rate = (math.Pow(compound, 1.0/(f*t)) - 1.0) * f
	case Continuous:
		rate = math.Log(compound) / t
	case SimpleThenCompounded:
		if f <= 0 {
			return InterestRate{}, fmt.Errorf("%w: frequency %s not allowed with compounded rates", ErrDomain, freq)
		}
		if t <= 1.0/f {
			rate = (compound - 1.0) / t
		} else {
			rate = (math.Pow(compound, 1.0/(f*t)) - 1.0) * f
		}
	case CompoundedThenSimple:
		if f <= 0 {
			return InterestRate{}, fmt.Errorf("%w: frequency %s not allowed with compounded rates", ErrDomain, freq)
		}
		if t > 1.0/f {
			rate = (compound - 1.0) / t
		} else {
			rate = (math.Pow(compound, 1.0/(f*t)) - 1.0) * f
		}
	default:
		return InterestRate{}, fmt.Errorf("%w: unknown compounding %d", ErrDomain, int(comp))
	}

	return NewInterestRate(rate, dc, comp, freq), nil
}

// ImpliedRateBetween is ImpliedRate with the elapsed time measured between
// two dates by the result day counter.
func ImpliedRateBetween(compound float64, dc daycount.DayCounter, comp Compounding, freq Frequency, start, end time.Time) (InterestRate, error) {
	if end.Before(start) {
		return InterestRate{}, fmt.Errorf("%w: end date %s before start date %s",
			ErrDomain, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return ImpliedRate(compound, dc, comp, freq, dc.YearFraction(start, end))
}
