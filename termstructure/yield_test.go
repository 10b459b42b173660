package termstructure_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/curvelib/calendar"
	"github.com/meenmo/curvelib/daycount"
	"github.com/meenmo/curvelib/quote"
	ts "github.com/meenmo/curvelib/termstructure"
)

var (
	refDate = date(2024, time.January, 1)
	act365  = daycount.Act365Fixed{}
)

// flatCurve is a 5% continuously compounded flat curve anchored at refDate.
func flatCurve(t *testing.T, opts ...ts.Option) *ts.YieldTermStructure {
	t.Helper()
	rule, err := ts.NewFlatForward(0.05, act365, ts.Continuous, ts.NoFrequency)
	require.NoError(t, err)
	curve, err := ts.NewYieldTermStructure(refDate, calendar.TARGET, act365, 0, rule, opts...)
	require.NoError(t, err)
	return curve
}

func TestDiscountIdentityAtReference(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t)
	df, err := curve.Discount(refDate, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, df)
}

func TestDiscountFlatContinuousScenario(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t)
	d := date(2025, time.January, 1)

	tau, err := curve.TimeFromReference(d)
	require.NoError(t, err)

	df, err := curve.Discount(d, false)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.05*tau), df, 1e-14)
	assert.InDelta(t, 0.9512, df, 1e-3)

	zr, err := curve.ZeroRate(d, act365, ts.Continuous, ts.Annual, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, zr.Rate(), 1e-12)
}

func TestZeroRateAtReferenceUsesForwardDifference(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t)

	zr, err := curve.ZeroRate(refDate, act365, ts.Continuous, ts.Annual, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, zr.Rate(), 1e-9)

	zrt, err := curve.ZeroRateAtTime(0, ts.Continuous, ts.Annual, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, zrt.Rate(), 1e-9)
}

func TestZeroRateDiscountRoundTrip(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t)

	conventions := []struct {
		comp ts.Compounding
		freq ts.Frequency
	}{
		{ts.Continuous, ts.NoFrequency},
		{ts.Compounded, ts.Annual},
		{ts.Compounded, ts.Semiannual},
		{ts.Simple, ts.NoFrequency},
	}

	dates := []time.Time{
		date(2024, time.February, 1),
		date(2024, time.July, 15),
		date(2026, time.January, 1),
		date(2034, time.January, 1),
	}

	for _, cv := range conventions {
		for _, d := range dates {
			zr, err := curve.ZeroRate(d, act365, cv.comp, cv.freq, true)
			require.NoError(t, err)

			ref, err := curve.ReferenceDate()
			require.NoError(t, err)
			compound, err := zr.CompoundFactorBetween(ref, d)
			require.NoError(t, err)

			df, err := curve.Discount(d, true)
			require.NoError(t, err)
			assert.InEpsilon(t, df, 1.0/compound, 1e-10,
				"%s %s at %s", cv.comp, cv.freq, d.Format("2006-01-02"))
		}
	}
}

func TestJumpStrictInteriority(t *testing.T) {
	t.Parallel()

	jumpDate := date(2024, time.July, 1)
	curve := flatCurve(t, ts.WithJumps(
		[]quote.Quote{quote.NewSimpleQuote(0.9)},
		[]time.Time{jumpDate},
	))
	plain := flatCurve(t)

	// At the jump date itself the jump must not apply.
	dfAt, err := curve.Discount(jumpDate, false)
	require.NoError(t, err)
	dfPlain, err := plain.Discount(jumpDate, false)
	require.NoError(t, err)
	assert.Equal(t, dfPlain, dfAt)

	// Strictly past the jump date it applies exactly once.
	after := jumpDate.AddDate(0, 0, 1)
	dfAfter, err := curve.Discount(after, false)
	require.NoError(t, err)
	dfPlainAfter, err := plain.Discount(after, false)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.9*dfPlainAfter, dfAfter, 1e-14)

	far := date(2030, time.January, 1)
	dfFar, err := curve.Discount(far, false)
	require.NoError(t, err)
	dfPlainFar, err := plain.Discount(far, false)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.9*dfPlainFar, dfFar, 1e-14)
}

func TestUnitJumpIsNeutral(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t, ts.WithJumps(
		[]quote.Quote{quote.NewSimpleQuote(1.0)},
		[]time.Time{date(2024, time.July, 1)},
	))
	plain := flatCurve(t)

	for _, d := range []time.Time{
		date(2024, time.March, 1),
		date(2024, time.July, 1),
		date(2025, time.March, 1),
		date(2031, time.July, 1),
	} {
		got, err := curve.Discount(d, false)
		require.NoError(t, err)
		want, err := plain.Discount(d, false)
		require.NoError(t, err)
		assert.Equal(t, want, got, d.Format("2006-01-02"))
	}
}

func TestJumpDefaultAnchors(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t, ts.WithJumps(
		[]quote.Quote{quote.NewSimpleQuote(0.98), quote.NewSimpleQuote(0.99)},
		nil,
	))

	want := []time.Time{
		date(2024, time.December, 31),
		date(2025, time.December, 31),
	}
	assert.Equal(t, want, curve.JumpDates())

	times := curve.JumpTimes()
	require.Len(t, times, 2)
	assert.InDelta(t, 365.0/365.0, times[0], 1e-12)
	assert.InDelta(t, 730.0/365.0, times[1], 1e-12)
}

func TestJumpQuoteErrors(t *testing.T) {
	t.Parallel()

	jumpDate := date(2024, time.July, 1)
	after := date(2024, time.August, 1)

	t.Run("invalid quote", func(t *testing.T) {
		t.Parallel()
		var pending quote.SimpleQuote // invalid until set
		curve := flatCurve(t, ts.WithJumps(
			[]quote.Quote{&pending},
			[]time.Time{jumpDate},
		))

		_, err := curve.Discount(after, false)
		assert.ErrorIs(t, err, ts.ErrInvalidQuote)

		// Queries that never cross the jump are unaffected.
		_, err = curve.Discount(date(2024, time.March, 1), false)
		assert.NoError(t, err)

		// Once the quote publishes, the same query succeeds.
		pending.SetValue(0.95)
		_, err = curve.Discount(after, false)
		assert.NoError(t, err)
	})

	t.Run("non-positive value", func(t *testing.T) {
		t.Parallel()
		curve := flatCurve(t, ts.WithJumps(
			[]quote.Quote{quote.NewSimpleQuote(-0.2)},
			[]time.Time{jumpDate},
		))

		_, err := curve.Discount(after, false)
		assert.ErrorIs(t, err, ts.ErrDomain)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		t.Parallel()
		rule, err := ts.NewFlatForward(0.05, act365, ts.Continuous, ts.NoFrequency)
		require.NoError(t, err)
		_, err = ts.NewYieldTermStructure(refDate, calendar.TARGET, act365, 0, rule,
			ts.WithJumps(
				[]quote.Quote{quote.NewSimpleQuote(0.9)},
				[]time.Time{jumpDate, after},
			))
		assert.ErrorIs(t, err, ts.ErrDomain)
	})
}

func TestRangeEnforcement(t *testing.T) {
	t.Parallel()

	flat, err := ts.NewFlatForward(0.05, act365, ts.Continuous, ts.NoFrequency)
	require.NoError(t, err)
	bounded, err := ts.NewBoundedRule(flat, 5.0)
	require.NoError(t, err)
	curve, err := ts.NewYieldTermStructure(refDate, calendar.TARGET, act365, 0, bounded)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, curve.MaxTime(), 1e-12)

	_, err = curve.DiscountAtTime(curve.MaxTime()+1, false)
	assert.ErrorIs(t, err, ts.ErrOutOfRange)

	df, err := curve.DiscountAtTime(curve.MaxTime()+1, true)
	require.NoError(t, err)
	assert.Greater(t, df, 0.0)
	assert.False(t, math.IsInf(df, 0) || math.IsNaN(df))

	// Date axis enforces the same bound.
	past := curve.MaxDate().AddDate(1, 0, 0)
	_, err = curve.Discount(past, false)
	assert.ErrorIs(t, err, ts.ErrOutOfRange)
	_, err = curve.Discount(past, true)
	assert.NoError(t, err)

	// Before-reference queries fail regardless of extrapolation.
	_, err = curve.Discount(date(2023, time.June, 1), true)
	assert.ErrorIs(t, err, ts.ErrOutOfRange)

	// Curve-level extrapolation lifts the bound for every query.
	withExtrap, err := ts.NewYieldTermStructure(refDate, calendar.TARGET, act365, 0, bounded,
		ts.WithExtrapolation())
	require.NoError(t, err)
	_, err = withExtrap.DiscountAtTime(6.0, false)
	assert.NoError(t, err)
}

func TestForwardRateDegenerateMatchesZeroRate(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t)
	d := date(2025, time.January, 1)

	fwd, err := curve.ForwardRate(d, d, act365, ts.Continuous, ts.Annual, true)
	require.NoError(t, err)

	tau, err := curve.TimeFromReference(d)
	require.NoError(t, err)
	zr, err := curve.ZeroRateAtTime(tau, ts.Continuous, ts.Annual, true)
	require.NoError(t, err)

	assert.InDelta(t, zr.Rate(), fwd.Rate(), 1e-9)
}

func TestForwardRateDegenerateAtReference(t *testing.T) {
	t.Parallel()

	// The centered difference at the reference clamps t1 to 0 and still
	// produces the flat rate.
	curve := flatCurve(t)
	fwd, err := curve.ForwardRate(refDate, refDate, act365, ts.Continuous, ts.Annual, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, fwd.Rate(), 1e-9)
}

func TestForwardRateOrdering(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t)
	d1 := date(2025, time.January, 1)
	d2 := date(2026, time.January, 1)

	_, err := curve.ForwardRate(d2, d1, act365, ts.Continuous, ts.Annual, false)
	assert.ErrorIs(t, err, ts.ErrDomain)

	fwd, err := curve.ForwardRate(d1, d2, act365, ts.Continuous, ts.Annual, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, fwd.Rate(), 1e-12)

	_, err = curve.ForwardRateBetweenTimes(2.0, 1.0, ts.Continuous, ts.Annual, false)
	assert.ErrorIs(t, err, ts.ErrDomain)

	fwdT, err := curve.ForwardRateBetweenTimes(1.0, 2.0, ts.Continuous, ts.Annual, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, fwdT.Rate(), 1e-12)
}

func TestForwardRateBetweenTimesDegenerate(t *testing.T) {
	t.Parallel()

	curve := flatCurve(t)
	fwd, err := curve.ForwardRateBetweenTimes(1.5, 1.5, ts.Continuous, ts.Annual, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, fwd.Rate(), 1e-9)
}

func TestForwardAcrossJumpPicksUpJumpEffect(t *testing.T) {
	t.Parallel()

	jumpDate := date(2024, time.July, 1)
	curve := flatCurve(t, ts.WithJumps(
		[]quote.Quote{quote.NewSimpleQuote(0.9)},
		[]time.Time{jumpDate},
	))

	d1 := date(2024, time.June, 1)
	d2 := date(2024, time.August, 1)
	fwd, err := curve.ForwardRate(d1, d2, act365, ts.Continuous, ts.NoFrequency, false)
	require.NoError(t, err)

	// DF(d1) has no jump, DF(d2) carries 0.9, so the forward embeds
	// -ln(0.9)/tau on top of the flat 5%.
	tau := act365.YearFraction(d1, d2)
	want := 0.05 - math.Log(0.9)/tau
	assert.InDelta(t, want, fwd.Rate(), 1e-12)
}

func TestSetReferenceDateRebuildsJumpTimes(t *testing.T) {
	t.Parallel()

	jumpDate := date(2024, time.July, 1)
	curve := flatCurve(t, ts.WithJumps(
		[]quote.Quote{quote.NewSimpleQuote(0.9)},
		[]time.Time{jumpDate},
	))

	times := curve.JumpTimes()
	require.Len(t, times, 1)
	assert.InDelta(t, 182.0/365.0, times[0], 1e-12)

	curve.SetReferenceDate(date(2024, time.April, 1))
	times = curve.JumpTimes()
	require.Len(t, times, 1)
	assert.InDelta(t, 91.0/365.0, times[0], 1e-12)
	assert.Equal(t, []time.Time{jumpDate}, curve.JumpDates(), "anchors are unchanged")

	// Idempotent: re-setting the same reference leaves the snapshot as is.
	curve.SetReferenceDate(date(2024, time.April, 1))
	assert.InDelta(t, 91.0/365.0, curve.JumpTimes()[0], 1e-12)
}

func TestSetEvaluationDateAppliesSettlementLag(t *testing.T) {
	t.Parallel()

	rule, err := ts.NewFlatForward(0.05, act365, ts.Continuous, ts.NoFrequency)
	require.NoError(t, err)
	curve, err := ts.NewYieldTermStructure(refDate, calendar.TARGET, act365, 2, rule)
	require.NoError(t, err)

	// Friday 2024-01-05 + 2 business days = Tuesday 2024-01-09.
	curve.SetEvaluationDate(date(2024, time.January, 5))
	ref, err := curve.ReferenceDate()
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 9), ref)
}

func TestDiscountRuleFuncAdapter(t *testing.T) {
	t.Parallel()

	rule := ts.DiscountRuleFunc(func(tau float64) float64 {
		return math.Exp(-0.03 * tau)
	})
	curve, err := ts.NewYieldTermStructure(refDate, calendar.TARGET, act365, 0, rule)
	require.NoError(t, err)

	df, err := curve.DiscountAtTime(2.0, false)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.06), df, 1e-14)
}

func TestConstructorValidation(t *testing.T) {
	t.Parallel()

	_, err := ts.NewYieldTermStructure(refDate, calendar.TARGET, act365, 0, nil)
	assert.ErrorIs(t, err, ts.ErrDomain)

	_, err = ts.NewFlatForward(0.05, act365, ts.Compounded, ts.NoFrequency)
	assert.ErrorIs(t, err, ts.ErrDomain, "compounded flat rule needs a frequency")

	flat, err := ts.NewFlatForward(0.05, act365, ts.Continuous, ts.NoFrequency)
	require.NoError(t, err)
	_, err = ts.NewBoundedRule(flat, 0)
	assert.ErrorIs(t, err, ts.ErrDomain)
}
