package termstructure_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/curvelib/calendar"
	"github.com/meenmo/curvelib/daycount"
	ts "github.com/meenmo/curvelib/termstructure"
)

func TestBaseUnresolvedReference(t *testing.T) {
	t.Parallel()

	b := ts.NewBase(calendar.TARGET, daycount.Act365Fixed{}, 0)

	_, err := b.ReferenceDate()
	assert.ErrorIs(t, err, ts.ErrUnresolvedReference)

	_, err = b.TimeFromReference(date(2024, time.June, 1))
	assert.ErrorIs(t, err, ts.ErrUnresolvedReference)

	err = b.CheckRange(date(2024, time.June, 1), false)
	assert.ErrorIs(t, err, ts.ErrUnresolvedReference)

	err = b.CheckRangeTime(1.0, false)
	assert.ErrorIs(t, err, ts.ErrUnresolvedReference)
}

func TestBaseTimeFromReference(t *testing.T) {
	t.Parallel()

	b := ts.NewBase(calendar.TARGET, daycount.Act365Fixed{}, 0)
	b.SetReferenceDate(date(2024, time.January, 1))

	tau, err := b.TimeFromReference(date(2025, time.January, 1))
	require.NoError(t, err)
	assert.InDelta(t, 366.0/365.0, tau, 1e-12)

	// Dates before the reference produce negative times.
	tau, err = b.TimeFromReference(date(2023, time.December, 1))
	require.NoError(t, err)
	assert.Negative(t, tau)
}

func TestBaseSetEvaluationDate(t *testing.T) {
	t.Parallel()

	b := ts.NewBase(calendar.TARGET, daycount.Act365Fixed{}, 2)
	// Friday 2024-01-05 + 2 business days = Tuesday 2024-01-09.
	b.SetEvaluationDate(date(2024, time.January, 5))

	ref, err := b.ReferenceDate()
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 9), ref)
}

func TestBaseCheckRange(t *testing.T) {
	t.Parallel()

	b := ts.NewBase(calendar.TARGET, daycount.Act365Fixed{}, 0)
	b.SetReferenceDate(date(2024, time.January, 1))

	assert.ErrorIs(t, b.CheckRange(date(2023, time.June, 1), false), ts.ErrOutOfRange,
		"before reference")
	assert.ErrorIs(t, b.CheckRange(date(2023, time.June, 1), true), ts.ErrOutOfRange,
		"extrapolation never reaches before the reference")
	assert.NoError(t, b.CheckRange(date(2050, time.June, 1), false),
		"unbounded curve accepts any future date")

	assert.ErrorIs(t, b.CheckRangeTime(-0.5, false), ts.ErrOutOfRange)
	assert.ErrorIs(t, b.CheckRangeTime(-0.5, true), ts.ErrOutOfRange)
	assert.NoError(t, b.CheckRangeTime(0, false))
	assert.NoError(t, b.CheckRangeTime(100.0, false))
}

func TestBaseUnboundedDefaults(t *testing.T) {
	t.Parallel()

	b := ts.NewBase(calendar.TARGET, daycount.Act365Fixed{}, 0)
	assert.True(t, math.IsInf(b.MaxTime(), 1))
	assert.Equal(t, 2199, b.MaxDate().Year())
}

func TestBaseExtrapolationFlag(t *testing.T) {
	t.Parallel()

	b := ts.NewBase(calendar.TARGET, daycount.Act365Fixed{}, 0)
	assert.False(t, b.AllowsExtrapolation())
	b.EnableExtrapolation()
	assert.True(t, b.AllowsExtrapolation())
	b.DisableExtrapolation()
	assert.False(t, b.AllowsExtrapolation())
}

func TestBaseAccessors(t *testing.T) {
	t.Parallel()

	b := ts.NewBase(calendar.KRW, daycount.Act360{}, 1)
	assert.Equal(t, calendar.KRW, b.Calendar())
	assert.Equal(t, "ACT/360", b.DayCounter().Name())
	assert.Equal(t, 1, b.SettlementDays())
}
