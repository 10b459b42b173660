// Package calendar provides holiday calendars and business-day adjustment.
// The term structure only stores a CalendarID and uses it to resolve
// settlement-lagged reference dates; richer scheduling lives with the
// instruments that need it.
package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET       CalendarID = "TARGET"
	JPN          CalendarID = "JPN"
	USD          CalendarID = "USD"
	KRW          CalendarID = "KRW"
	WeekendsOnly CalendarID = "WEEKENDS"
)

// Fixed-date holidays observed every year, keyed MM-DD.
var fixedHolidays = map[CalendarID]map[string]struct{}{
	TARGET: {
		"01-01": {}, "05-01": {}, "12-25": {}, "12-26": {},
	},
	JPN: {
		"01-01": {}, "01-02": {}, "01-03": {}, "02-11": {}, "02-23": {},
		"04-29": {}, "05-03": {}, "05-04": {}, "05-05": {}, "11-03": {},
		"11-23": {},
	},
	USD: {
		"01-01": {}, "06-19": {}, "07-04": {}, "11-11": {}, "12-25": {},
	},
	KRW: {
		"01-01": {}, "03-01": {}, "05-05": {}, "06-06": {}, "08-15": {},
		"10-03": {}, "10-09": {}, "12-25": {},
	},
}

func isHoliday(cal CalendarID, t time.Time) bool {
	set, ok := fixedHolidays[cal]
	if !ok {
		return false
	}
	_, holiday := set[t.Format("01-02")]
	return holiday
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal CalendarID, t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal CalendarID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
