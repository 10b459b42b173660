// Package daycount implements the day count conventions used to convert a
// pair of dates into a year fraction. The term structure treats these as
// opaque: any DayCounter can drive a curve's time axis.
package daycount

import (
	"fmt"
	"time"
)

// DayCounter converts date spans into year fractions under a market convention.
type DayCounter interface {
	Name() string
	// YearFraction is the elapsed fraction of a year between start and end.
	// Negative when end precedes start.
	YearFraction(start, end time.Time) float64
	// DayCount is the integer day count between start and end.
	DayCount(start, end time.Time) int
}

// Act360 is the ACT/360 money-market convention.
type Act360 struct{}

// Act365Fixed is the ACT/365 Fixed convention. This is the standard time
// basis for curve construction (QuantLib and Bloomberg both use it for the
// discount curve axis regardless of currency).
type Act365Fixed struct{}

// Thirty360E is 30E/360 ISDA (Eurobond basis). Start and end days are
// capped at 30.
type Thirty360E struct{}

// ActActISDA is ACT/ACT ISDA: actual days over 365 or 366 depending on the
// year each portion of the period falls in.
type ActActISDA struct{}

func actualDays(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

func (Act360) Name() string { return "ACT/360" }

func (Act360) YearFraction(start, end time.Time) float64 {
	return actualDays(start, end) / 360.0
}

func (Act360) DayCount(start, end time.Time) int {
	return int(actualDays(start, end))
}

func (Act365Fixed) Name() string { return "ACT/365F" }

func (Act365Fixed) YearFraction(start, end time.Time) float64 {
	return actualDays(start, end) / 365.0
}

func (Act365Fixed) DayCount(start, end time.Time) int {
	return int(actualDays(start, end))
}

func (Thirty360E) Name() string { return "30E/360" }

func (Thirty360E) YearFraction(start, end time.Time) float64 {
	return float64(Thirty360E{}.DayCount(start, end)) / 360.0
}

func (Thirty360E) DayCount(start, end time.Time) int {
	d1 := start.Day()
	if d1 > 30 {
		d1 = 30
	}
	d2 := end.Day()
	if d2 > 30 {
		d2 = 30
	}
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return 360*(y2-y1) + 30*(m2-m1) + (d2 - d1)
}

func (ActActISDA) Name() string { return "ACT/ACT" }

func (ActActISDA) YearFraction(start, end time.Time) float64 {
	if end.Before(start) {
		return -(ActActISDA{}).YearFraction(end, start)
	}
	if start.Year() == end.Year() {
		return actualDays(start, end) / daysInYear(start.Year())
	}
	// Split the span at the year boundaries.
	sum := 0.0
	startOfNext := time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	sum += actualDays(start, startOfNext) / daysInYear(start.Year())
	for y := start.Year() + 1; y < end.Year(); y++ {
		sum += 1.0
	}
	startOfEnd := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	sum += actualDays(startOfEnd, end) / daysInYear(end.Year())
	return sum
}

func (ActActISDA) DayCount(start, end time.Time) int {
	return int(actualDays(start, end))
}

func daysInYear(year int) float64 {
	if isLeap(year) {
		return 366.0
	}
	return 365.0
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Parse resolves a convention name to its DayCounter.
// Supported: ACT/360, ACT/365F, 30E/360, 30/360, ACT/ACT.
func Parse(name string) (DayCounter, error) {
	switch name {
	case "ACT/360":
		return Act360{}, nil
	case "ACT/365F", "ACT/365":
		return Act365Fixed{}, nil
	case "30E/360", "30/360":
		return Thirty360E{}, nil
	case "ACT/ACT":
		return ActActISDA{}, nil
	default:
		return nil, fmt.Errorf("daycount: unknown convention %q", name)
	}
}
