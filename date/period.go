package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar period: a day, a week (monday to sunday), a month, a
// quarter or a year.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var periodNames = [...]string{"daily", "weekly", "monthly", "quarterly", "yearly"}

var periodUnits = [...]string{"day", "week", "month", "quarter", "year"}

func (p Period) String() string {
	if p < Daily || p > Yearly {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodNames[p]
}

// ParsePeriod parses a period name, either "monthly" or "month".
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(s)
	for p, name := range periodNames {
		if s == name || s == periodUnits[p] {
			return Period(p), nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q, want one of day, week, month, quarter, year", s)
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Weekly:
		// time.Sunday is 0, days since monday are in [0, 6].
		return d.Add(-((int(d.Weekday()) + 6) % 7))
	case Monthly:
		return d.YearMonth().First()
	case Quarterly:
		return New(d.y, d.m-(d.m-1)%3, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		return d
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	switch p {
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return d.YearMonth().Last()
	case Quarterly:
		return d.StartOf(Quarterly).AddMonth(3).Add(-1)
	case Yearly:
		return New(d.y, time.December, 31)
	default:
		return d
	}
}

// PeriodKey identifies the period containing d, e.g. "2025-W37", "2025-09",
// "2025-Q3" or "2025".
func (d Date) PeriodKey(p Period) string {
	switch p {
	case Weekly:
		y, w := d.time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case Monthly:
		return d.YearMonth().String()
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", d.y, (d.m-1)/3+1)
	case Yearly:
		return fmt.Sprintf("%d", d.y)
	default:
		return d.String()
	}
}
