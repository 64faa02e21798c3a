package date

import (
	"fmt"
	"time"
)

// MonthFormat is the format used to represent months as strings.
const MonthFormat = "2006-01"

// Month identifies a calendar month. It is comparable and can be used as a map key.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month, e.g. NewMonth(2024, 13) is January 2025.
func NewMonth(year int, month time.Month) Month { return New(year, month, 1).YearMonth() }

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Month returns the month of the year.
func (m Month) Month() time.Month { return m.m }

// First returns the first day of the month.
func (m Month) First() Date { return New(m.y, m.m, 1) }

// Last returns the last calendar day of the month.
func (m Month) Last() Date { return New(m.y, m.m+1, 0) }

// Contains reports whether d belongs to this month.
func (m Month) Contains(d Date) bool { return d.YearMonth() == m }

// Add returns the month i months later.
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Compare returns -1, 0 or +1 whether m is before, equal or after x.
func (m Month) Compare(x Month) int {
	if m.y != x.y {
		return cmpInt(m.y, x.y)
	}
	return cmpInt(int(m.m), int(x.m))
}

func (m Month) String() string { return m.First().Format(MonthFormat) }

// ParseMonth parses a month in the "2006-01" format.
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse(MonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return NewMonth(on.Year(), on.Month()), nil
}
