// Package date handles calendar days and months, without time or location.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the ISO 8601 layout of dates, e.g. "2001-08-31".
const DateFormat = "2006-01-02"

// lenientFormat also accepts single digit months and days, e.g. "2001-8-1".
const lenientFormat = "2006-1-2"

// Date is a calendar day. The zero value is not a valid day, see IsZero.
//
// Dates are normalized and comparable with ==.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the date of year, month and day, normalized like time.Date:
// New(2001, 9, 0) is 2001-08-31.
func New(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// Today returns the current local date.
func Today() Date { return New(time.Now().Date()) }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// YearMonth returns the month d belongs to.
func (d Date) YearMonth() Month { return Month{y: d.y, m: d.m} }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// time returns d at midnight UTC.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format formats d with a time.Format layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

func (d Date) String() string { return d.Format(DateFormat) }

// Compare returns -1, 0 or +1 whether d is before, equal or after x.
func (d Date) Compare(x Date) int {
	if c := cmpInt(d.y, x.y); c != 0 {
		return c
	}
	if c := cmpInt(int(d.m), int(x.m)); c != 0 {
		return c
	}
	return cmpInt(d.d, x.d)
}

func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }
func (d Date) After(x Date) bool  { return d.Compare(x) > 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Add returns d plus days, which can be negative.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// AddMonth returns d plus months, normalized: 2001-01-31 plus one month is 2001-03-03.
func (d Date) AddMonth(months int) Date { return New(d.y, d.m+time.Month(months), d.d) }

// Parse parses an ISO date. Months and days may have a single digit.
func Parse(s string) (Date, error) {
	t, err := time.Parse(lenientFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateFormat, err)
	}
	return New(t.Date()), nil
}

// ParseISO parses a date in the strict DateFormat, with two digits months and days.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateFormat, err)
	}
	return New(t.Date()), nil
}

// MustParse is Parse that panics on error, for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// UnmarshalJSON decodes a json string with Parse. null is the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }
