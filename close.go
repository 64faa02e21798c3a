package stockdata

import (
	"fmt"
	"slices"

	"github.com/etnz/stockdata/date"
	"github.com/shopspring/decimal"
)

// DailyClose is the closing price of a single trading day.
//
// It is also the shape of a monthly close: the daily close elected for its month.
type DailyClose struct {
	Date  date.Date       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// NewDailyClose returns a DailyClose from its textual representation.
func NewDailyClose(day, close string) (DailyClose, error) {
	return DefaultLayout.Parse(day + "," + close)
}

// MustDailyClose is like NewDailyClose but panics on error.
func MustDailyClose(day, close string) DailyClose {
	c, err := NewDailyClose(day, close)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Month returns the month this close belongs to.
func (c DailyClose) Month() date.Month { return c.Date.YearMonth() }

// Equal reports whether c and x have the same date and the same close value.
//
// Closes are compared by value, so "105.80" equals "105.8".
func (c DailyClose) Equal(x DailyClose) bool { return c.Date == x.Date && c.Close.Equal(x.Close) }

func (c DailyClose) String() string { return fmt.Sprintf("%s: %s", c.Date, FormatClose(c.Close)) }

// FormatClose formats a price keeping the number of decimals it was read with,
// so that "113.00" is written back as "113.00" and not "113".
func FormatClose(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// SortByDate sorts closes in chronological order.
func SortByDate(closes []DailyClose) {
	slices.SortFunc(closes, func(a, b DailyClose) int { return a.Date.Compare(b.Date) })
}
