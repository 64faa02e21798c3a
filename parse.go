package stockdata

import (
	"fmt"
	"strings"

	"github.com/etnz/stockdata/date"
	"github.com/shopspring/decimal"
)

// MalformedLineError reports a line that cannot be turned into a DailyClose.
type MalformedLineError struct {
	Line   string // the offending line, verbatim
	Number int    // 1-based line number when known, 0 otherwise
	Reason string
	Err    error // underlying parse error, if any
}

func (e *MalformedLineError) Error() string {
	var b strings.Builder
	b.WriteString("malformed line")
	if e.Number > 0 {
		fmt.Fprintf(&b, " %d", e.Number)
	}
	fmt.Fprintf(&b, " %q: %s", e.Line, e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *MalformedLineError) Unwrap() error { return e.Err }

// Layout describes where the date and the close are in a line.
type Layout struct {
	Separator rune // field separator
	Fields    int  // exact number of fields, or 0 to accept any line with enough fields
	Date      int  // index of the date column
	Close     int  // index of the close column
}

// DefaultLayout is the two columns "date,close" layout.
var DefaultLayout = Layout{Separator: ',', Fields: 2, Date: 0, Close: 1}

// ParseLine parses a "date,close" line using the DefaultLayout.
func ParseLine(line string) (DailyClose, error) { return DefaultLayout.Parse(line) }

// Parse parses a single line.
//
// It fails with a *MalformedLineError if the line has the wrong number of fields,
// or if the date is not a valid calendar date, or if the close is not a decimal number.
func (l Layout) Parse(line string) (DailyClose, error) {
	fields := strings.Split(line, string(l.Separator))
	if l.Fields > 0 && len(fields) != l.Fields {
		return DailyClose{}, &MalformedLineError{Line: line, Reason: fmt.Sprintf("got %d fields want %d", len(fields), l.Fields)}
	}
	if need := max(l.Date, l.Close) + 1; len(fields) < need {
		return DailyClose{}, &MalformedLineError{Line: line, Reason: fmt.Sprintf("got %d fields want at least %d", len(fields), need)}
	}

	on, err := date.ParseISO(strings.TrimSpace(fields[l.Date]))
	if err != nil {
		return DailyClose{}, &MalformedLineError{Line: line, Reason: "invalid date", Err: err}
	}
	closeField := strings.TrimSpace(fields[l.Close])
	if closeField == "" {
		return DailyClose{}, &MalformedLineError{Line: line, Reason: "empty close"}
	}
	price, err := decimal.NewFromString(closeField)
	if err != nil {
		return DailyClose{}, &MalformedLineError{Line: line, Reason: "invalid close", Err: err}
	}
	return DailyClose{Date: on, Close: price}, nil
}

// LayoutFromHeader returns the Layout described by a header line like
// "Date,Open,High,Low,Close,Adj Close,Volume".
//
// Column names are matched case insensitively. The separator is ',' unless the
// header contains no comma but a ';' or a tab.
func LayoutFromHeader(header string) (Layout, error) {
	header = strings.TrimPrefix(header, "\ufeff") // byte order mark
	sep := ','
	if !strings.ContainsRune(header, sep) {
		switch {
		case strings.ContainsRune(header, ';'):
			sep = ';'
		case strings.ContainsRune(header, '\t'):
			sep = '\t'
		}
	}
	columns := strings.Split(header, string(sep))
	l := Layout{Separator: sep, Fields: len(columns), Date: -1, Close: -1}
	for i, col := range columns {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "date":
			l.Date = i
		case "close":
			l.Close = i
		}
	}
	if l.Date < 0 || l.Close < 0 {
		return Layout{}, fmt.Errorf("header %q has no %q and %q columns", header, "Date", "Close")
	}
	return l, nil
}
