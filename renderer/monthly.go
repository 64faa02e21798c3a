// Package renderer formats monthly closes for humans and other programs.
package renderer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/stockdata"
	"github.com/etnz/stockdata/date"
	md "github.com/nao1215/markdown"
)

// Markdown renders closes as a markdown table, in the order given.
func Markdown(title string, closes []stockdata.DailyClose) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	if len(closes) == 0 {
		doc.PlainText("No prices.")
		return doc.String()
	}

	doc.H2(fmt.Sprintf("%d months from %s to %s", len(closes), closes[0].Month(), closes[len(closes)-1].Month()))
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Month", "Last Day", "Close", "Days to Month End"},
		Rows:   [][]string{},
	}
	for _, c := range closes {
		table.Rows = append(table.Rows, []string{
			c.Month().String(),
			c.Date.String(),
			stockdata.FormatClose(c.Close),
			strconv.Itoa(daysToMonthEnd(c.Date)),
		})
	}
	doc.Table(table)
	return doc.String()
}

// daysToMonthEnd is the number of calendar days between d and the end of its month.
func daysToMonthEnd(d date.Date) int { return d.EndOf(date.Monthly).Day() - d.Day() }

// CSV writes closes as "Date,Close" lines, with a header.
func CSV(w io.Writer, closes []stockdata.DailyClose) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Close"}); err != nil {
		return err
	}
	for _, c := range closes {
		if err := cw.Write([]string{c.Date.String(), stockdata.FormatClose(c.Close)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONL writes one json object per close, e.g. {"date":"2001-08-31","close":114.15}.
//
// Closes are written as json numbers with their original decimals.
func JSONL(w io.Writer, closes []stockdata.DailyClose) error {
	type jclose struct {
		Date  date.Date       `json:"date"`
		Close json.RawMessage `json:"close"`
	}
	enc := json.NewEncoder(w)
	for _, c := range closes {
		if err := enc.Encode(jclose{Date: c.Date, Close: json.RawMessage(stockdata.FormatClose(c.Close))}); err != nil {
			return fmt.Errorf("cannot write close of %s: %w", c.Date, err)
		}
	}
	return nil
}

// Format is an output format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
	FormatJSONL    Format = "jsonl"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatMarkdown, FormatCSV, FormatJSONL:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q, want one of md, csv, jsonl", s)
	}
}
