package stockdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockdata/date"
	"github.com/shopspring/decimal"
)

// JSONQuery locates daily closes in a JSON document.
//
// With Items set, Items selects one object per daily close, and Date and Close
// are evaluated on each of those objects. Otherwise Dates and Closes select
// parallel arrays, the i-th date going with the i-th close.
type JSONQuery struct {
	Items string
	Date  string
	Close string

	Dates  string
	Closes string
}

// EODQuery reads an array of objects with "date" and "close" properties, e.g.
//
//	[{"date": "2001-08-31", "open": 113.9, "close": 114.15}, ...]
var EODQuery = JSONQuery{Items: "$[*]", Date: "$.date", Close: "$.close"}

// DecodeJSON decodes daily closes from a JSON document.
//
// Numbers are never converted to floats, so a close written 114.15 is read
// exactly. Invalid values are reported as *MalformedLineError whose Number is
// the 1-based position of the object, or of the value.
func DecodeJSON(r io.Reader, q JSONQuery) ([]DailyClose, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode json document: %w", err)
	}
	if q.Items != "" {
		return decodeItems(doc, q)
	}
	return decodeArrays(doc, q)
}

// decodeItems reads the date and the close of each object selected by q.Items.
func decodeItems(doc any, q JSONQuery) ([]DailyClose, error) {
	items, err := selectAll(q.Items, doc)
	if err != nil {
		return nil, err
	}
	result := make([]DailyClose, 0, len(items))
	for i, item := range items {
		jdate, derr := jsonpath.Get(q.Date, item)
		jclose, cerr := jsonpath.Get(q.Close, item)
		if derr != nil || cerr != nil {
			raw, _ := json.Marshal(item)
			return nil, &MalformedLineError{Line: string(raw), Number: i + 1, Reason: "missing date or close", Err: errors.Join(derr, cerr)}
		}
		c, mle := jsonClose(jdate, jclose)
		if mle != nil {
			mle.Number = i + 1
			return nil, mle
		}
		result = append(result, c)
	}
	return result, nil
}

// decodeArrays pairs the values selected by q.Dates and q.Closes.
func decodeArrays(doc any, q JSONQuery) ([]DailyClose, error) {
	dates, err := selectAll(q.Dates, doc)
	if err != nil {
		return nil, err
	}
	closes, err := selectAll(q.Closes, doc)
	if err != nil {
		return nil, err
	}
	if len(dates) != len(closes) {
		n := min(len(dates), len(closes))
		return nil, &MalformedLineError{Number: n + 1, Reason: fmt.Sprintf("json query selected %d dates but %d closes", len(dates), len(closes))}
	}

	result := make([]DailyClose, 0, len(dates))
	for i := range dates {
		c, mle := jsonClose(dates[i], closes[i])
		if mle != nil {
			mle.Number = i + 1
			return nil, mle
		}
		result = append(result, c)
	}
	return result, nil
}

// selectAll evaluates path and always returns a list of values.
func selectAll(path string, doc any) ([]any, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate json path %q: %w", path, err)
	}
	// jsonpath returns either a list of answers or a single answer.
	if jlist, ok := jval.([]any); ok {
		return jlist, nil
	}
	return []any{jval}, nil
}

func jsonClose(jdate, jclose any) (DailyClose, *MalformedLineError) {
	line := fmt.Sprintf("%v,%v", jdate, jclose)

	str, ok := jdate.(string)
	if !ok {
		return DailyClose{}, &MalformedLineError{Line: line, Reason: fmt.Sprintf("date is a %T not a string", jdate)}
	}
	on, err := date.ParseISO(str)
	if err != nil {
		return DailyClose{}, &MalformedLineError{Line: line, Reason: "invalid date", Err: err}
	}

	var price decimal.Decimal
	switch v := jclose.(type) {
	case json.Number:
		price, err = decimal.NewFromString(v.String())
	case string:
		// some APIs quote their numbers
		price, err = decimal.NewFromString(v)
	default:
		return DailyClose{}, &MalformedLineError{Line: line, Reason: fmt.Sprintf("close is a %T not a number", jclose)}
	}
	if err != nil {
		return DailyClose{}, &MalformedLineError{Line: line, Reason: "invalid close", Err: err}
	}
	return DailyClose{Date: on, Close: price}, nil
}
