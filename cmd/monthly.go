package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockdata"
	"github.com/etnz/stockdata/renderer"
	"github.com/google/subcommands"
)

type monthlyCmd struct {
	workers       int
	chunkSize     int
	skipMalformed bool
	noHeader      bool
	format        string
	jsonItems     string
	jsonDate      string
	jsonClose     string
	jsonDates     string
	jsonCloses    string
	title         string
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the close price of the last trading day of each month" }
func (*monthlyCmd) Usage() string {
	return `stockdata monthly [-workers <n>] [-skip-malformed] [-no-header] [-format md|csv|jsonl] [<file>...]

  Reads daily prices from files (or stdin when there is none, or for "-") and
  prints the close of the last trading day of each month, sorted by date.

  CSV files have a "Date,Close" header by default, other columns are ignored
  (e.g. "Date,Open,High,Low,Close,Adj Close,Volume"). Files ending with
  ".json" are decoded with JSONPath selectors: -json-items selects one object
  per day, -json-date and -json-close are evaluated on each of them. For
  documents made of parallel arrays, use -json-dates and -json-closes instead.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.workers, "workers", 0, "number of aggregation workers (defaults to the number of CPUs)")
	f.IntVar(&c.chunkSize, "chunk", stockdata.DefaultChunkSize, "number of lines dispatched to a worker at once")
	f.BoolVar(&c.skipMalformed, "skip-malformed", false, "skip and log malformed lines instead of failing")
	f.BoolVar(&c.noHeader, "no-header", false, "the first line is a price, not a header")
	f.StringVar(&c.format, "format", "md", "output format (md, csv, jsonl)")
	f.StringVar(&c.jsonItems, "json-items", stockdata.EODQuery.Items, "JSONPath selecting the daily objects of a json file")
	f.StringVar(&c.jsonDate, "json-date", stockdata.EODQuery.Date, "JSONPath of the date in a daily object")
	f.StringVar(&c.jsonClose, "json-close", stockdata.EODQuery.Close, "JSONPath of the close in a daily object")
	f.StringVar(&c.jsonDates, "json-dates", "", "JSONPath selecting all the dates of a json file, overrides -json-items")
	f.StringVar(&c.jsonCloses, "json-closes", "", "JSONPath selecting all the closes of a json file, with -json-dates")
	f.StringVar(&c.title, "title", "Monthly Closes", "title of the markdown report")
}

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := renderer.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.workers < 0 {
		fmt.Fprintf(os.Stderr, "Error: -workers must be positive, got %d\n", c.workers)
		return subcommands.ExitUsageError
	}

	closes, err := c.aggregate(ctx, os.Stdin, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeCloses(stdout, format, c.title, closes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// aggregate reads all the named files as a single series and returns its monthly closes sorted by date.
func (c *monthlyCmd) aggregate(ctx context.Context, stdin io.Reader, names []string) ([]stockdata.DailyClose, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	// readErr is written by the producer goroutine, and read once it is done.
	var readErr error
	seq := func(yield func(stockdata.DailyClose) bool) {
		for _, name := range names {
			var more bool
			more, readErr = c.read(name, stdin, yield)
			if !more {
				return
			}
		}
	}

	closes, err := stockdata.ParallelMonthlyCloses(ctx, seq, stockdata.ParallelOptions{Workers: c.workers, ChunkSize: c.chunkSize})
	if readErr != nil {
		return nil, readErr
	}
	if err != nil {
		return nil, err
	}
	stockdata.SortByDate(closes)
	return closes, nil
}

// read yields the closes of the file name, "-" being stdin.
// It returns false if the iteration must stop.
func (c *monthlyCmd) read(name string, stdin io.Reader, yield func(stockdata.DailyClose) bool) (bool, error) {
	in := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return false, err
		}
		defer f.Close()
		in = f
	}

	var seq iter.Seq[stockdata.DailyClose]
	var check func() error
	if strings.EqualFold(filepath.Ext(name), ".json") {
		closes, err := stockdata.DecodeJSON(in, c.jsonQuery())
		if err != nil {
			return false, fmt.Errorf("cannot decode %s: %w", name, err)
		}
		seq = func(yield func(stockdata.DailyClose) bool) {
			for _, dc := range closes {
				if !yield(dc) {
					return
				}
			}
		}
		check = func() error { return nil }
	} else {
		r := stockdata.NewReader(in, stockdata.WithHeader(!c.noHeader), stockdata.SkipMalformed(c.skipMalformed))
		seq = r.All()
		check = func() error {
			if n := r.SkippedCount(); n > 0 {
				log.Printf("%s: skipped %d malformed lines", name, n)
			}
			return r.Err()
		}
	}

	for dc := range seq {
		if !yield(dc) {
			return false, nil
		}
	}
	if err := check(); err != nil {
		return false, fmt.Errorf("cannot read %s: %w", name, err)
	}
	return true, nil
}

// jsonQuery returns the query of json files, parallel arrays when -json-dates is set.
func (c *monthlyCmd) jsonQuery() stockdata.JSONQuery {
	if c.jsonDates != "" {
		return stockdata.JSONQuery{Dates: c.jsonDates, Closes: c.jsonCloses}
	}
	return stockdata.JSONQuery{Items: c.jsonItems, Date: c.jsonDate, Close: c.jsonClose}
}
