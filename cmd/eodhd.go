package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/etnz/stockdata"
	"github.com/etnz/stockdata/date"
	"github.com/etnz/stockdata/eodhd"
	"github.com/etnz/stockdata/renderer"
	"github.com/google/subcommands"
)

// eodhdCmd is the top-level command for EODHD-related operations.
type eodhdCmd struct{}

func (*eodhdCmd) Name() string     { return "eodhd" }
func (*eodhdCmd) Synopsis() string { return "EODHD provider specific commands" }
func (*eodhdCmd) Usage() string {
	return `stockdata eodhd <subcommand> <options>

EODHD provider specific commands.
`
}
func (c *eodhdCmd) SetFlags(f *flag.FlagSet) {}

func (c *eodhdCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "eodhd")
	commander.Register(&eodhdMonthlyCmd{}, "")
	commander.Register(&eodhdSearchCmd{}, "")
	return commander.Execute(ctx, args...)
}

// newEODHDClient returns the client used by eodhd subcommands.
//
// Without an API key, the public demo key is used, it only serves a few tickers.
func newEODHDClient(cache date.Period) *eodhd.Client {
	key := eodhdAPIKey()
	if key == "" {
		log.Printf("%s is not set, using the demo key", EnvEODHDAPIKey)
		key = eodhd.DemoKey
	}
	c := eodhd.NewClient(key, cache)
	if testBaseURL != "" {
		c.BaseURL = testBaseURL
	}
	return c
}

// testBaseURL overrides the EODHD server in tests.
var testBaseURL string

// eodhdMonthlyCmd implements the "eodhd monthly" command.
type eodhdMonthlyCmd struct {
	ticker  string
	from    string
	to      string
	cache   string
	format  string
	workers int
}

func (*eodhdMonthlyCmd) Name() string { return "monthly" }
func (*eodhdMonthlyCmd) Synopsis() string {
	return "display the monthly closes of a ticker from EODHD"
}
func (*eodhdMonthlyCmd) Usage() string {
	return `stockdata eodhd monthly -ticker <SYMBOL.EXCHANGE> [-from <date>] [-to <date>] [-format md|csv|jsonl]

  Fetches the end of day prices of a ticker from eodhd.com and prints the close
  of the last trading day of each month.

  Requires the EODHD_API_KEY environment variable to be set or passed as a flag,
  otherwise the demo key is used.
`
}

func (c *eodhdMonthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "EODHD ticker, e.g. MCD.US")
	f.StringVar(&c.from, "from", "", "first day of the series (defaults to the first available)")
	f.StringVar(&c.to, "to", "", "last day of the series (defaults to the last available)")
	f.StringVar(&c.cache, "cache", "day", "how long responses are cached (day, week, month)")
	f.StringVar(&c.format, "format", "md", "output format (md, csv, jsonl)")
	f.IntVar(&c.workers, "workers", 0, "number of aggregation workers (defaults to the number of CPUs)")
}

func (c *eodhdMonthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required.")
		return subcommands.ExitUsageError
	}
	format, err := renderer.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cache, err := date.ParsePeriod(c.cache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -cache: %v\n", err)
		return subcommands.ExitUsageError
	}
	from, err := parseOptionalDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -from: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := parseOptionalDate(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -to: %v\n", err)
		return subcommands.ExitUsageError
	}

	daily, err := newEODHDClient(cache).DailyCloses(ctx, c.ticker, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch from eodhd.com: %v\n", err)
		return subcommands.ExitFailure
	}
	closes := stockdata.MonthlyClosesOf(daily, c.workers)
	stockdata.SortByDate(closes)

	if err := writeCloses(stdout, format, "Monthly Closes of "+c.ticker, closes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseOptionalDate parses s, the empty string being the zero date.
func parseOptionalDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// eodhdSearchCmd implements the "eodhd search" command.
type eodhdSearchCmd struct{}

func (*eodhdSearchCmd) Name() string     { return "search" }
func (*eodhdSearchCmd) Synopsis() string { return "searches for tickers on EODHD" }
func (*eodhdSearchCmd) Usage() string {
	return `stockdata eodhd search <search term>

  Searches for securities via EOD Historical Data API and prints ready-to-use
  'stockdata eodhd monthly' commands for the results.
`
}

func (c *eodhdSearchCmd) SetFlags(f *flag.FlagSet) {}

func (c *eodhdSearchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	searchTerm := strings.Join(f.Args(), " ")

	results, err := newEODHDClient(date.Daily).Search(ctx, searchTerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching securities: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(results) == 0 {
		fmt.Fprintf(stdout, "No results found for '%s'.\n", searchTerm)
		return subcommands.ExitSuccess
	}

	fmt.Fprintf(stdout, "Found %d results for '%s':\n\n", len(results), searchTerm)
	for _, item := range results {
		fmt.Fprintf(stdout, "➡️   Name       : %s (%s)\n", item.Name, item.Code)
		fmt.Fprintf(stdout, "    Type        : %s, Country: %s, Currency: %s\n", item.Type, item.Country, item.Currency)
		fmt.Fprintf(stdout, "    ISIN        : %s\n", item.ISIN)
		fmt.Fprintf(stdout, "    Prev. Close : %s on %s\n", stockdata.FormatClose(item.PreviousClose), item.PreviousCloseDate)
		fmt.Fprintf(stdout, "    stockdata eodhd monthly -ticker %s\n\n", item.Ticker())
	}
	return subcommands.ExitSuccess
}
