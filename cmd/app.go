// Package cmd implements the stockdata command line.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockdata"
	"github.com/etnz/stockdata/renderer"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&monthlyCmd{}, "prices")
	c.Register(&eodhdCmd{}, "prices")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Verbose enables logging on stderr.
var Verbose = flag.Bool("v", false, "verbose output, log skipped lines and http requests on stderr")
var eodhdAPIKeyFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+EnvEODHDAPIKey+" environment variable. You can get one at https://eodhd.com/")

// EnvEODHDAPIKey is the environment variable holding the EODHD API key.
const EnvEODHDAPIKey = "EODHD_API_KEY"

// eodhdAPIKey retrieves the EODHD API key from the command-line flag or the environment variable.
// It prioritizes the flag over the environment variable.
func eodhdAPIKey() string {
	if *eodhdAPIKeyFlag == "" {
		return os.Getenv(EnvEODHDAPIKey)
	}
	return *eodhdAPIKeyFlag
}

// printMarkdown writes md to w, rendered for the terminal when w is one.
func printMarkdown(w io.Writer, md string) {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out, err := glamour.Render(md, "dark")
		if err != nil {
			log.Printf("cannot render markdown, printing it raw: %v", err)
		} else {
			md = out
		}
	}
	fmt.Fprint(w, md)
}

// writeCloses writes closes to w in the given format.
func writeCloses(w io.Writer, format renderer.Format, title string, closes []stockdata.DailyClose) error {
	switch format {
	case renderer.FormatCSV:
		return renderer.CSV(w, closes)
	case renderer.FormatJSONL:
		return renderer.JSONL(w, closes)
	default:
		printMarkdown(w, renderer.Markdown(title, closes))
		return nil
	}
}

// stdout is where commands write their results. Tests replace it.
var stdout io.Writer = os.Stdout
