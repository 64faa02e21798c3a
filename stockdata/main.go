// Command stockdata prints the monthly close prices of daily stock price series.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"

	"github.com/etnz/stockdata/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"v":             predict.Nothing,
		"eodhd-api-key": predict.Something,
	},
	Sub: map[string]*complete.Command{
		"monthly": {
			Flags: map[string]complete.Predictor{
				"workers":        predict.Something,
				"chunk":          predict.Something,
				"skip-malformed": predict.Nothing,
				"no-header":      predict.Nothing,
				"format":         predict.Set{"md", "csv", "jsonl"},
				"json-items":     predict.Something,
				"json-date":      predict.Something,
				"json-close":     predict.Something,
				"json-dates":     predict.Something,
				"json-closes":    predict.Something,
				"title":          predict.Something,
			},
			Args: predict.Files("*"),
		},
		"eodhd": {
			Sub: map[string]*complete.Command{
				"monthly": {
					Flags: map[string]complete.Predictor{
						"ticker":  predict.Something,
						"from":    predict.Something,
						"to":      predict.Something,
						"cache":   predict.Set{"day", "week", "month"},
						"format":  predict.Set{"md", "csv", "jsonl"},
						"workers": predict.Something,
					},
				},
				"search": {},
			},
		},
		"topic": {
			Args: predict.Set{"*", "aggregation", "eodhd", "input"},
		},
	},
}

func main() {
	completion.Complete("stockdata")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	setup(*cmd.Verbose, os.Stderr)

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// setup directs the log to stderr when verbose, then loads the .env file of the
// working directory, if any, before any command reads the environment.
func setup(verbose bool, stderr io.Writer) {
	if verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("cannot load .env: %v", err)
	}
}

// registered reports whether name is a subcommand of c.
func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		if sub.Name() == name {
			found = true
		}
	})
	return found
}
