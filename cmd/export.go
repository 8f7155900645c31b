package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/journey/export"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output  string
	compare bool
	journey journeyCmd
	board   compareCmd
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a journey or a leaderboard to xlsx or pdf" }
func (*exportCmd) Usage() string {
	return `hyt export -o <file.xlsx|file.pdf> [journey flags] <ticker>
hyt export -o <file.xlsx|file.pdf> -compare -start <date> [compare flags] <ticker>...

  Writes a single asset journey, or with -compare a leaderboard, to a
  spreadsheet or a PDF document. The format follows the file extension.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, .xlsx or .pdf (required)")
	f.BoolVar(&c.compare, "compare", false, "Export a leaderboard of the tickers instead of a journey")
	c.journey.registerFlags(f)
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required.")
		return subcommands.ExitUsageError
	}
	if !c.compare {
		report, status := c.journey.run(ctx, f)
		if status != subcommands.ExitSuccess {
			return status
		}
		if err := export.WriteJourney(c.output, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Journey of %s written to %s\n", report.Meta.Ticker, c.output)
		return subcommands.ExitSuccess
	}

	if c.journey.shares != "" {
		fmt.Fprintln(os.Stderr, "Error: -shares is not supported with -compare.")
		return subcommands.ExitUsageError
	}
	c.board = compareCmd{
		start:   c.journey.start,
		end:     c.journey.end,
		amount:  c.journey.amount,
		drip:    c.journey.drip,
		overlay: c.journey.overlay,
	}
	if c.board.amount == "" {
		c.board.amount = "10000"
	}
	lb, status := c.board.run(ctx, f)
	if status != subcommands.ExitSuccess {
		return status
	}
	if err := export.WriteLeaderboard(c.output, lb); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Leaderboard of %d tickers written to %s\n", len(lb.Standings), c.output)
	return subcommands.ExitSuccess
}
