package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/journey"
	"github.com/etnz/journey/renderer"
	"github.com/google/subcommands"
)

type alignCmd struct{}

func (*alignCmd) Name() string     { return "align" }
func (*alignCmd) Synopsis() string { return "show the dividends of a ticker on their pay date" }
func (*alignCmd) Usage() string {
	return `hyt align <ticker>

  Pairs the dividend amounts of a ticker, by ex-date, with the pay dates
  recorded in the ledger. Dividends beyond the ledger are paid on their
  ex-date.
`
}

func (c *alignCmd) SetFlags(f *flag.FlagSet) {}

func (c *alignCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker is required.")
		return subcommands.ExitUsageError
	}
	cfg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ticker := journey.NormalizeTicker(f.Arg(0))
	m, err := openMarket(ctx, cfg, []string{ticker})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}
	sec := m.Get(ticker)
	if sec == nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", ticker, journey.ErrUnknownTicker)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderDividends(sec))
	return subcommands.ExitSuccess
}
