package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/journey/config"
	"github.com/etnz/journey/eodhd"
	"github.com/google/subcommands"
)

// searchCmd implements the "search" command.
type searchCmd struct {
	apiKey string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search tickers on EODHD" }
func (*searchCmd) Usage() string {
	return `hyt search <search term>

  Searches securities by name, ticker or ISIN via EOD Historical Data API
  and prints the tickers to use with the other commands.

  Requires an EODHD API key, in the configuration or passed as a flag.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKey, "eodhd-api-key", "", "EODHD API key. This flag takes precedence over the configuration. You can get one at https://eodhd.com/")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	term := strings.Join(f.Args(), " ")

	cfg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.apiKey == "" {
		c.apiKey = cfg.EODHD.APIKey
	}
	if c.apiKey == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or %s_EODHD_API_KEY environment variable\n", config.EnvPrefix)
		return subcommands.ExitFailure
	}

	client := eodhd.New(c.apiKey, cfg.Currency, eodhd.WithBaseURL(cfg.EODHD.BaseURL))
	results, err := client.Search(ctx, term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching securities: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(results) == 0 {
		fmt.Printf("No results found for '%s'.\n", term)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(results), term)
	for _, item := range results {
		fmt.Printf("➡️   Name       : %s (%s)\n", item.Name, item.Ticker())
		fmt.Printf("    Type        : %s, Country: %s, Currency: %s\n", item.Type, item.Country, item.Currency)
		if item.ISIN != "" {
			fmt.Printf("    ISIN        : %s\n", item.ISIN)
		}
		fmt.Printf("    Prev. Close : %.2f on %s\n", item.PreviousClose, item.PreviousCloseDate)
		fmt.Printf("    $ hyt journey %s\n\n", item.Ticker())
	}
	return subcommands.ExitSuccess
}
