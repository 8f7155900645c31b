package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/journey"
	"github.com/etnz/journey/renderer"
	"github.com/google/subcommands"
)

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	start   string
	end     string
	amount  string
	drip    bool
	overlay bool
	json    bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "rank tickers head to head" }
func (*compareCmd) Usage() string {
	return `hyt compare -start <date> [-end <date>] [-amount <a>] [-drip] [-overlay] <ticker>...

  Invests the same amount in every ticker on its first trading day after
  -start and ranks them by total return, dividends included.

  Tickers without any price in the period are left out of the leaderboard.
  With -overlay, the underlying assets of the tickers are ranked too.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	c.registerFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the leaderboard as JSON")
}

// registerFlags registers the flags describing a comparison, shared with 'export'.
func (c *compareCmd) registerFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "Start date of the comparison (required)")
	f.StringVar(&c.end, "end", "", "End date of the comparison (defaults to today)")
	f.StringVar(&c.amount, "amount", "10000", "Amount invested in each ticker")
	f.BoolVar(&c.drip, "drip", false, "Reinvest dividends on their pay date")
	f.BoolVar(&c.overlay, "overlay", false, "Also rank the underlying assets")
}

func (c *compareCmd) request(tickers []string, currency string) (journey.CompareRequest, error) {
	if c.start == "" {
		return journey.CompareRequest{}, fmt.Errorf("-start is required")
	}
	r, err := parseRange(c.start, c.end)
	if err != nil {
		return journey.CompareRequest{}, err
	}
	d, err := parseDecimal("amount", c.amount)
	if err != nil {
		return journey.CompareRequest{}, err
	}
	return journey.CompareRequest{
		Tickers: tickers,
		Range:   r,
		Amount:  journey.M(d, currency),
		DRIP:    c.drip,
		Overlay: c.overlay,
	}, nil
}

// run loads the market of the ticker arguments and ranks them.
func (c *compareCmd) run(ctx context.Context, f *flag.FlagSet) (*journey.Leaderboard, subcommands.ExitStatus) {
	if f.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", errNoTicker)
		return nil, subcommands.ExitUsageError
	}
	cfg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	req, err := c.request(f.Args(), cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	m, err := openMarket(ctx, cfg, req.Tickers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	lb, err := m.Compare(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing tickers: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return lb, subcommands.ExitSuccess
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lb, status := c.run(ctx, f)
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lb); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding leaderboard: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderLeaderboard(lb))
	return subcommands.ExitSuccess
}
