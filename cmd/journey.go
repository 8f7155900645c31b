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

// journeyCmd holds the flags for the 'journey' subcommand.
type journeyCmd struct {
	start   string
	end     string
	shares  string
	amount  string
	drip    bool
	overlay bool
	brief   bool
	rows    int
	json    bool
}

func (*journeyCmd) Name() string     { return "journey" }
func (*journeyCmd) Synopsis() string { return "simulate holding a single asset" }
func (*journeyCmd) Usage() string {
	return `hyt journey [-start <date>] [-end <date>] [-shares <n> | -amount <a>] [-drip] [-overlay] <ticker>

  Simulates holding a ticker, collecting its dividends on their pay date
  or reinvesting them (-drip), and reports the profit, the yield and the
  daily detail of the holding.

  Without -start the journey starts on the first trading day of the ticker,
  without -end it holds until today.
`
}

func (c *journeyCmd) SetFlags(f *flag.FlagSet) {
	c.registerFlags(f)
	f.BoolVar(&c.brief, "brief", false, "Do not print the daily detail")
	f.IntVar(&c.rows, "rows", 0, "Maximum number of daily rows to print, 0 for all")
	f.BoolVar(&c.json, "json", false, "Print the report as JSON")
}

// registerFlags registers the flags describing a journey, shared with 'export'.
func (c *journeyCmd) registerFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "Start date of the journey. See the user manual for supported date formats.")
	f.StringVar(&c.end, "end", "", "End date of the journey (defaults to today)")
	f.StringVar(&c.shares, "shares", "", "Number of shares bought on the start date (defaults to 100)")
	f.StringVar(&c.amount, "amount", "", "Amount invested on the start date, exclusive with -shares")
	f.BoolVar(&c.drip, "drip", false, "Reinvest dividends on their pay date")
	f.BoolVar(&c.overlay, "overlay", false, "Also simulate the underlying asset with the same capital")
}

// request builds the journey request of ticker from the flags.
func (c *journeyCmd) request(ticker, currency string) (journey.JourneyRequest, error) {
	r, err := parseRange(c.start, c.end)
	if err != nil {
		return journey.JourneyRequest{}, err
	}
	req := journey.JourneyRequest{Ticker: ticker, Range: r, DRIP: c.drip, Overlay: c.overlay}
	switch {
	case c.shares != "" && c.amount != "":
		return req, fmt.Errorf("-shares and -amount are exclusive")
	case c.amount != "":
		d, err := parseDecimal("amount", c.amount)
		if err != nil {
			return req, err
		}
		req.Investment = journey.ByAmount(journey.M(d, currency))
	case c.shares != "":
		d, err := parseDecimal("shares", c.shares)
		if err != nil {
			return req, err
		}
		req.Investment = journey.ByShares(journey.Q(d))
	default:
		req.Investment = journey.ByShares(journey.Q(100))
	}
	return req, nil
}

// run loads the market of the single ticker argument and simulates its journey.
func (c *journeyCmd) run(ctx context.Context, f *flag.FlagSet) (*journey.Report, subcommands.ExitStatus) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker is required.")
		return nil, subcommands.ExitUsageError
	}
	cfg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	req, err := c.request(f.Arg(0), cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	m, err := openMarket(ctx, cfg, []string{req.Ticker})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	report, err := m.Journey(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error simulating %s: %v\n", req.Ticker, err)
		return nil, subcommands.ExitFailure
	}
	return report, subcommands.ExitSuccess
}

func (c *journeyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, status := c.run(ctx, f)
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderJourney(report, renderer.JourneyRenderOptions{SkipDetail: c.brief, MaxRows: c.rows}))
	return subcommands.ExitSuccess
}
