// Package cmd implements the hyt command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/journey"
	"github.com/etnz/journey/config"
	"github.com/etnz/journey/date"
	"github.com/etnz/journey/eodhd"
	"github.com/etnz/journey/sheet"
	"github.com/etnz/journey/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type command struct {
	group string
	cmd   subcommands.Command
}

// commands lists the subcommands by group.
func commands() []command {
	return []command{
		{"simulation", &journeyCmd{}},
		{"simulation", &compareCmd{}},
		{"simulation", &alignCmd{}},
		{"output", &exportCmd{}},
		{"output", &serveCmd{}},
		{"data", &searchCmd{}},
		{"help", &topicCmd{}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands() {
		c.Register(e.cmd, e.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a configuration file. Defaults to hyt.yaml in the current directory or in $HOME/.config/hyt")

// Verbose enables debug logs regardless of the configured level.
var Verbose = flag.Bool("v", false, "verbose output")

// errNoTicker is reported when a command needs at least one ticker.
var errNoTicker = errors.New("at least one ticker is required")

// setup loads the configuration and configures the global logger.
func setup() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadFromFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.Log)
	return cfg, nil
}

func setupLogger(c config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	if *Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}

// provider returns the market data provider selected in the configuration.
func provider(cfg *config.Config) (journey.MarketData, error) {
	since, err := cfg.Since()
	if err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case "eodhd":
		if cfg.EODHD.APIKey == "" {
			return nil, fmt.Errorf("EODHD API key is not set. Use eodhd.api_key in the config file or %s_EODHD_API_KEY environment variable", config.EnvPrefix)
		}
		return eodhd.New(cfg.EODHD.APIKey, cfg.Currency,
			eodhd.WithBaseURL(cfg.EODHD.BaseURL),
			eodhd.WithExchange(cfg.EODHD.Exchange),
			eodhd.WithHistoryStart(since),
		), nil
	case "yahoo":
		return yahoo.New(cfg.Currency,
			yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
			yahoo.WithRate(cfg.Yahoo.Rate),
			yahoo.WithHistoryStart(since),
		), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// openMarket loads the market of the given tickers.
//
// With a master sheet configured, tickers must be listed in it and no ticker
// means every ticker of the sheet. Without one, the market holds exactly the
// given tickers, without metadata.
func openMarket(ctx context.Context, cfg *config.Config, tickers []string) (*journey.Market, error) {
	var metas []journey.Metadata
	if cfg.Master != "" {
		all, err := sheet.LoadMaster(ctx, cfg.Master)
		if err != nil {
			return nil, fmt.Errorf("loading master sheet: %w", err)
		}
		metas = selectTickers(all, tickers)
	} else {
		for _, t := range tickers {
			metas = append(metas, journey.NewMetadata(t, "", "", ""))
		}
	}
	if len(metas) == 0 && len(tickers) == 0 {
		return nil, errNoTicker
	}

	p, err := provider(cfg)
	if err != nil {
		return nil, err
	}
	src := journey.Sources{Prices: p, Dividends: p}
	if cfg.Ledger != "" {
		ledger, err := sheet.LoadLedger(ctx, cfg.Ledger)
		if err != nil {
			return nil, fmt.Errorf("loading pay date ledger: %w", err)
		}
		log.Debug().Int("tickers", ledger.Tickers()).Msg("pay date ledger loaded")
		src.Ledger = ledger
	}

	since, err := cfg.Since()
	if err != nil {
		return nil, err
	}
	log.Debug().Int("tickers", len(metas)).Str("provider", cfg.Provider).Msg("loading market")
	return journey.Load(ctx, src, metas, date.Between(since, date.Today()), cfg.Currency, cfg.Concurrency)
}

// selectTickers keeps the metadata of the requested tickers, all of them when none is requested.
// Tickers missing from the master are left out, the market then reports them as unknown.
func selectTickers(all []journey.Metadata, tickers []string) []journey.Metadata {
	if len(tickers) == 0 {
		return all
	}
	wanted := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		wanted[journey.NormalizeTicker(t)] = true
	}
	var metas []journey.Metadata
	for _, m := range all {
		if wanted[m.Ticker] {
			metas = append(metas, m)
		}
	}
	return metas
}

// parseRange parses optional start and end dates.
func parseRange(start, end string) (date.Range, error) {
	var r date.Range
	var err error
	if start != "" {
		if r.From, err = date.Parse(start); err != nil {
			return r, fmt.Errorf("parsing start date: %w", err)
		}
	}
	if end != "" {
		if r.To, err = date.Parse(end); err != nil {
			return r, fmt.Errorf("parsing end date: %w", err)
		}
	}
	return r, nil
}

// parseDecimal parses a positive decimal flag value.
func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return d, fmt.Errorf("invalid -%s %q: %w", name, value, err)
	}
	if d.IsNegative() {
		return d, fmt.Errorf("invalid -%s %q: must not be negative", name, value)
	}
	return d, nil
}

// printMarkdown renders md to the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	log.Debug().Err(err).Msg("cannot render markdown, printing raw")
	fmt.Println(md)
}
