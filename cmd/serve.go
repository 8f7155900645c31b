package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/journey/server"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve journeys and leaderboards as a JSON API" }
func (*serveCmd) Usage() string {
	return `hyt serve [-addr <host:port>] [<ticker>...]

  Loads the market of the tickers, every ticker of the master sheet by
  default, and serves it as a JSON API until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address (defaults to server.addr of the configuration)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.addr == "" {
		c.addr = cfg.Server.Addr
	}

	m, err := openMarket(ctx, cfg, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Int("tickers", len(m.Tickers())).Msg("market loaded")

	srv := server.New(c.addr, m, log.Logger)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	case <-quit:
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
