// Command hyt simulates holding dividend paying assets.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/journey/cmd"
	"github.com/google/subcommands"
)

func main() {
	// when invoked by the shell to complete the command line, this prints the completions and exits.
	cmd.Completion().Complete("hyt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
