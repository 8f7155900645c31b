package cmd

import (
	"flag"

	"github.com/etnz/journey/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application, built from
// the flags of the global flag set and of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, e := range commands() {
		f := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(f)
		root.Sub[e.cmd.Name()] = &complete.Command{Flags: flagPredictors(f)}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "readme"))
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(names())}
	return root
}

func names() []string {
	var n []string
	for _, e := range commands() {
		n = append(n, e.cmd.Name())
	}
	return n
}

type boolFlag interface{ IsBoolFlag() bool }

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch {
		case fl.Name == "o":
			flags[fl.Name] = predict.Or(predict.Files("*.xlsx"), predict.Files("*.pdf"))
		case fl.Name == "config":
			flags[fl.Name] = predict.Files("*.yaml")
		default:
			if b, ok := fl.Value.(boolFlag); ok && b.IsBoolFlag() {
				flags[fl.Name] = predict.Nothing
				return
			}
			flags[fl.Name] = predict.Something
		}
	})
	return flags
}
