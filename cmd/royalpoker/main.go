package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play hot-seat Texas Hold'em in the terminal"`
	Odds     OddsCmd          `cmd:"" help:"Estimate win probabilities for known hands"`
	Simulate SimulateCmd      `cmd:"" help:"Play hands between bots and report chip totals"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("royalpoker"),
		kong.Description("Texas Hold'em with Monte Carlo win probabilities"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
