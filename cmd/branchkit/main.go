package main

import (
	"git.home.luguber.info/inful/branchkit/cmd/branchkit/commands"
	"git.home.luguber.info/inful/branchkit/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("branchkit"),
		kong.Description("Set up and maintain the branchless workflow in a Git repository"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
