// Command bookctl prints read-only reports straight from the configured store.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&dashboardCmd{}, "reports")
	commander.Register(&reportCmd{}, "reports")
	commander.Register(&movementsCmd{}, "inventory")
	commander.Register(&lowStockCmd{}, "inventory")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
