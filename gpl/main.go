// Command gpl manages a local products ledger: purchases, sales and costs of
// products like vanilla or cloves, with their totals, charts and exports.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/etnz/gplocal/cmd"
	"github.com/etnz/gplocal/config"
	"github.com/google/subcommands"
)

func main() {
	if err := config.LoadEnvFile(os.Getenv("GPL_ENV_FILE")); err != nil {
		log.Fatalf("cannot read env file: %v", err)
	}

	// exits when invoked by the shell to complete the command line.
	cmd.Completion().Complete("gpl")

	commander := subcommands.NewCommander(flag.CommandLine, "gpl")
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	status := commander.Execute(context.Background())
	if err := cmd.Finish(); err != nil {
		log.Printf("warning, %v", err)
	}
	os.Exit(int(status))
}

// known reports whether name is a registered subcommand.
func known(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
