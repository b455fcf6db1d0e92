package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `gpl topic [<topic>...]

Show documentation for the given topics, or the list of topics. Use * for all
of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Readme}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	// documentation does not need the store: it follows the terminal.
	printMarkdown(doc, gplocal.DarkModeSystem)

	return subcommands.ExitSuccess
}
