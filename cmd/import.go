package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "merge a JSON backup into the document" }
func (*importCmd) Usage() string {
	return `gpl import <file.json>|-

  Merges a JSON backup, as written by gpl export, into the document. Use - to
  read it from the standard input.

  Products and rows are matched by id: those already present are kept as they
  are, the others are added, and every section is sorted by date. Nothing is
  changed when the file is not a valid backup.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one file to import is required.")
		return subcommands.ExitUsageError
	}

	var r io.Reader = stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return exitStatus("opening import file", err)
		}
		defer file.Close()
		r = file
	}

	store, err := OpenStore(ctx)
	if err != nil {
		return exitStatus("opening store", err)
	}
	defer store.Close()

	if _, err := store.Import(ctx, r); err != nil {
		fmt.Fprintf(stdout, "Import échoué: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "Import réussi et fusionné.")
	return subcommands.ExitSuccess
}
