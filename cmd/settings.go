package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/gplocal"
	"github.com/google/subcommands"
)

type settingsCmd struct {
	darkMode string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change the settings" }
func (*settingsCmd) Usage() string {
	return `gpl settings [-dark-mode system|light|dark]

  Without flags, prints the settings. With -dark-mode, changes the color scheme
  used to display markdown in the terminal: system follows the terminal
  background, light and dark force it.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.darkMode, "dark-mode", "", "Color scheme: system, light or dark.")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	load := loadDocument
	if c.darkMode != "" {
		load = loadForUpdate
	}
	store, doc, status := load(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	if c.darkMode != "" {
		var err error
		if doc, err = doc.SetDarkMode(gplocal.DarkMode(c.darkMode)); err != nil {
			return exitStatus("parsing -dark-mode", fmt.Errorf("%w: %w", errUsage, err))
		}
		if status := saveDocument(ctx, store, doc); status != subcommands.ExitSuccess {
			return status
		}
	}
	mode := doc.Settings.DarkMode
	if mode == "" {
		mode = gplocal.DarkModeSystem
	}
	fmt.Fprintf(stdout, "dark-mode: %s\n", mode)
	return subcommands.ExitSuccess
}
