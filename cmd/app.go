// Package cmd implements the gpl CLI application to manage a local products ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/config"
	"github.com/etnz/gplocal/date"
	"github.com/etnz/gplocal/kv"
	"github.com/etnz/gplocal/metrics"
	"github.com/google/subcommands"
)

// Commands lists every gpl subcommand, in help order.
var Commands = []subcommands.Command{
	&productsCmd{},
	&addProductCmd{},
	&showCmd{},
	&addCmd{},
	&editCmd{},
	&rmCmd{},
	&summaryCmd{},
	&chartsCmd{},
	&exportCmd{},
	&importCmd{},
	&settingsCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// global flags override the configuration read from the environment.
var (
	storeDriver = flag.String("store", "", "Store driver: fs, memory, sqlite, postgres, redis or s3. Defaults to $GPL_STORE_DRIVER or fs.")
	storePath   = flag.String("store-path", "", "Directory of the fs store, or file of the sqlite store. Defaults to $GPL_STORE_PATH.")
	databaseURL = flag.String("database-url", "", "Postgres connection URL. Defaults to $GPL_DATABASE_URL.")
	currency    = flag.String("currency", "", "Currency of amounts, ISO 4217 code. Defaults to $GPL_CURRENCY or MGA.")
	metricsFile = flag.String("metrics-file", "", "Write store metrics to this file on exit. Defaults to $GPL_METRICS_FILE.")
	todayFlag   = flag.String("today", "", "Date of today, for validation and new rows. Defaults to the current date.")
	Verbose     = flag.Bool("v", false, "Print informational logs. Defaults to $GPL_VERBOSE.")
	Raw         = flag.Bool("raw", false, "Print markdown as is instead of rendering it for the terminal.")
)

// stdout and stdin are replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
	now              = time.Now
)

// recorder collects the store metrics of this process.
var recorder = metrics.New()

// settings returns the configuration from the environment, overridden by the global flags.
func settings() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if *storeDriver != "" {
		d, err := kv.ParseDriver(*storeDriver)
		if err != nil {
			return cfg, err
		}
		cfg.Store.Driver = d
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *databaseURL != "" {
		cfg.Store.DatabaseURL = *databaseURL
	}
	if *currency != "" {
		code := strings.ToUpper(*currency)
		if money.GetCurrency(code) == nil {
			return cfg, fmt.Errorf("unknown currency %q", *currency)
		}
		cfg.Currency = code
	}
	if *metricsFile != "" {
		cfg.MetricsFile = *metricsFile
	}
	if *Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// verbose reports whether informational logs are on, by -v or $GPL_VERBOSE.
func verbose() bool {
	if *Verbose {
		return true
	}
	cfg, err := settings()
	return err == nil && cfg.Verbose
}

// infof logs only in verbose mode.
func infof(format string, v ...any) {
	if verbose() {
		log.Printf(format, v...)
	}
}

// OpenStore is the central function to open the document store.
func OpenStore(ctx context.Context) (*gplocal.Store, error) {
	cfg, err := settings()
	if err != nil {
		return nil, err
	}
	backend, err := kv.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s store: %w", cfg.Store.Driver, err)
	}
	infof("using %s store", backend.Driver())
	return gplocal.NewStore(backend, gplocal.WithRecorder(recorder), gplocal.WithClock(now)), nil
}

// loadDocument opens the store and loads the document. The caller must close the store.
func loadDocument(ctx context.Context) (*gplocal.Store, gplocal.Document, subcommands.ExitStatus) {
	store, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return nil, gplocal.Document{}, subcommands.ExitFailure
	}
	return store, store.Load(ctx), subcommands.ExitSuccess
}

// loadForUpdate is loadDocument for commands that save the document afterwards.
// It fails when the backend cannot be read, instead of returning the defaults.
func loadForUpdate(ctx context.Context) (*gplocal.Store, gplocal.Document, subcommands.ExitStatus) {
	store, err := OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return nil, gplocal.Document{}, subcommands.ExitFailure
	}
	doc, err := store.Fetch(ctx)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		return nil, gplocal.Document{}, subcommands.ExitFailure
	}
	return store, doc, subcommands.ExitSuccess
}

// saveDocument saves doc, reporting failures.
func saveDocument(ctx context.Context, store *gplocal.Store, doc gplocal.Document) subcommands.ExitStatus {
	if err := store.Save(ctx, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving document: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// Currency returns the currency code amounts are formatted in.
func Currency() string {
	cfg, err := settings()
	if err != nil || cfg.Currency == "" {
		return gplocal.DefaultCurrency
	}
	return cfg.Currency
}

// today returns the date of today, or the -today flag when set.
func today() (date.Date, error) {
	if *todayFlag == "" {
		return date.Of(now()), nil
	}
	return date.Parse(*todayFlag)
}

// Finish flushes the process metrics. A main package calls it after the command ran.
func Finish() error {
	cfg, err := settings()
	if err != nil || cfg.MetricsFile == "" {
		return nil
	}
	if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
		return fmt.Errorf("cannot write metrics to %q: %w", cfg.MetricsFile, err)
	}
	infof("metrics written to %s", cfg.MetricsFile)
	return nil
}

// glamourStyle returns the glamour style option for a dark mode setting.
func glamourStyle(mode gplocal.DarkMode) glamour.TermRendererOption {
	switch mode {
	case gplocal.DarkModeLight:
		return glamour.WithStandardStyle("light")
	case gplocal.DarkModeDark:
		return glamour.WithStandardStyle("dark")
	default:
		return glamour.WithAutoStyle()
	}
}

// printMarkdown renders md for the terminal, in the colors of mode.
func printMarkdown(md string, mode gplocal.DarkMode) {
	if *Raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamourStyle(mode), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	log.Printf("warning, cannot render markdown, printing it raw: %v", err)
	fmt.Fprint(stdout, md)
}

// errUsage marks errors caused by a wrong command line.
var errUsage = errors.New("usage")

// exitStatus reports err and returns the matching exit status.
func exitStatus(what string, err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	if errors.Is(err, errUsage) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
