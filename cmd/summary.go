package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/renderer"
	"github.com/google/subcommands"
)

// productName returns the name of the product pid, or pid for an orphan ledger.
func productName(d gplocal.Document, pid string) string {
	if p, ok := d.Product(pid); ok {
		return p.Name
	}
	return pid
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	product string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the totals and profit of a product" }
func (*summaryCmd) Usage() string {
	return `gpl summary -p <product>

  Displays the totals of a product: weight and amount bought and sold, average
  prices, costs, net profit and margin, with the same warnings as gpl show.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "p", "", "Product id or name (required).")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, doc, status := loadDocument(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	pid, err := lookupProduct(doc, c.product)
	if err != nil {
		return exitStatus("finding product", err)
	}
	l := doc.Ledger(pid)
	printMarkdown(renderer.SummaryMarkdown(productName(doc, pid), gplocal.Summarize(l), gplocal.CheckWarnings(l), Currency()), doc.Settings.DarkMode)
	return subcommands.ExitSuccess
}

type chartsCmd struct {
	product string
	json    bool
}

func (*chartsCmd) Name() string     { return "charts" }
func (*chartsCmd) Synopsis() string { return "display the monthly and per name amounts of a product" }
func (*chartsCmd) Usage() string {
	return `gpl charts -p <product> [-json]

  Displays, as bars, the amounts bought, sold and the profit of each month,
  the amounts per supplier or buyer, and the total bought against the total
  sold. Costs are not included.

  With -json the series are printed as JSON, for use by other tools.
`
}

func (c *chartsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "p", "", "Product id or name (required).")
	f.BoolVar(&c.json, "json", false, "Print the series as JSON.")
}

// chartsData is the JSON form of the charts of a product.
type chartsData struct {
	Product    string                `json:"product"`
	Monthly    gplocal.MonthlySeries `json:"monthly"`
	ByName     gplocal.NamedSeries   `json:"byName"`
	Comparison gplocal.Comparison    `json:"comparison"`
}

func (c *chartsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, doc, status := loadDocument(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	pid, err := lookupProduct(doc, c.product)
	if err != nil {
		return exitStatus("finding product", err)
	}
	l := doc.Ledger(pid)
	data := chartsData{
		Product:    pid,
		Monthly:    gplocal.ByMonth(l),
		ByName:     gplocal.ByName(l),
		Comparison: gplocal.Compare(l),
	}
	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return exitStatus("encoding charts", fmt.Errorf("cannot encode charts: %w", err))
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ChartsMarkdown(productName(doc, pid), data.Monthly, data.ByName, data.Comparison, Currency()), doc.Settings.DarkMode)
	return subcommands.ExitSuccess
}
