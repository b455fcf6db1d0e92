package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/renderer"
	"github.com/google/subcommands"
)

// errUnknownProduct is returned when -p matches no product and no ledger.
var errUnknownProduct = fmt.Errorf("%w: unknown product", errUsage)

// lookupProduct returns the id of the ledger designated by s: a product id,
// a product name, or the id of an orphan ledger.
func lookupProduct(d gplocal.Document, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: -p is required", errUsage)
	}
	if _, ok := d.Product(s); ok {
		return s, nil
	}
	if id := gplocal.ProductID(s); id != "" {
		if _, ok := d.Product(id); ok {
			return id, nil
		}
	}
	if _, ok := d.Entries[s]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w %q", errUnknownProduct, s)
}

type productsCmd struct {
	query string
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "list products" }
func (*productsCmd) Usage() string {
	return `gpl products [-q <text>]

  Lists the products, with the number of purchases, sales and costs recorded
  for each. Use -q to only list products whose name contains <text>.
`
}

func (c *productsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Only list products whose name contains this text, ignoring case.")
}

func (c *productsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, doc, status := loadDocument(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	printMarkdown(renderer.ProductsMarkdown(doc, doc.SearchProducts(c.query)), doc.Settings.DarkMode)
	return subcommands.ExitSuccess
}

type addProductCmd struct{}

func (*addProductCmd) Name() string     { return "add-product" }
func (*addProductCmd) Synopsis() string { return "add a new product" }
func (*addProductCmd) Usage() string {
	return `gpl add-product <name>

  Adds a product. Its id is derived from the name: accents are removed, letters
  lowercased, and every other character becomes a hyphen ("Café Noir" gets the
  id "cafe-noir"). The name must have at least 2 characters and the id must not
  be used yet.
`
}

func (c *addProductCmd) SetFlags(f *flag.FlagSet) {}

func (c *addProductCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(os.Stderr, "Error: a product name is required.")
		return subcommands.ExitUsageError
	}

	store, doc, status := loadForUpdate(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	doc, p, err := doc.AddProduct(name, now())
	if err != nil {
		return exitStatus("adding product", err)
	}
	if status := saveDocument(ctx, store, doc); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Produit %q ajouté (id %s).\n", p.Name, p.ID)
	return subcommands.ExitSuccess
}
