package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/date"
	"github.com/etnz/gplocal/renderer"
	"github.com/google/subcommands"
)

// rowFlags holds the field flags shared by add and edit.
type rowFlags struct {
	product string
	section string

	date   string
	name   string
	weight string
	price  string
	typ    string
	amount string
	desc   string

	set map[string]bool // flags explicitly set on the command line
}

// transactionFields and costFields are the field flags of each kind of row.
var (
	transactionFields = []string{"date", "name", "weight", "price"}
	costFields        = []string{"date", "type", "amount", "desc"}
)

func (r *rowFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&r.product, "p", "", "Product id or name (required).")
	f.StringVar(&r.section, "s", "", "Section: purchases, sales or costs (required).")
	f.StringVar(&r.date, "date", "", "Date of the row, YYYY-MM-DD.")
	f.StringVar(&r.name, "name", "", "Supplier (purchases) or buyer (sales).")
	f.StringVar(&r.weight, "weight", "", "Weight in kg (purchases and sales).")
	f.StringVar(&r.price, "price", "", "Price per kg (purchases and sales).")
	f.StringVar(&r.typ, "type", "", "Type of cost, like Transport (costs).")
	f.StringVar(&r.amount, "amount", "", "Amount of the cost (costs).")
	f.StringVar(&r.desc, "desc", "", "Optional description of the cost (costs).")
}

// parse records the set flags and checks they fit the section.
func (r *rowFlags) parse(f *flag.FlagSet) (gplocal.Section, error) {
	s, err := gplocal.ParseSection(r.section)
	if err != nil {
		return s, fmt.Errorf("%w: %w", errUsage, err)
	}
	r.set = make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { r.set[fl.Name] = true })

	allowed := transactionFields
	if s == gplocal.Costs {
		allowed = costFields
	}
	for _, name := range append(transactionFields, costFields...) {
		if r.set[name] && !slices.Contains(allowed, name) {
			return s, fmt.Errorf("%w: -%s does not apply to %s", errUsage, name, s)
		}
	}
	return s, nil
}

// number reads a numeric flag. Text that is not a number within the float64
// range is kept as typed.
func number(s string) gplocal.Number {
	d, ok := gplocal.ParseFinite(s)
	if !ok {
		return gplocal.Text(s)
	}
	return gplocal.N(d)
}

// applyTransaction sets the fields given on the command line.
func (r *rowFlags) applyTransaction(tx gplocal.Transaction) gplocal.Transaction {
	if r.set["date"] {
		tx.Date = r.date
	}
	if r.set["name"] {
		tx.Name = r.name
	}
	if r.set["weight"] {
		tx.Weight = number(r.weight)
	}
	if r.set["price"] {
		tx.Price = number(r.price)
	}
	return tx
}

// applyCost sets the fields given on the command line.
func (r *rowFlags) applyCost(c gplocal.Cost) gplocal.Cost {
	if r.set["date"] {
		c.Date = r.date
	}
	if r.set["type"] {
		c.Type = r.typ
	}
	if r.set["amount"] {
		c.Amount = number(r.amount)
	}
	if r.set["desc"] {
		c.Desc = r.desc
	}
	return c
}

// update applies the field flags to row id and validates it.
// It returns the new document and the validation messages of the row.
func (r *rowFlags) update(doc gplocal.Document, pid string, s gplocal.Section, id string, today date.Date) (gplocal.Document, gplocal.FieldErrors, error) {
	if s == gplocal.Costs {
		c, ok := doc.Cost(pid, id)
		if !ok {
			return doc, nil, fmt.Errorf("no cost %q in %s", id, pid)
		}
		c = r.applyCost(c)
		return doc.UpdateCost(pid, c), gplocal.ValidateCost(c, today), nil
	}
	tx, ok := doc.Transaction(pid, s, id)
	if !ok {
		return doc, nil, fmt.Errorf("no %s row %q in %s", s, id, pid)
	}
	tx = r.applyTransaction(tx)
	return doc.UpdateTransaction(pid, s, tx), gplocal.ValidateTransaction(tx, today), nil
}

// printHints prints the validation messages of a saved row.
func printHints(id string, errs gplocal.FieldErrors) {
	if errs.Valid() {
		return
	}
	fmt.Fprintf(stdout, "Ligne %s enregistrée, à corriger:\n", id)
	for _, field := range errs.Fields() {
		fmt.Fprintf(stdout, "  %s: %s\n", field, errs[field])
	}
}

type showCmd struct {
	product string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the purchases, sales and costs of a product" }
func (*showCmd) Usage() string {
	return `gpl show -p <product>

  Shows the ledger of a product: its purchases, sales and costs, with the
  fields to correct on each row, and warnings about selling below the average
  purchase price or selling more than was bought.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "p", "", "Product id or name (required).")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := today()
	if err != nil {
		return exitStatus("parsing -today", fmt.Errorf("%w: %w", errUsage, err))
	}
	store, doc, status := loadDocument(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	pid, err := lookupProduct(doc, c.product)
	if err != nil {
		return exitStatus("finding product", err)
	}
	printMarkdown(renderer.RenderLedger(renderer.NewLedgerView(doc, pid, on, Currency())), doc.Settings.DarkMode)
	return subcommands.ExitSuccess
}

type addCmd struct {
	rowFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a purchase, a sale or a cost" }
func (*addCmd) Usage() string {
	return `gpl add -p <product> -s purchases|sales|costs [fields]

  Adds a row at the top of a section of the product ledger, dated today, with
  zero weight, price or amount. Costs get the type Transport.

  Fields given as flags are set on the new row:
  - purchases and sales: -date, -name, -weight, -price
  - costs: -date, -type, -amount, -desc

  The row is saved even when some field is invalid; the fields to correct are
  listed.

Usage Examples:
$ gpl add -p vanille -s purchases -name Rakoto -weight 12.5 -price 30000
$ gpl add -p vanille -s costs -amount 15000 -desc "taxi brousse"
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.rowFlags.setFlags(f) }

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.parse(f)
	if err != nil {
		return exitStatus("parsing flags", err)
	}
	on, err := today()
	if err != nil {
		return exitStatus("parsing -today", fmt.Errorf("%w: %w", errUsage, err))
	}
	store, doc, status := loadForUpdate(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	pid, err := lookupProduct(doc, c.product)
	if err != nil {
		return exitStatus("finding product", err)
	}
	doc, id := doc.AddRow(pid, s, on)
	doc, hints, err := c.update(doc, pid, s, id, on)
	if err != nil {
		return exitStatus("adding row", err)
	}
	if status := saveDocument(ctx, store, doc); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Ligne %s ajoutée.\n", id)
	printHints(id, hints)
	return subcommands.ExitSuccess
}

type editCmd struct {
	rowFlags
	id string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change fields of a purchase, a sale or a cost" }
func (*editCmd) Usage() string {
	return `gpl edit -p <product> -s purchases|sales|costs -id <row> [fields]

  Sets the fields given as flags on an existing row, leaving the others as they
  are. Fields are the same as for add. Row ids are shown by gpl show.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.rowFlags.setFlags(f)
	f.StringVar(&c.id, "id", "", "Id of the row to edit (required).")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.parse(f)
	if err != nil {
		return exitStatus("parsing flags", err)
	}
	if c.id == "" {
		return exitStatus("parsing flags", fmt.Errorf("%w: -id is required", errUsage))
	}
	on, err := today()
	if err != nil {
		return exitStatus("parsing -today", fmt.Errorf("%w: %w", errUsage, err))
	}
	store, doc, status := loadForUpdate(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	pid, err := lookupProduct(doc, c.product)
	if err != nil {
		return exitStatus("finding product", err)
	}
	doc, hints, err := c.update(doc, pid, s, c.id, on)
	if err != nil {
		return exitStatus("editing row", err)
	}
	if status := saveDocument(ctx, store, doc); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Ligne %s modifiée.\n", c.id)
	printHints(c.id, hints)
	return subcommands.ExitSuccess
}

type rmCmd struct {
	product string
	section string
	id      string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a purchase, a sale or a cost" }
func (*rmCmd) Usage() string {
	return `gpl rm -p <product> -s purchases|sales|costs -id <row>

  Deletes a row from a section of the product ledger.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "p", "", "Product id or name (required).")
	f.StringVar(&c.section, "s", "", "Section: purchases, sales or costs (required).")
	f.StringVar(&c.id, "id", "", "Id of the row to delete (required).")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := gplocal.ParseSection(c.section)
	if err != nil {
		return exitStatus("parsing flags", fmt.Errorf("%w: %w", errUsage, err))
	}
	store, doc, status := loadForUpdate(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	defer store.Close()

	pid, err := lookupProduct(doc, c.product)
	if err != nil {
		return exitStatus("finding product", err)
	}
	_, isTx := doc.Transaction(pid, s, c.id)
	_, isCost := doc.Cost(pid, c.id)
	if !isTx && !(s == gplocal.Costs && isCost) {
		return exitStatus("deleting row", fmt.Errorf("no %s row %q in %s", s, c.id, pid))
	}
	if status := saveDocument(ctx, store, doc.DeleteRow(pid, s, c.id)); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Ligne %s supprimée.\n", c.id)
	return subcommands.ExitSuccess
}
