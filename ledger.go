package gplocal

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/etnz/gplocal/date"
)

// this file contains the Ledger Model mutators.
// They never modify the receiver: each returns a new Document that shares
// every untouched product ledger with the previous one.

var (
	// ErrProductName is returned for a product name too short to be used.
	ErrProductName = errors.New("product name must have at least 2 characters")
	// ErrProductExists is returned when adding a product whose id is already used.
	ErrProductExists = errors.New("product already exists")
)

// Product return the product with this id.
func (d Document) Product(id string) (Product, bool) {
	i := slices.IndexFunc(d.Products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, false
	}
	return d.Products[i], true
}

// SearchProducts returns the products whose name contains query, ignoring case.
// An empty query matches all products.
func (d Document) SearchProducts(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.Products
	}
	var found []Product
	for _, p := range d.Products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			found = append(found, p)
		}
	}
	return found
}

// AddProduct appends a new product named name.
func (d Document) AddProduct(name string, now time.Time) (Document, Product, error) {
	name = strings.TrimSpace(name)
	id := ProductID(name)
	if utf8.RuneCountInString(name) < 2 || id == "" {
		return d, Product{}, fmt.Errorf("%w: %q", ErrProductName, name)
	}
	if _, exists := d.Product(id); exists {
		return d, Product{}, fmt.Errorf("%w: %q", ErrProductExists, id)
	}
	p := Product{ID: id, Name: name, CreatedAt: now.UTC().Format(TimestampFormat)}
	d.Products = append(slices.Clone(d.Products), p)
	return d, p, nil
}

// SetDarkMode returns a copy of d using mode.
func (d Document) SetDarkMode(mode DarkMode) (Document, error) {
	if _, err := ParseDarkMode(string(mode)); err != nil {
		return d, err
	}
	d.Settings.DarkMode = mode
	return d, nil
}

// Ledger returns the ledger of product pid, an empty one if it does not exist yet.
func (d Document) Ledger(pid string) ProductLedger { return d.Entries[pid] }

// withLedger returns a copy of d where the ledger of pid is replaced by l.
func (d Document) withLedger(pid string, l ProductLedger) Document {
	entries := make(map[string]ProductLedger, len(d.Entries)+1)
	maps.Copy(entries, d.Entries)
	entries[pid] = l
	d.Entries = entries
	return d
}

// AddRow prepends a new row dated today, with zero values, to a section of pid's ledger.
// It returns the new document and the id of the new row.
func (d Document) AddRow(pid string, s Section, today date.Date) (Document, string) {
	l := d.Ledger(pid)
	id := NewID(s.prefix())
	day := today.String()
	switch s {
	case Purchases:
		l.Purchases = prepend(l.Purchases, Transaction{ID: id, Date: day, Weight: N(0), Price: N(0)})
	case Sales:
		l.Sales = prepend(l.Sales, Transaction{ID: id, Date: day, Weight: N(0), Price: N(0)})
	case Costs:
		l.Costs = prepend(l.Costs, Cost{ID: id, Date: day, Type: DefaultCostType, Amount: N(0)})
	default:
		return d, ""
	}
	return d.withLedger(pid, fill(l)), id
}

// Transaction returns the purchase or sale with this id.
func (d Document) Transaction(pid string, s Section, id string) (Transaction, bool) {
	list := d.Ledger(pid).transactions(s)
	i := indexOf(list, id)
	if i < 0 {
		return Transaction{}, false
	}
	return list[i], true
}

// Cost returns the cost with this id.
func (d Document) Cost(pid string, id string) (Cost, bool) {
	list := d.Ledger(pid).Costs
	i := indexOf(list, id)
	if i < 0 {
		return Cost{}, false
	}
	return list[i], true
}

// UpdateTransaction replaces the purchase or sale having the same id as tx.
// It is a no-op if there is no such row.
func (d Document) UpdateTransaction(pid string, s Section, tx Transaction) Document {
	l := d.Ledger(pid)
	list, ok := replace(l.transactions(s), tx)
	if !ok {
		return d
	}
	switch s {
	case Purchases:
		l.Purchases = list
	case Sales:
		l.Sales = list
	default:
		return d
	}
	return d.withLedger(pid, l)
}

// UpdateCost replaces the cost having the same id as c.
// It is a no-op if there is no such row.
func (d Document) UpdateCost(pid string, c Cost) Document {
	l := d.Ledger(pid)
	list, ok := replace(l.Costs, c)
	if !ok {
		return d
	}
	l.Costs = list
	return d.withLedger(pid, l)
}

// DeleteRow removes the row with this id from a section of pid's ledger.
// It is a no-op if there is no such row.
func (d Document) DeleteRow(pid string, s Section, id string) Document {
	l := d.Ledger(pid)
	var ok bool
	switch s {
	case Purchases:
		l.Purchases, ok = remove(l.Purchases, id)
	case Sales:
		l.Sales, ok = remove(l.Sales, id)
	case Costs:
		l.Costs, ok = remove(l.Costs, id)
	}
	if !ok {
		return d
	}
	return d.withLedger(pid, l)
}

// transactions returns the purchases or sales, nil for any other section.
func (l ProductLedger) transactions(s Section) []Transaction {
	switch s {
	case Purchases:
		return l.Purchases
	case Sales:
		return l.Sales
	default:
		return nil
	}
}

// fill replaces nil sections by empty ones.
func fill(l ProductLedger) ProductLedger {
	if l.Purchases == nil {
		l.Purchases = []Transaction{}
	}
	if l.Sales == nil {
		l.Sales = []Transaction{}
	}
	if l.Costs == nil {
		l.Costs = []Cost{}
	}
	return l
}

func prepend[T row](list []T, r T) []T {
	return append([]T{r}, list...)
}

func indexOf[T row](list []T, id string) int {
	return slices.IndexFunc(list, func(r T) bool { return r.key() == id })
}

// replace returns a copy of list where the row with r's id is replaced by r.
func replace[T row](list []T, r T) ([]T, bool) {
	i := indexOf(list, r.key())
	if i < 0 {
		return list, false
	}
	list = slices.Clone(list)
	list[i] = r
	return list, true
}

// remove returns a copy of list without the row with this id.
func remove[T row](list []T, id string) ([]T, bool) {
	if indexOf(list, id) < 0 {
		return list, false
	}
	return slices.DeleteFunc(slices.Clone(list), func(r T) bool { return r.key() == id }), true
}
