package gplocal

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/etnz/gplocal/date"
	"github.com/shopspring/decimal"
)

// TimestampFormat is the format of creation timestamps (ISO 8601, UTC, milliseconds).
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// DefaultCostType is the type given to a freshly added cost row.
const DefaultCostType = "Transport"

// Document is the whole persisted state of the application.
type Document struct {
	Products []Product               `json:"products"`
	Entries  map[string]ProductLedger `json:"entries"`
	Settings Settings                `json:"settings"`
}

// Product is a tracked good.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// Created returns the creation time of p.
func (p Product) Created() (time.Time, error) { return time.Parse(time.RFC3339Nano, p.CreatedAt) }

// ProductLedger holds the rows recorded for one product.
type ProductLedger struct {
	Purchases []Transaction `json:"purchases"`
	Sales     []Transaction `json:"sales"`
	Costs     []Cost        `json:"costs"`
}

// Transaction is a purchase or a sale: a weight (kg) exchanged at a price per kg.
type Transaction struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"` // counterparty
	Weight Number `json:"weight"`
	Price  Number `json:"price"`
}

// Amount returns weight × price.
func (t Transaction) Amount() decimal.Decimal { return t.Weight.Value().Mul(t.Price.Value()) }

// Cost is an ancillary expense of a product.
type Cost struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	Amount Number `json:"amount"`
	Desc   string `json:"desc"`
}

func (t Transaction) key() string  { return t.ID }
func (t Transaction) when() string { return t.Date }
func (c Cost) key() string         { return c.ID }
func (c Cost) when() string        { return c.Date }

// row is a line of a ledger section.
type row interface {
	Transaction | Cost
	key() string
	when() string
}

// Settings holds user preferences.
type Settings struct {
	DarkMode DarkMode `json:"darkMode,omitempty"`
}

// DarkMode selects the color scheme of the interface.
type DarkMode string

const (
	DarkModeSystem DarkMode = "system"
	DarkModeLight  DarkMode = "light"
	DarkModeDark   DarkMode = "dark"
)

// ErrUnknownDarkMode is returned for a dark mode other than system, light or dark.
var ErrUnknownDarkMode = errors.New("unknown dark mode")

// ParseDarkMode parses "system", "light" or "dark".
func ParseDarkMode(s string) (DarkMode, error) {
	switch m := DarkMode(s); m {
	case DarkModeSystem, DarkModeLight, DarkModeDark:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDarkMode, s)
	}
}

// Section identifies one of the three lists of a ProductLedger.
type Section int

const (
	Purchases Section = iota
	Sales
	Costs
)

// Sections lists all sections in display order.
var Sections = []Section{Purchases, Sales, Costs}

// ErrUnknownSection is returned when parsing an unknown section name.
var ErrUnknownSection = errors.New("unknown section")

func (s Section) String() string {
	switch s {
	case Purchases:
		return "purchases"
	case Sales:
		return "sales"
	case Costs:
		return "costs"
	default:
		return "unknown"
	}
}

// prefix returns the row id prefix of the section.
func (s Section) prefix() string {
	switch s {
	case Purchases:
		return "p"
	case Sales:
		return "s"
	default:
		return "c"
	}
}

// ParseSection parses a section name.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if sec.String() == s {
			return sec, nil
		}
	}
	return 0, fmt.Errorf("%w: %q want purchases, sales or costs", ErrUnknownSection, s)
}

// DefaultDocument returns the seed document used when nothing is stored yet.
func DefaultDocument(now time.Time) Document {
	created := now.UTC().Format(TimestampFormat)
	return Document{
		Products: []Product{
			{ID: "vanille", Name: "Vanille", CreatedAt: created},
			{ID: "girofle", Name: "Girofle", CreatedAt: created},
			{ID: "poivre", Name: "Poivre", CreatedAt: created},
			{ID: "cafe", Name: "Café", CreatedAt: created},
		},
		Entries:  map[string]ProductLedger{},
		Settings: Settings{DarkMode: DarkModeSystem},
	}
}

// EnsureProductLedger creates, in place, an empty ledger for pid if there is none.
func (d *Document) EnsureProductLedger(pid string) {
	if d.Entries == nil {
		d.Entries = make(map[string]ProductLedger)
	}
	if _, exists := d.Entries[pid]; !exists {
		d.Entries[pid] = ProductLedger{Purchases: []Transaction{}, Sales: []Transaction{}, Costs: []Cost{}}
	}
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	c := Document{
		Products: slices.Clone(d.Products),
		Settings: d.Settings,
	}
	if d.Entries != nil {
		c.Entries = make(map[string]ProductLedger, len(d.Entries))
		for pid, l := range d.Entries {
			c.Entries[pid] = ProductLedger{
				Purchases: slices.Clone(l.Purchases),
				Sales:     slices.Clone(l.Sales),
				Costs:     slices.Clone(l.Costs),
			}
		}
	}
	return c
}

// LedgerIDs returns the ids of all ledgers: first those of known products in
// product order, then orphan ledgers in id order.
func (d Document) LedgerIDs() []string {
	ids := make([]string, 0, len(d.Entries))
	seen := make(map[string]bool, len(d.Products))
	for _, p := range d.Products {
		seen[p.ID] = true
		if _, exists := d.Entries[p.ID]; exists {
			ids = append(ids, p.ID)
		}
	}
	for _, pid := range slices.Sorted(maps.Keys(d.Entries)) {
		if !seen[pid] {
			ids = append(ids, pid)
		}
	}
	return ids
}

// MarshalJSON writes empty lists and maps rather than null.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	p := plain(d)
	if p.Products == nil {
		p.Products = []Product{}
	}
	if p.Entries == nil {
		p.Entries = map[string]ProductLedger{}
	}
	return json.Marshal(p)
}

// MarshalJSON writes empty sections as [] rather than null.
func (l ProductLedger) MarshalJSON() ([]byte, error) {
	type plain ProductLedger
	p := plain(l)
	if p.Purchases == nil {
		p.Purchases = []Transaction{}
	}
	if p.Sales == nil {
		p.Sales = []Transaction{}
	}
	if p.Costs == nil {
		p.Costs = []Cost{}
	}
	return json.Marshal(p)
}

// Day returns the parsed date of t.
func (t Transaction) Day() (date.Date, error) { return date.Parse(t.Date) }

// Day returns the parsed date of c.
func (c Cost) Day() (date.Date, error) { return date.Parse(c.Date) }
