package renderer

import (
	"strings"

	"github.com/etnz/gplocal"
	"github.com/etnz/gplocal/date"
)

// Warning messages.
const (
	WarnSellBelowBuy = "Certains prix de vente sont inférieurs au prix moyen d'achat."
	WarnSoldMore     = "Le poids vendu dépasse le poids acheté."
)

// LedgerView is the data model of the ledger of one product.
type LedgerView struct {
	ProductID   string
	ProductName string
	Known       bool // the id belongs to a product, not an orphan ledger
	Sections    []SectionView
	Warnings    []string
}

// SectionView is one section of a LedgerView.
type SectionView struct {
	Title  string
	Header []string
	Rows   []RowView
	Total  string
}

// RowView is one row of a SectionView. Its cells are already formatted.
type RowView struct {
	ID    string
	Cells []string
}

// sectionTitles are the French titles of the ledger sections.
var sectionTitles = map[gplocal.Section]string{
	gplocal.Purchases: "Achats",
	gplocal.Sales:     "Ventes",
	gplocal.Costs:     "Coûts annexes",
}

// NewLedgerView builds the view of pid's ledger in d. Validation hints are
// computed against today, amounts formatted in currency.
func NewLedgerView(d gplocal.Document, pid string, today date.Date, currency string) *LedgerView {
	v := &LedgerView{ProductID: pid, ProductName: pid}
	if p, ok := d.Product(pid); ok {
		v.ProductName = p.Name
		v.Known = true
	}
	l := d.Ledger(pid)

	v.Sections = []SectionView{
		transactionSection(gplocal.Purchases, l.Purchases, today, currency),
		transactionSection(gplocal.Sales, l.Sales, today, currency),
		costSection(l.Costs, today, currency),
	}

	w := gplocal.CheckWarnings(l)
	if w.SellBelowBuy {
		v.Warnings = append(v.Warnings, WarnSellBelowBuy)
	}
	if w.SoldMore {
		v.Warnings = append(v.Warnings, WarnSoldMore)
	}
	return v
}

func transactionSection(s gplocal.Section, list []gplocal.Transaction, today date.Date, currency string) SectionView {
	counterparty := "Fournisseur"
	if s == gplocal.Sales {
		counterparty = "Acheteur"
	}
	sv := SectionView{
		Title:  sectionTitles[s],
		Header: []string{"ID", "Date", counterparty, "Poids (kg)", "Prix / kg", "Montant", "À corriger"},
		Total: gplocal.FormatWeight(gplocal.TotalWeight(list)) + ", " +
			gplocal.FormatAmount(gplocal.TotalAmount(list), currency) + ", moyenne " +
			gplocal.FormatPrice(gplocal.AveragePrice(list), currency),
	}
	for _, tx := range list {
		sv.Rows = append(sv.Rows, RowView{
			ID: tx.ID,
			Cells: []string{
				cell(tx.ID),
				cell(orDash(tx.Date)),
				cell(orDash(tx.Name)),
				cell(tx.Weight.String()),
				cell(tx.Price.String()),
				gplocal.FormatAmount(tx.Amount(), currency),
				hints(gplocal.ValidateTransaction(tx, today)),
			},
		})
	}
	return sv
}

func costSection(list []gplocal.Cost, today date.Date, currency string) SectionView {
	sv := SectionView{
		Title:  sectionTitles[gplocal.Costs],
		Header: []string{"ID", "Date", "Type", "Montant", "Description", "À corriger"},
		Total:  gplocal.FormatAmount(gplocal.CostTotal(list), currency),
	}
	for _, c := range list {
		sv.Rows = append(sv.Rows, RowView{
			ID: c.ID,
			Cells: []string{
				cell(c.ID),
				cell(orDash(c.Date)),
				cell(orDash(c.Type)),
				cell(c.Amount.String()),
				cell(orDash(c.Desc)),
				hints(gplocal.ValidateCost(c, today)),
			},
		})
	}
	return sv
}

// hints joins validation messages in field order, or "-" when the row is valid.
func hints(errs gplocal.FieldErrors) string {
	if errs.Valid() {
		return "-"
	}
	msgs := make([]string, 0, len(errs))
	for _, field := range errs.Fields() {
		msgs = append(msgs, errs[field])
	}
	return cell(strings.Join(msgs, "; "))
}
