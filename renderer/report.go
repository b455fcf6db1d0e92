package renderer

import (
	"bytes"

	"github.com/etnz/gplocal"
	md "github.com/nao1215/markdown"
)

// ReportTitle is the title of the printable report.
const ReportTitle = "Résumé – Gestion de Produits Locaux"

// ReportHeader is the header of every table of the printable report.
var ReportHeader = []string{"Type", "Date", "Nom/Type", "Poids", "Prix/kg", "Montant"}

// Report is the data model of the printable report: one table per ledger.
type Report struct {
	Title    string
	Sections []ReportSection
}

// ReportSection is the table of one ledger. Cells are already formatted.
type ReportSection struct {
	Heading string
	Rows    [][]string
}

// NewReport builds the report of every ledger of d, products first, then orphan ledgers.
func NewReport(d gplocal.Document, currency string) Report {
	r := Report{Title: ReportTitle}
	for _, pid := range d.LedgerIDs() {
		heading := pid
		if p, ok := d.Product(pid); ok {
			heading = p.Name
		}
		l := d.Ledger(pid)
		s := ReportSection{Heading: heading}
		for _, p := range l.Purchases {
			s.Rows = append(s.Rows, transactionRow("Achat", p, currency))
		}
		for _, v := range l.Sales {
			s.Rows = append(s.Rows, transactionRow("Vente", v, currency))
		}
		for _, c := range l.Costs {
			s.Rows = append(s.Rows, []string{"Coût", c.Date, c.Type, "", "", gplocal.FormatAmount(c.Amount.Value(), currency)})
		}
		r.Sections = append(r.Sections, s)
	}
	return r
}

func transactionRow(kind string, tx gplocal.Transaction, currency string) []string {
	return []string{
		kind,
		tx.Date,
		tx.Name,
		gplocal.FormatWeight(tx.Weight.Value()),
		gplocal.FormatAmount(tx.Price.Value(), currency),
		gplocal.FormatAmount(tx.Amount(), currency),
	}
}

// ReportMarkdown renders the report as markdown.
func ReportMarkdown(r Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(r.Title)
	for _, s := range r.Sections {
		doc.H2(s.Heading)
		if len(s.Rows) == 0 {
			doc.PlainText("Aucune ligne.")
			continue
		}
		rows := make([][]string, len(s.Rows))
		for i, row := range s.Rows {
			rows[i] = make([]string, len(row))
			for j, c := range row {
				rows[i][j] = cell(c)
			}
		}
		doc.Table(md.TableSet{Header: ReportHeader, Rows: rows})
	}
	return doc.String()
}
