package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/etnz/gplocal"
	md "github.com/nao1215/markdown"
)

// ProductsMarkdown renders the list of products with the number of rows of each ledger.
func ProductsMarkdown(d gplocal.Document, products []gplocal.Product) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Produits")
	if len(products) == 0 {
		doc.PlainText("Aucun produit.")
		return doc.String()
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		l := d.Ledger(p.ID)
		rows = append(rows, []string{
			cell(p.ID),
			cell(p.Name),
			createdOn(p),
			strconv.Itoa(len(l.Purchases)),
			strconv.Itoa(len(l.Sales)),
			strconv.Itoa(len(l.Costs)),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Nom", "Créé le", "Achats", "Ventes", "Coûts"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("%d produit(s).", len(products)))
	return doc.String()
}

// createdOn returns the creation day of p, or its raw timestamp when it cannot be read.
func createdOn(p gplocal.Product) string {
	t, err := p.Created()
	if err != nil {
		return orDash(p.CreatedAt)
	}
	return t.Local().Format(time.DateOnly)
}
