package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/gplocal"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the profitability of a product.
func SummaryMarkdown(name string, t gplocal.Totals, w gplocal.Warnings, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Résumé / Rentabilité: %s", name))

	verdict := "Bénéfice net"
	if t.Profit.IsNegative() {
		verdict = "Perte nette"
	}
	doc.PlainText(fmt.Sprintf("**%s: %s**", verdict, gplocal.FormatAmount(t.Profit, currency)))

	doc.Table(md.TableSet{
		Header: []string{"Indicateur", "Valeur"},
		Rows: [][]string{
			{"Marge (%)", gplocal.FormatPercent(t.Margin)},
			{"Rendement / kg", gplocal.FormatPrice(t.PerKg, currency)},
			{"Coûts totaux", gplocal.FormatAmount(t.CostTotal, currency)},
		},
	})

	doc.H2("Achats et ventes")
	doc.Table(md.TableSet{
		Header: []string{"", "Poids", "Montant", "Prix moyen"},
		Rows: [][]string{
			{"Achats", gplocal.FormatWeight(t.WeightBought), gplocal.FormatAmount(t.AmountBought, currency), gplocal.FormatPrice(t.AverageBuyPrice, currency)},
			{"Ventes", gplocal.FormatWeight(t.WeightSold), gplocal.FormatAmount(t.AmountSold, currency), gplocal.FormatPrice(t.AverageSellPrice, currency)},
		},
	})

	var b strings.Builder
	b.WriteString(doc.String())
	ConditionalBlock(&b, func(out io.Writer) bool {
		fmt.Fprint(out, "\n## Alertes\n\n")
		if w.SellBelowBuy {
			fmt.Fprintf(out, "- ⚠️ %s\n", WarnSellBelowBuy)
		}
		if w.SoldMore {
			fmt.Fprintf(out, "- ⚠️ %s\n", WarnSoldMore)
		}
		return w.Any()
	})
	return b.String()
}
