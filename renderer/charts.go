package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/gplocal"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// barWidth is the number of characters of the longest bar.
const barWidth = 20

// bar draws v as a horizontal bar scaled against max.
func bar(v, max decimal.Decimal) string {
	if !v.IsPositive() || !max.IsPositive() {
		return ""
	}
	n := v.Div(max).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart()
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", int(n))
}

// maxOf returns the largest value of all lists, zero if they are empty.
func maxOf(lists ...[]decimal.Decimal) decimal.Decimal {
	max := decimal.Zero
	for _, l := range lists {
		for _, v := range l {
			max = decimal.Max(max, v)
		}
	}
	return max
}

// ChartsMarkdown renders the chart series of a product as tables with text bars.
func ChartsMarkdown(name string, months gplocal.MonthlySeries, names gplocal.NamedSeries, cmp gplocal.Comparison, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Graphiques: %s", name))

	doc.H2("Par mois")
	if len(months.Labels) == 0 {
		doc.PlainText("Aucune donnée.")
	} else {
		max := maxOf(months.Buy, months.Sell)
		rows := make([][]string, len(months.Labels))
		for i, label := range months.Labels {
			rows[i] = []string{
				label,
				gplocal.FormatAmount(months.Buy[i], currency),
				gplocal.FormatAmount(months.Sell[i], currency),
				gplocal.FormatAmount(months.Profit[i], currency),
				bar(months.Sell[i], max),
			}
		}
		doc.Table(md.TableSet{Header: []string{"Mois", "Achats", "Ventes", "Bénéfice", "Ventes"}, Rows: rows})
	}

	doc.H2("Par nom")
	if len(names.Labels) == 0 {
		doc.PlainText("Aucune donnée.")
	} else {
		max := maxOf(names.Amounts)
		rows := make([][]string, len(names.Labels))
		for i, label := range names.Labels {
			rows[i] = []string{cell(label), gplocal.FormatAmount(names.Amounts[i], currency), bar(names.Amounts[i], max)}
		}
		doc.Table(md.TableSet{Header: []string{"Nom", "Montant", ""}, Rows: rows})
	}

	doc.H2("Achats / Ventes")
	max := decimal.Max(cmp.Buy, cmp.Sell)
	doc.Table(md.TableSet{
		Header: []string{"", "Montant", ""},
		Rows: [][]string{
			{"Achats", gplocal.FormatAmount(cmp.Buy, currency), bar(cmp.Buy, max)},
			{"Ventes", gplocal.FormatAmount(cmp.Sell, currency), bar(cmp.Sell, max)},
		},
	})
	return doc.String()
}
