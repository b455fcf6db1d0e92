package gplocal

import (
	"slices"

	"github.com/etnz/gplocal/date"
	"github.com/shopspring/decimal"
)

// InvalidMonth labels the bucket of rows whose date cannot be read.
const InvalidMonth = "Invalid Date"

// MonthlySeries holds buy, sell and profit amounts per month.
// All slices are aligned on Labels.
type MonthlySeries struct {
	Labels []string          // "YYYY-MM", ascending
	Buy    []decimal.Decimal // purchases amount
	Sell   []decimal.Decimal // sales amount
	Profit []decimal.Decimal // Sell - Buy
}

// PositiveProfit returns Profit where losses are replaced by zero, as needed by a pie chart.
func (s MonthlySeries) PositiveProfit() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.Profit))
	for i, p := range s.Profit {
		out[i] = decimal.Max(p, decimal.Zero)
	}
	return out
}

// monthOf returns the month label of a row date.
func monthOf(day string) string {
	d, err := date.Parse(day)
	if err != nil {
		return InvalidMonth
	}
	return d.MonthLabel()
}

// ByMonth groups purchases and sales amounts by calendar month. Costs are ignored.
func ByMonth(l ProductLedger) MonthlySeries {
	type bucket struct{ buy, sell decimal.Decimal }
	months := make(map[string]*bucket)
	get := func(label string) *bucket {
		b, ok := months[label]
		if !ok {
			b = &bucket{buy: decimal.Zero, sell: decimal.Zero}
			months[label] = b
		}
		return b
	}
	for _, s := range l.Sales {
		b := get(monthOf(s.Date))
		b.sell = b.sell.Add(s.Amount())
	}
	for _, p := range l.Purchases {
		b := get(monthOf(p.Date))
		b.buy = b.buy.Add(p.Amount())
	}

	var s MonthlySeries
	for label := range months {
		s.Labels = append(s.Labels, label)
	}
	slices.Sort(s.Labels)
	for _, label := range s.Labels {
		b := months[label]
		s.Buy = append(s.Buy, b.buy)
		s.Sell = append(s.Sell, b.sell)
		s.Profit = append(s.Profit, b.sell.Sub(b.buy))
	}
	return s
}

// NamedSeries holds amounts per counterparty name.
type NamedSeries struct {
	Labels  []string // in order of first appearance
	Amounts []decimal.Decimal
}

// ByName sums purchases and sales amounts per counterparty, purchases first.
// Rows without a name are dropped.
func ByName(l ProductLedger) NamedSeries {
	var s NamedSeries
	index := make(map[string]int)
	for _, tx := range slices.Concat(l.Purchases, l.Sales) {
		if tx.Name == "" {
			continue
		}
		i, ok := index[tx.Name]
		if !ok {
			i = len(s.Labels)
			index[tx.Name] = i
			s.Labels = append(s.Labels, tx.Name)
			s.Amounts = append(s.Amounts, decimal.Zero)
		}
		s.Amounts[i] = s.Amounts[i].Add(tx.Amount())
	}
	return s
}

// Comparison holds the total amounts bought and sold.
type Comparison struct {
	Buy  decimal.Decimal
	Sell decimal.Decimal
}

// Compare returns the total purchases and sales amounts, ignoring costs.
func Compare(l ProductLedger) Comparison {
	return Comparison{Buy: TotalAmount(l.Purchases), Sell: TotalAmount(l.Sales)}
}
