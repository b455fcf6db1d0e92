package gplocal

import (
	"github.com/shopspring/decimal"
)

// hundred is used to express ratios as percentages.
var hundred = decimal.NewFromInt(100)

// TotalWeight returns the sum of weights in list.
func TotalWeight(list []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range list {
		total = total.Add(tx.Weight.Value())
	}
	return total
}

// TotalAmount returns the sum of weight × price in list.
func TotalAmount(list []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range list {
		total = total.Add(tx.Amount())
	}
	return total
}

// AveragePrice returns the weighted average price per kg of list, zero when
// there is no weight at all.
func AveragePrice(list []Transaction) decimal.Decimal {
	return ratio(TotalAmount(list), TotalWeight(list))
}

// CostTotal returns the sum of the costs amounts.
func CostTotal(costs []Cost) decimal.Decimal {
	total := decimal.Zero
	for _, c := range costs {
		total = total.Add(c.Amount.Value())
	}
	return total
}

// ratio returns a/b, or zero if b is not positive.
func ratio(a, b decimal.Decimal) decimal.Decimal {
	if !b.IsPositive() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Totals is the profitability summary of a product.
type Totals struct {
	WeightBought    decimal.Decimal // kg
	AmountBought    decimal.Decimal
	AverageBuyPrice decimal.Decimal // per kg

	WeightSold       decimal.Decimal // kg
	AmountSold       decimal.Decimal
	AverageSellPrice decimal.Decimal // per kg

	CostTotal decimal.Decimal

	Profit decimal.Decimal // sales - purchases - costs
	Margin decimal.Decimal // profit as a percentage of sales
	PerKg  decimal.Decimal // profit per kg sold
}

// Summarize computes the totals of a product ledger.
func Summarize(l ProductLedger) Totals {
	t := Totals{
		WeightBought:     TotalWeight(l.Purchases),
		AmountBought:     TotalAmount(l.Purchases),
		AverageBuyPrice:  AveragePrice(l.Purchases),
		WeightSold:       TotalWeight(l.Sales),
		AmountSold:       TotalAmount(l.Sales),
		AverageSellPrice: AveragePrice(l.Sales),
		CostTotal:        CostTotal(l.Costs),
	}
	t.Profit = t.AmountSold.Sub(t.AmountBought).Sub(t.CostTotal)
	t.Margin = ratio(t.Profit, t.AmountSold).Mul(hundred)
	t.PerKg = ratio(t.Profit, t.WeightSold)
	return t
}

// Warnings are informational signals about a product ledger.
type Warnings struct {
	SellBelowBuy bool // some sale price is below the average purchase price
	SoldMore     bool // more weight sold than bought
}

// Any reports whether any warning is raised.
func (w Warnings) Any() bool { return w.SellBelowBuy || w.SoldMore }

// CheckWarnings computes the warnings of a product ledger.
func CheckWarnings(l ProductLedger) Warnings {
	avgBuy := AveragePrice(l.Purchases)
	var w Warnings
	for _, s := range l.Sales {
		if p := s.Price.Value(); p.IsPositive() && p.LessThan(avgBuy) {
			w.SellBelowBuy = true
			break
		}
	}
	w.SoldMore = TotalWeight(l.Sales).GreaterThan(TotalWeight(l.Purchases))
	return w
}
