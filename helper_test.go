package gplocal

import (
	"github.com/etnz/gplocal/date"
	"github.com/shopspring/decimal"
)

// today is the reference date of the tests.
var today = date.New(2025, 6, 15)

// tx is a helper for tests to create a purchase or a sale.
func tx(id, day, name string, weight, price float64) Transaction {
	return Transaction{ID: id, Date: day, Name: name, Weight: N(weight), Price: N(price)}
}

// cost is a helper for tests to create a cost.
func cost(id, day string, amount float64) Cost {
	return Cost{ID: id, Date: day, Type: DefaultCostType, Amount: N(amount)}
}

// dec is a helper for tests to create a decimal from a literal.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// scenario returns the ledger used across aggregation tests.
func scenario() ProductLedger {
	return ProductLedger{
		Purchases: []Transaction{tx("p1", "2025-01-10", "Rakoto", 10, 100)},
		Sales:     []Transaction{tx("s1", "2025-02-03", "Export SA", 8, 150)},
		Costs:     []Cost{cost("c1", "2025-01-12", 50)},
	}
}
