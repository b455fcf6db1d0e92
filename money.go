package gplocal

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of amounts when none is configured: the Malagasy ariary.
const DefaultCurrency = "MGA"

// currency returns the go-money currency of code.
func currency(code string) money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// FormatAmount formats an amount in the currency code, rounded to the currency minor unit.
func FormatAmount(v decimal.Decimal, code string) string {
	cur := currency(code)
	units := v.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(units.IntPart())
}

// FormatPrice formats a price per kg.
func FormatPrice(v decimal.Decimal, code string) string { return FormatAmount(v, code) + "/kg" }

// FormatWeight formats a weight in kg with at most 3 decimals.
func FormatWeight(v decimal.Decimal) string { return v.Round(3).String() + " kg" }

// FormatPercent formats a ratio already expressed in percent.
func FormatPercent(v decimal.Decimal) string { return v.StringFixed(1) + " %" }
