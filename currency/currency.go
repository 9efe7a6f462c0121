// Package currency converts reported account values into US dollars using a
// fixed exchange-rate table.
package currency

import "github.com/shopspring/decimal"

// rates holds units of each supported currency per 1 USD. This is a static
// snapshot; stored USD values and exports depend on these exact figures.
var rates = map[string]decimal.Decimal{
	"USD": decimal.NewFromFloat(1.000),
	"EUR": decimal.NewFromFloat(0.924),
	"GBP": decimal.NewFromFloat(0.783),
	"MXN": decimal.NewFromFloat(18.330),
	"TRY": decimal.NewFromFloat(32.867),
	"AED": decimal.NewFromFloat(3.673),
	"CAD": decimal.NewFromFloat(1.370),
}

// Supported reports whether code has a fixed exchange rate.
func Supported(code string) bool {
	_, ok := rates[code]
	return ok
}

// USDValue converts an amount in the given currency to its USD equivalent.
// Unrecognized or empty codes are treated as already USD, so the function is
// total and never fails.
func USDValue(amount decimal.Decimal, code string) decimal.Decimal {
	rate, ok := rates[code]
	if !ok {
		return amount
	}
	return amount.Div(rate)
}

// USDFloat is a float64 convenience for callers that keep account values as
// plain numbers.
func USDFloat(amount float64, code string) float64 {
	return USDValue(decimal.NewFromFloat(amount), code).InexactFloat64()
}
