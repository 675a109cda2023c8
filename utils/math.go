// utils/math.go
package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundToPrecision rounds d to a given number of decimal places.
func RoundToPrecision(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Round(precision)
}

// FloorToStep rounds d down to a whole multiple of step.
// A non-positive step leaves d unchanged.
func FloorToStep(d, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return d
	}
	return d.Div(step).Floor().Mul(step)
}

// AdjustPriceToTickSize snaps a price to the nearest multiple of tickSize.
func AdjustPriceToTickSize(price, tickSize decimal.Decimal) decimal.Decimal {
	if !tickSize.IsPositive() {
		return price
	}
	return price.Div(tickSize).Round(0).Mul(tickSize)
}

// Percent renders a ratio as a percentage with two decimals, e.g. 0.0125 -> "1.25%".
func Percent(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(2) + "%"
}
