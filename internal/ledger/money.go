package ledger

import "github.com/shopspring/decimal"

// Tolerance is the largest difference between two monetary amounts that is
// still considered equal.
const Tolerance = 0.01

// Round2 rounds a monetary amount to two decimal places, half away from zero.
// Only apply it when presenting a figure; accumulate with unrounded values.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// AmountsEqual reports whether a and b agree within Tolerance.
func AmountsEqual(a, b float64) bool {
	d := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return d.LessThanOrEqual(decimal.NewFromFloat(Tolerance))
}
