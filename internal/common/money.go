package common

import "math"

// Round2 rounds a monetary value to 2 decimal places. Loan repayments
// round at the point of persistence; invoice totals are persisted
// unrounded, so callers must not apply this blindly.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// PercentOf returns pct percent of amount.
func PercentOf(amount, pct float64) float64 {
	return amount * pct / 100
}

// LoyaltyPoints converts a paid amount into accrued loyalty points,
// one point per 100 rupees paid.
func LoyaltyPoints(paid float64) int {
	if paid <= 0 {
		return 0
	}
	return int(math.Floor(paid / 100))
}
