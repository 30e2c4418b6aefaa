package invoicing

import "github.com/shopspring/decimal"

// Business rounding rule for VAT amounts. A fractional part that sits at
// .49 (within a small tolerance for upstream float noise) rounds down, a
// fractional part of .50 or more rounds up to the next rupiah, and
// everything else rounds half-up to whole rupiah.
var (
	vatRoundDownPivot = decimal.NewFromFloat(0.49)
	vatRoundUpPivot   = decimal.NewFromFloat(0.50)
	vatPivotTolerance = decimal.NewFromFloat(0.001)
)

// RoundVAT applies the VAT rounding rule to a raw VAT amount and returns
// a whole-rupiah value
func RoundVAT(raw decimal.Decimal) decimal.Decimal {
	floor := raw.Floor()
	fraction := raw.Sub(floor)

	if fraction.Sub(vatRoundDownPivot).Abs().LessThanOrEqual(vatPivotTolerance) {
		return floor
	}
	if fraction.GreaterThanOrEqual(vatRoundUpPivot) {
		return raw.Ceil()
	}
	return raw.Round(0)
}

// CalculateVAT computes the VAT amount for a taxable base at the given
// percentage rate, applying the business rounding rule
func CalculateVAT(taxableAmount, ratePercent decimal.Decimal) decimal.Decimal {
	raw := taxableAmount.Mul(ratePercent).Div(decimal.NewFromInt(100))
	return RoundVAT(raw)
}
