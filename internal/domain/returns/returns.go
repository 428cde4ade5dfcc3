// Package returns computes simple-interest projections and realized ROI.
package returns

import "github.com/shopspring/decimal"

var (
	hundred     = decimal.NewFromInt(100)
	monthsRate  = decimal.NewFromInt(1200) // 100 (percent) × 12 (months per year)
	moneyPlaces = int32(2)
)

// Interest is amount × ratePct/100 × months/12, rounded to cents.
func Interest(amount, ratePct decimal.Decimal, months int) decimal.Decimal {
	return amount.Mul(ratePct).Mul(decimal.NewFromInt(int64(months))).Div(monthsRate).Round(moneyPlaces)
}

// Expected is the principal plus simple annual interest over the term.
//
//	Expected(10000, 12, 6) == 10600
func Expected(amount, ratePct decimal.Decimal, months int) decimal.Decimal {
	return amount.Add(Interest(amount, ratePct, months))
}

// ROI is the realized return in percent: (actual − amount) / amount × 100.
// A zero amount yields zero.
func ROI(amount, actual decimal.Decimal) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	return actual.Sub(amount).Div(amount).Mul(hundred)
}
