package investment

import (
	"farmfund-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// Prorate scales the loan schedule by amount/loanAmount. The last installment
// absorbs rounding so the shares add up to the prorated total.
func Prorate(items []loan.Installment, amount, loanAmount decimal.Decimal) []Installment {
	if len(items) == 0 || loanAmount.IsZero() {
		return nil
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	target := total.Mul(amount).Div(loanAmount).Round(2)

	out := make([]Installment, 0, len(items))
	allocated := decimal.Zero
	for i, it := range items {
		share := it.Amount.Mul(amount).Div(loanAmount).RoundDown(2)
		if i == len(items)-1 {
			share = target.Sub(allocated)
		}
		allocated = allocated.Add(share)
		out = append(out, Installment{
			Seq:     it.Seq,
			DueDate: it.DueDate,
			Amount:  share,
			Status:  string(it.Status),
		})
	}
	return out
}
