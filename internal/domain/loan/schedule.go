package loan

import (
	"time"

	"farmfund-backend/internal/domain/returns"

	"github.com/shopspring/decimal"
)

// BuildSchedule splits principal plus simple interest into equal monthly
// installments, the first due one month after start. The last installment
// absorbs rounding so the total is exact.
func BuildSchedule(principal, ratePct decimal.Decimal, months int, start time.Time) []Installment {
	if months <= 0 {
		return nil
	}
	total := returns.Expected(principal, ratePct, months)
	per := total.Div(decimal.NewFromInt(int64(months))).RoundDown(2)

	out := make([]Installment, 0, months)
	allocated := decimal.Zero
	for i := 1; i <= months; i++ {
		amt := per
		if i == months {
			amt = total.Sub(allocated)
		}
		allocated = allocated.Add(amt)
		out = append(out, Installment{
			Seq:     i,
			DueDate: start.AddDate(0, i, 0).UTC(),
			Amount:  amt,
			Status:  InstallmentPending,
		})
	}
	return out
}

// RepaymentRate is the share of paid installments in percent, rounded to an integer.
func RepaymentRate(items []Installment) int {
	if len(items) == 0 {
		return 0
	}
	paid := 0
	for _, it := range items {
		if it.Status == InstallmentPaid {
			paid++
		}
	}
	return int(decimal.NewFromInt(int64(paid * 100)).Div(decimal.NewFromInt(int64(len(items)))).Round(0).IntPart())
}
