package investor

import (
	"time"

	"farmfund-backend/internal/domain/investment"
	"farmfund-backend/internal/domain/returns"

	"github.com/shopspring/decimal"
)

// Rollup is the derived portfolio summary of one investor.
type Rollup struct {
	TotalInvested        decimal.Decimal
	TotalReturns         decimal.Decimal
	ActiveInvestments    int
	CompletedInvestments int
	AverageROI           decimal.Decimal
	ROISampleSize        int
}

// ComputeRollup derives the rollup from the full investment set. The result
// depends only on its input. AverageROI is the unweighted mean over completed
// investments with a recorded actual return; it is zero when there are none.
func ComputeRollup(invs []investment.Investment) Rollup {
	r := Rollup{TotalInvested: decimal.Zero, TotalReturns: decimal.Zero, AverageROI: decimal.Zero}
	roiSum := decimal.Zero
	for _, inv := range invs {
		r.TotalInvested = r.TotalInvested.Add(inv.Amount)
		if inv.ActualReturn != nil {
			r.TotalReturns = r.TotalReturns.Add(*inv.ActualReturn)
		}
		switch inv.Status {
		case investment.StatusActive:
			r.ActiveInvestments++
		case investment.StatusCompleted:
			r.CompletedInvestments++
			if inv.ActualReturn != nil {
				roiSum = roiSum.Add(returns.ROI(inv.Amount, *inv.ActualReturn))
				r.ROISampleSize++
			}
		}
	}
	if r.ROISampleSize > 0 {
		r.AverageROI = roiSum.Div(decimal.NewFromInt(int64(r.ROISampleSize))).Round(4)
	}
	return r
}

// Apply copies the rollup onto the profile.
func (i *Investor) Apply(r Rollup, at time.Time) {
	i.TotalInvested = r.TotalInvested
	i.TotalReturns = r.TotalReturns
	i.ActiveInvestments = r.ActiveInvestments
	i.CompletedInvestments = r.CompletedInvestments
	i.AverageROI = r.AverageROI
	i.ROISampleSize = r.ROISampleSize
	i.StatsUpdatedAt = &at
}
