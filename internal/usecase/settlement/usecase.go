// Package settlement records the outcome of an investment once the
// repayment process reports it.
package settlement

import (
	"context"
	"fmt"
	"time"

	"farmfund-backend/internal/domain/apperr"
	"farmfund-backend/internal/domain/investment"
	"farmfund-backend/internal/domain/investor"
	"farmfund-backend/internal/domain/transaction"
	"farmfund-backend/internal/domain/uow"
	"farmfund-backend/pkg/id"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type StatsRecomputer interface {
	Recompute(ctx context.Context, investorID uint64) (*investor.Investor, error)
}

type SettleInput struct {
	InvestmentID string
	Status       string
	// required unless the investment defaulted
	ActualReturn *decimal.Decimal
}

type SettleResult struct {
	InvestmentID  string  `json:"investment_id"`
	Status        string  `json:"status"`
	ActualReturn  float64 `json:"actual_return"`
	TransactionID string  `json:"transaction_id,omitempty"`
	StatsStale    bool    `json:"stats_stale,omitempty"`
}

type Usecase struct {
	uow   uow.UnitOfWork
	stats StatsRecomputer
	now   func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, stats StatsRecomputer) *Usecase {
	return &Usecase{uow: tx, stats: stats, now: func() time.Time { return time.Now().UTC() }}
}

func (in SettleInput) validate() (investment.Status, error) {
	st := investment.Status(in.Status)
	if !investment.ValidSettlement(st) {
		return "", apperr.Detail(investment.ErrInvalidSettlement, "status must be one of completed, defaulted, partial_return")
	}
	if in.ActualReturn != nil && in.ActualReturn.IsNegative() {
		return "", apperr.Validation("actual return must not be negative")
	}
	if st != investment.StatusDefaulted && in.ActualReturn == nil {
		return "", apperr.Validation("actual return is required for status %s", st)
	}
	return st, nil
}

// Settle moves an open investment to its outcome. Each call may only raise
// the recorded actual return; the increase is booked as a return transaction.
func (u *Usecase) Settle(ctx context.Context, in SettleInput) (*SettleResult, error) {
	st, err := in.validate()
	if err != nil {
		return nil, err
	}

	var (
		res        *SettleResult
		investorID uint64
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investments.GetByInvestmentIDForUpdate(ctx, in.InvestmentID)
		if err != nil {
			return err
		}
		if !inv.Settleable() {
			return investment.ErrNotSettleable
		}
		investorID = inv.InvestorID

		prev := decimal.Zero
		if inv.ActualReturn != nil {
			prev = *inv.ActualReturn
		}
		actual := prev
		if in.ActualReturn != nil {
			actual = *in.ActualReturn
		}
		if actual.LessThan(prev) {
			return apperr.Validation("actual return cannot drop below the %s already recorded", prev.StringFixed(2))
		}

		now := u.now()
		inv.Status = st
		inv.ActualReturn = &actual
		if st != investment.StatusPartialReturn {
			inv.SettledAt = &now
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}

		res = &SettleResult{
			InvestmentID: inv.InvestmentID,
			Status:       string(inv.Status),
			ActualReturn: actual.InexactFloat64(),
		}
		delta := actual.Sub(prev)
		if !delta.IsPositive() {
			return nil
		}
		txn := &transaction.Transaction{
			TransactionID: id.NewTransactionID(),
			Type:          transaction.TypeReturn,
			Amount:        delta,
			Description:   fmt.Sprintf("Return from %s - %s", inv.FarmerName, inv.Purpose),
			InvestorID:    inv.InvestorID,
			LoanRef:       inv.LoanRef,
			InvestmentRef: inv.InvestmentID,
			FarmerID:      inv.FarmerID,
			Status:        transaction.StatusCompleted,
		}
		if err := r.Transactions.Create(ctx, txn); err != nil {
			return err
		}
		res.TransactionID = txn.TransactionID
		return nil
	})
	if err != nil {
		return nil, apperr.FromStore(err, investment.ErrNotFound)
	}

	log.Info().Str("investment_id", res.InvestmentID).Str("status", res.Status).Float64("actual_return", res.ActualReturn).Msg("investment settled")
	if _, err := u.stats.Recompute(ctx, investorID); err != nil {
		log.Warn().Err(err).Uint64("investor_id", investorID).Bool("stale", true).Msg("investor stats recompute failed")
		res.StatsStale = true
	}
	return res, nil
}
