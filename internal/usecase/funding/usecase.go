package funding

import (
	"context"
	"fmt"
	"time"

	"farmfund-backend/internal/domain/apperr"
	"farmfund-backend/internal/domain/investment"
	"farmfund-backend/internal/domain/investor"
	"farmfund-backend/internal/domain/loan"
	"farmfund-backend/internal/domain/returns"
	"farmfund-backend/internal/domain/transaction"
	"farmfund-backend/internal/domain/uow"
	"farmfund-backend/pkg/id"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// StatsRecomputer refreshes the rollup of one investor.
type StatsRecomputer interface {
	Recompute(ctx context.Context, investorID uint64) (*investor.Investor, error)
}

// Invalidator drops cached marketplace pages after the funding state changed.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Usecase struct {
	uow     uow.UnitOfWork
	stats   StatsRecomputer
	market  Invalidator
	minimum decimal.Decimal
	now     func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, stats StatsRecomputer, market Invalidator, minimum decimal.Decimal) *Usecase {
	return &Usecase{
		uow:     tx,
		stats:   stats,
		market:  market,
		minimum: minimum,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Invest records a contribution to an approved loan. All writes share one
// transaction that holds the loan row lock; the conditional funding update
// is a second line of defence against overfunding.
func (u *Usecase) Invest(ctx context.Context, in InvestInput) (*InvestResult, error) {
	// stored columns hold cents; a finer amount could round up to the loan total
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, apperr.Validation("amount must have at most 2 decimal places")
	}
	if in.Amount.LessThan(u.minimum) {
		return nil, apperr.Detail(investment.ErrInvalidAmount, "minimum investment amount is %s", u.minimum.StringFixed(2))
	}
	if in.LoanID == "" || in.UserID == "" {
		return nil, apperr.Validation("loan id and investor are required")
	}

	var (
		res        *InvestResult
		investorID uint64
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusApproved {
			return loan.ErrNotFundable
		}
		remaining := l.Remaining()
		if in.Amount.GreaterThan(remaining) {
			return apperr.Detail(loan.ErrInsufficientCapacity, "only %s remaining for investment", remaining.StringFixed(2))
		}

		inv, err := r.Investors.GetOrCreate(ctx, in.UserID, in.InvestorName)
		if err != nil {
			return err
		}
		investorID = inv.ID
		now := u.now()

		stake := &investment.Investment{
			InvestmentID:   id.NewID32(),
			InvestorID:     inv.ID,
			LoanID:         l.ID,
			LoanRef:        l.LoanID,
			FarmerID:       l.FarmerID,
			FarmerName:     l.FarmerName,
			Amount:         in.Amount,
			ExpectedReturn: returns.Expected(in.Amount, l.InterestRate, l.Duration),
			InterestRate:   l.InterestRate,
			Duration:       l.Duration,
			CropType:       l.CropType,
			RiskLevel:      string(l.RiskLevel),
			Purpose:        l.Purpose,
			Status:         investment.StatusActive,
			InvestmentDate: now,
			Installments:   investment.Prorate(l.Installments, in.Amount, l.Amount),
		}
		if err := r.Investments.Create(ctx, stake); err != nil {
			return err
		}

		prev := l.AmountFunded
		l.AmountFunded = prev.Add(in.Amount)
		if l.FullyFunded() {
			l.Status = loan.StatusFunded
		}
		l.StateUpdatedAt = now
		if err := r.Loans.UpdateFunding(ctx, l, prev); err != nil {
			return err
		}
		if err := r.Loans.AddFunding(ctx, &loan.Funding{
			LoanID:       l.ID,
			InvestmentID: stake.ID,
			InvestorID:   inv.ID,
			InvestorName: inv.Name,
			Amount:       in.Amount,
			FundedAt:     now,
		}); err != nil {
			return err
		}

		txn := &transaction.Transaction{
			TransactionID: id.NewTransactionID(),
			Type:          transaction.TypeInvestment,
			Amount:        in.Amount,
			Description:   fmt.Sprintf("Investment in %s - %s", l.FarmerName, l.Purpose),
			InvestorID:    inv.ID,
			LoanRef:       l.LoanID,
			InvestmentRef: stake.InvestmentID,
			FarmerID:      l.FarmerID,
			Status:        transaction.StatusCompleted,
		}
		if err := r.Transactions.Create(ctx, txn); err != nil {
			return err
		}

		res = &InvestResult{
			InvestmentID:    stake.InvestmentID,
			TransactionID:   txn.TransactionID,
			LoanID:          l.LoanID,
			Amount:          stake.Amount.InexactFloat64(),
			ExpectedReturn:  stake.ExpectedReturn.InexactFloat64(),
			LoanStatus:      string(l.Status),
			AmountFunded:    l.AmountFunded.InexactFloat64(),
			AmountRemaining: l.Remaining().InexactFloat64(),
		}
		return nil
	})
	if err != nil {
		return nil, apperr.FromStore(err, loan.ErrNotFound)
	}

	log.Info().
		Str("loan_id", res.LoanID).
		Uint64("investor_id", investorID).
		Str("investment_id", res.InvestmentID).
		Float64("amount", res.Amount).
		Str("loan_status", res.LoanStatus).
		Msg("investment recorded")

	if u.market != nil {
		if err := u.market.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("marketplace cache invalidation failed")
		}
	}
	// the investment stands even when the rollup cannot be refreshed
	if _, err := u.stats.Recompute(ctx, investorID); err != nil {
		log.Warn().Err(err).Uint64("investor_id", investorID).Bool("stale", true).Msg("investor stats recompute failed")
		res.StatsStale = true
	}
	return res, nil
}
