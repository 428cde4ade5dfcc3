package uow

import (
	"context"

	"farmfund-backend/internal/domain/approval"
	"farmfund-backend/internal/domain/investment"
	"farmfund-backend/internal/domain/investor"
	"farmfund-backend/internal/domain/loan"
	"farmfund-backend/internal/domain/transaction"
)

// Repos are bound to a single transaction.
type Repos struct {
	Loans        loan.Repository
	Approvals    approval.Repository
	Investments  investment.Repository
	Investors    investor.Repository
	Transactions transaction.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in; serializes funding per loan
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// lock the investor row first; serializes statistics recompute per investor
	WithinInvestorTx(ctx context.Context, investorID uint64, fn func(r Repos, inv *investor.Investor) error) error
}
