package uowmock

import (
	"context"
	"errors"

	"farmfund-backend/internal/domain/investor"
	"farmfund-backend/internal/domain/loan"
	"farmfund-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Unfilled function fields return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn     func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinInvestorTxFn func(ctx context.Context, investorID uint64, fn func(r uow.Repos, inv *investor.Investor) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every body directly against repos. Locked rows are
// resolved through the same repos, so a test only needs to stub them once.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(uow.Repos, *loan.Loan) error) error {
			l, err := repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
		WithinInvestorTxFn: func(ctx context.Context, id uint64, fn func(uow.Repos, *investor.Investor) error) error {
			inv, err := repos.Investors.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, inv)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinLoanTx(fn func(context.Context, string, func(uow.Repos, *loan.Loan) error) error) *UoW {
	m.WithinLoanTxFn = fn
	return m
}

func (m *UoW) WithWithinInvestorTx(fn func(context.Context, uint64, func(uow.Repos, *investor.Investor) error) error) *UoW {
	m.WithinInvestorTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinInvestorTx(ctx context.Context, investorID uint64, fn func(r uow.Repos, inv *investor.Investor) error) error {
	if m.WithinInvestorTxFn != nil {
		return m.WithinInvestorTxFn(ctx, investorID, fn)
	}
	return errUnimplemented
}
