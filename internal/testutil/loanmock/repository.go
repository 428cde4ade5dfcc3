package loanmock

import (
	"context"

	domain "farmfund-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writers are no-ops; unset readers return context.Canceled.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByFarmerFn         func(ctx context.Context, farmerID string, limit int) ([]domain.Loan, error)
	ListFundableFn         func(ctx context.Context, f domain.FundableFilter) ([]domain.Loan, error)
	UpdateFundingFn        func(ctx context.Context, l *domain.Loan, prevFunded decimal.Decimal) error
	AddFundingFn           func(ctx context.Context, f *domain.Funding) error
	ReplaceScheduleFn      func(ctx context.Context, loanID uint64, items []domain.Installment) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByFarmer(ctx context.Context, farmerID string, limit int) ([]domain.Loan, error) {
	if m.ListByFarmerFn != nil {
		return m.ListByFarmerFn(ctx, farmerID, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) ListFundable(ctx context.Context, f domain.FundableFilter) ([]domain.Loan, error) {
	if m.ListFundableFn != nil {
		return m.ListFundableFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateFunding(ctx context.Context, l *domain.Loan, prevFunded decimal.Decimal) error {
	if m.UpdateFundingFn != nil {
		return m.UpdateFundingFn(ctx, l, prevFunded)
	}
	return nil
}

func (m *Repo) AddFunding(ctx context.Context, f *domain.Funding) error {
	if m.AddFundingFn != nil {
		return m.AddFundingFn(ctx, f)
	}
	return nil
}

func (m *Repo) ReplaceSchedule(ctx context.Context, loanID uint64, items []domain.Installment) error {
	if m.ReplaceScheduleFn != nil {
		return m.ReplaceScheduleFn(ctx, loanID, items)
	}
	return nil
}
