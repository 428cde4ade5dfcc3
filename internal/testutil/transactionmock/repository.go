package transactionmock

import (
	"context"
	"time"

	domain "farmfund-backend/internal/domain/transaction"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, t *domain.Transaction) error
	ListByInvestorFn      func(ctx context.Context, investorID uint64, limit int) ([]domain.Transaction, error)
	ListByInvestorSinceFn func(ctx context.Context, investorID uint64, typ domain.Type, status domain.Status, since time.Time) ([]domain.Transaction, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID uint64, limit int) ([]domain.Transaction, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByInvestorSince(ctx context.Context, investorID uint64, typ domain.Type, status domain.Status, since time.Time) ([]domain.Transaction, error) {
	if m.ListByInvestorSinceFn != nil {
		return m.ListByInvestorSinceFn(ctx, investorID, typ, status, since)
	}
	return nil, context.Canceled
}
