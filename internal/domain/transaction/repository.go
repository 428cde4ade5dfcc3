package transaction

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	// ListByInvestor returns newest first, at most limit rows.
	ListByInvestor(ctx context.Context, investorID uint64, limit int) ([]Transaction, error)
	// ListByInvestorSince returns rows of the given type and status created at or after since.
	ListByInvestorSince(ctx context.Context, investorID uint64, typ Type, status Status, since time.Time) ([]Transaction, error)
}
