package investment

import "context"

type Repository interface {
	// Create inserts the investment with its installments.
	Create(ctx context.Context, inv *Investment) error
	Save(ctx context.Context, inv *Investment) error
	GetByInvestmentID(ctx context.Context, investmentID string) (*Investment, error)
	GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*Investment, error)
	// ListByInvestor returns newest investment first.
	ListByInvestor(ctx context.Context, investorID uint64) ([]Investment, error)
}
