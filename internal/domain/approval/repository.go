package approval

import "context"

type Repository interface {
	// Create a new review (DB uniqueness ensures at most one per loan)
	Create(ctx context.Context, a *Approval) error

	// Get review by numeric loan ID
	GetByLoanID(ctx context.Context, loanID uint64) (*Approval, error)
}
