package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

// FundableFilter narrows the marketplace query. Zero values mean "no bound".
type FundableFilter struct {
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	CropTypes   []string
	RiskLevels  []RiskLevel
	MaxDuration int
	Limit       int
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row until the surrounding transaction ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// ListByFarmer returns newest first; limit <= 0 returns all.
	ListByFarmer(ctx context.Context, farmerID string, limit int) ([]Loan, error)
	ListFundable(ctx context.Context, f FundableFilter) ([]Loan, error)
	// UpdateFunding writes l.AmountFunded and l.Status only if the stored
	// amount still equals prevFunded and the loan is still approved.
	// A lost race returns ErrConcurrentFunding.
	UpdateFunding(ctx context.Context, l *Loan, prevFunded decimal.Decimal) error
	AddFunding(ctx context.Context, f *Funding) error
	ReplaceSchedule(ctx context.Context, loanID uint64, items []Installment) error
}
