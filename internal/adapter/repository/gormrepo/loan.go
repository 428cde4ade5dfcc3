package gormrepo

import (
	"context"

	loanDomain "farmfund-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func orderFundings(db *gorm.DB) *gorm.DB     { return db.Order("funded_at ASC, id ASC") }
func orderInstallments(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Fundings", orderFundings).
		Preload("Installments", orderInstallments).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("loan_id = ?", loanID).First(&out).Error; err != nil {
		return &out, err
	}
	if err := orderInstallments(db.Where("loan_id = ?", out.ID)).Find(&out.Installments).Error; err != nil {
		return &out, err
	}
	return &out, nil
}

func (r *LoanRepository) ListByFarmer(ctx context.Context, farmerID string, limit int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	q := r.db.WithContext(ctx).
		Preload("Installments", orderInstallments).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}

func (r *LoanRepository) ListFundable(ctx context.Context, f loanDomain.FundableFilter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("status = ?", loanDomain.StatusApproved).
		Where("amount_funded < amount")
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	if len(f.CropTypes) > 0 {
		q = q.Where("crop_type IN ?", f.CropTypes)
	}
	if len(f.RiskLevels) > 0 {
		q = q.Where("risk_level IN ?", f.RiskLevels)
	}
	if f.MaxDuration > 0 {
		q = q.Where("duration <= ?", f.MaxDuration)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []loanDomain.Loan
	err := q.Preload("Fundings", orderFundings).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) UpdateFunding(ctx context.Context, l *loanDomain.Loan, prevFunded decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("id = ? AND amount_funded = ? AND status = ?", l.ID, prevFunded, loanDomain.StatusApproved).
		Updates(map[string]any{
			"amount_funded":    l.AmountFunded,
			"status":           l.Status,
			"state_updated_at": l.StateUpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrConcurrentFunding
	}
	return nil
}

func (r *LoanRepository) AddFunding(ctx context.Context, f *loanDomain.Funding) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *LoanRepository) ReplaceSchedule(ctx context.Context, loanID uint64, items []loanDomain.Installment) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("loan_id = ?", loanID).Delete(&loanDomain.Installment{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].LoanID = loanID
	}
	return db.Create(&items).Error
}
