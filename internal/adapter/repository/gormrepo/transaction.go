package gormrepo

import (
	"context"
	"time"

	txnDomain "farmfund-backend/internal/domain/transaction"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txnDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) ListByInvestor(ctx context.Context, investorID uint64, limit int) ([]txnDomain.Transaction, error) {
	var out []txnDomain.Transaction
	q := r.db.WithContext(ctx).Where("investor_id = ?", investorID).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}

func (r *TransactionRepository) ListByInvestorSince(ctx context.Context, investorID uint64, typ txnDomain.Type, status txnDomain.Status, since time.Time) ([]txnDomain.Transaction, error) {
	var out []txnDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("investor_id = ? AND type = ? AND status = ? AND created_at >= ?", investorID, typ, status, since.UTC()).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
