package gormrepo

import (
	"context"
	"errors"

	investorDomain "farmfund-backend/internal/domain/investor"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvestorRepository struct{ db *gorm.DB }

func NewInvestorRepository(db *gorm.DB) *InvestorRepository { return &InvestorRepository{db: db} }

func (r *InvestorRepository) GetOrCreate(ctx context.Context, userID, name string) (*investorDomain.Investor, error) {
	out, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	// a concurrent first call may win the insert; the unique index keeps one row
	fresh := investorDomain.New(userID, name)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(fresh).Error; err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *InvestorRepository) GetByUserID(ctx context.Context, userID string) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *InvestorRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *InvestorRepository) UpdateProfile(ctx context.Context, inv *investorDomain.Investor) error {
	return r.db.WithContext(ctx).Model(inv).
		Select("name", "investment_capacity", "risk_tolerance", "preferred_crops", "preferred_regions", "kyc_documents", "verification_status").
		Updates(inv).Error
}

func (r *InvestorRepository) UpdateRollup(ctx context.Context, inv *investorDomain.Investor) error {
	return r.db.WithContext(ctx).Model(&investorDomain.Investor{}).
		Where("id = ?", inv.ID).
		Updates(map[string]any{
			"total_invested":        inv.TotalInvested,
			"total_returns":         inv.TotalReturns,
			"active_investments":    inv.ActiveInvestments,
			"completed_investments": inv.CompletedInvestments,
			"average_roi":           inv.AverageROI,
			"roi_sample_size":       inv.ROISampleSize,
			"stats_updated_at":      inv.StatsUpdatedAt,
		}).Error
}
