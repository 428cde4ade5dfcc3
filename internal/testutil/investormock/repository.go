package investormock

import (
	"context"

	domain "farmfund-backend/internal/domain/investor"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetOrCreateFn      func(ctx context.Context, userID, name string) (*domain.Investor, error)
	GetByUserIDFn      func(ctx context.Context, userID string) (*domain.Investor, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Investor, error)
	UpdateProfileFn    func(ctx context.Context, inv *domain.Investor) error
	UpdateRollupFn     func(ctx context.Context, inv *domain.Investor) error
}

func (m *Repo) GetOrCreate(ctx context.Context, userID, name string) (*domain.Investor, error) {
	if m.GetOrCreateFn != nil {
		return m.GetOrCreateFn(ctx, userID, name)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Investor, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Investor, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateProfile(ctx context.Context, inv *domain.Investor) error {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, inv)
	}
	return nil
}

func (m *Repo) UpdateRollup(ctx context.Context, inv *domain.Investor) error {
	if m.UpdateRollupFn != nil {
		return m.UpdateRollupFn(ctx, inv)
	}
	return nil
}
