// Package stats keeps the investor rollup columns in step with the
// investment set. Every recompute rebuilds the rollup from scratch.
package stats

import (
	"context"
	"time"

	"farmfund-backend/internal/domain/apperr"
	"farmfund-backend/internal/domain/investor"
	"farmfund-backend/internal/domain/uow"

	"github.com/rs/zerolog/log"
)

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// Recompute reloads every investment of the investor and overwrites the
// rollup. The investor row is locked for the duration, so two recomputes of
// the same investor never interleave.
func (u *Usecase) Recompute(ctx context.Context, investorID uint64) (*investor.Investor, error) {
	var out *investor.Investor
	err := u.uow.WithinInvestorTx(ctx, investorID, func(r uow.Repos, inv *investor.Investor) error {
		invs, err := r.Investments.ListByInvestor(ctx, investorID)
		if err != nil {
			return err
		}
		inv.Apply(investor.ComputeRollup(invs), u.now())
		if err := r.Investors.UpdateRollup(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, apperr.FromStore(err, investor.ErrNotFound)
	}
	log.Debug().
		Uint64("investor_id", investorID).
		Str("total_invested", out.TotalInvested.String()).
		Int("active", out.ActiveInvestments).
		Msg("investor stats recomputed")
	return out, nil
}
