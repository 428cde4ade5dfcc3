package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"farmfund-backend/internal/domain/apperr"
	"farmfund-backend/internal/domain/investment"
	"farmfund-backend/internal/domain/investor"
	"farmfund-backend/internal/domain/uow"
	"farmfund-backend/internal/testutil/investmentmock"
	"farmfund-backend/internal/testutil/investormock"
	"farmfund-backend/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestRecompute_WritesFullRollup(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var written *investor.Investor
	repos := uow.Repos{
		Investors: &investormock.Repo{
			GetByIDForUpdateFn: func(_ context.Context, id uint64) (*investor.Investor, error) {
				// stale values must be overwritten
				return &investor.Investor{ID: id, TotalInvested: dec("1"), AverageROI: dec("99")}, nil
			},
			UpdateRollupFn: func(_ context.Context, inv *investor.Investor) error {
				written = inv
				return nil
			},
		},
		Investments: &investmentmock.Repo{
			ListByInvestorFn: func(_ context.Context, id uint64) ([]investment.Investment, error) {
				assert.Equal(t, uint64(4), id)
				return []investment.Investment{
					{Amount: dec("10000"), Status: investment.StatusCompleted, ActualReturn: ptr(dec("11000"))},
					{Amount: dec("20000"), Status: investment.StatusCompleted, ActualReturn: ptr(dec("21000"))},
					{Amount: dec("5000"), Status: investment.StatusActive},
				}, nil
			},
		},
	}
	uc := NewUsecase(uowmock.Passthrough(repos))
	uc.now = func() time.Time { return now }

	out, err := uc.Recompute(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, written)
	assert.Same(t, written, out)
	assert.True(t, out.TotalInvested.Equal(dec("35000")))
	assert.True(t, out.TotalReturns.Equal(dec("32000")))
	assert.Equal(t, 1, out.ActiveInvestments)
	assert.Equal(t, 2, out.CompletedInvestments)
	assert.True(t, out.AverageROI.Equal(dec("7.5")), "avg roi = %s", out.AverageROI)
	assert.Equal(t, 2, out.ROISampleSize)
	require.NotNil(t, out.StatsUpdatedAt)
	assert.True(t, out.StatsUpdatedAt.Equal(now))
}

func TestRecompute_EmptySetResetsROI(t *testing.T) {
	repos := uow.Repos{
		Investors: &investormock.Repo{
			GetByIDForUpdateFn: func(context.Context, uint64) (*investor.Investor, error) {
				return &investor.Investor{ID: 1, AverageROI: dec("12.5"), ROISampleSize: 3}, nil
			},
		},
		Investments: &investmentmock.Repo{
			ListByInvestorFn: func(context.Context, uint64) ([]investment.Investment, error) { return nil, nil },
		},
	}
	out, err := NewUsecase(uowmock.Passthrough(repos)).Recompute(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, out.AverageROI.IsZero())
	assert.Equal(t, 0, out.ROISampleSize)
	assert.True(t, out.TotalInvested.IsZero())
}

func TestRecompute_Errors(t *testing.T) {
	missing := uow.Repos{
		Investors: &investormock.Repo{
			GetByIDForUpdateFn: func(context.Context, uint64) (*investor.Investor, error) { return nil, gorm.ErrRecordNotFound },
		},
	}
	_, err := NewUsecase(uowmock.Passthrough(missing)).Recompute(context.Background(), 9)
	assert.ErrorIs(t, err, investor.ErrNotFound)

	broken := uow.Repos{
		Investors: &investormock.Repo{
			GetByIDForUpdateFn: func(context.Context, uint64) (*investor.Investor, error) { return &investor.Investor{ID: 9}, nil },
			UpdateRollupFn:     func(context.Context, *investor.Investor) error { return errors.New("lock wait timeout") },
		},
		Investments: &investmentmock.Repo{
			ListByInvestorFn: func(context.Context, uint64) ([]investment.Investment, error) { return nil, nil },
		},
	}
	_, err = NewUsecase(uowmock.Passthrough(broken)).Recompute(context.Background(), 9)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}
