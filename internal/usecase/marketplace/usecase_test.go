package marketplace

import (
	"context"
	"errors"
	"testing"
	"time"

	"farmfund-backend/internal/domain/apperr"
	"farmfund-backend/internal/domain/loan"
	"farmfund-backend/internal/infrastructure/cache"
	"farmfund-backend/internal/testutil/loanmock"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleLoans() []loan.Loan {
	return []loan.Loan{
		{
			LoanID: "L2", FarmerName: "Ravi", Amount: dec("50000"), AmountFunded: dec("20000"),
			InterestRate: dec("12"), Duration: 6, CropType: "Rice", RiskLevel: loan.RiskLow,
			Status: loan.StatusApproved, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Fundings: []loan.Funding{{InvestorID: 1}, {InvestorID: 2}, {InvestorID: 1}},
		},
		{
			LoanID: "L1", FarmerName: "Sita", Amount: dec("10000"), AmountFunded: decimal.Zero,
			InterestRate: dec("14"), Duration: 12, CropType: "Wheat", RiskLevel: loan.RiskHigh,
			Status: loan.StatusApproved, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestList_ProjectsCards(t *testing.T) {
	var got loan.FundableFilter
	repo := &loanmock.Repo{
		ListFundableFn: func(_ context.Context, f loan.FundableFilter) ([]loan.Loan, error) {
			got = f
			return sampleLoans(), nil
		},
	}
	uc := NewUsecase(repo, nil, 0, dec("1000"))

	floor, ceil := dec("5000"), dec("60000")
	cards, err := uc.List(context.Background(), Filter{
		MinAmount: &floor, MaxAmount: &ceil, CropTypes: []string{"Rice", "Wheat"}, RiskLevels: []string{"low", "high"}, MaxDuration: 12,
	})
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, 50, got.Limit, "default cap")
	assert.Equal(t, []loan.RiskLevel{loan.RiskLow, loan.RiskHigh}, got.RiskLevels)
	assert.Equal(t, 12, got.MaxDuration)
	assert.True(t, got.MinAmount.Equal(floor))

	c := cards[0]
	assert.Equal(t, "L2", c.LoanID)
	assert.Equal(t, float64(30000), c.AmountRemaining)
	assert.Equal(t, float64(40), c.FundingProgress)
	assert.Equal(t, "funding", c.Status)
	assert.Equal(t, 2, c.Investors)
	assert.Equal(t, float64(1000), c.MinimumInvestment)
	assert.Equal(t, float64(0), cards[1].FundingProgress)
}

func TestList_FilterValidation(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, nil, 50, dec("1000"))
	lo, hi := dec("9000"), dec("1000")
	neg := dec("-1")

	for name, f := range map[string]Filter{
		"min above max": {MinAmount: &lo, MaxAmount: &hi},
		"negative min":  {MinAmount: &neg},
		"bad risk":      {RiskLevels: []string{"extreme"}},
		"neg duration":  {MaxDuration: -1},
	} {
		_, err := uc.List(context.Background(), f)
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}
}

func TestList_RepoFailureIsPersistence(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{
		ListFundableFn: func(context.Context, loan.FundableFilter) ([]loan.Loan, error) {
			return nil, errors.New("too many connections")
		},
	}, nil, 50, dec("1000"))
	_, err := uc.List(context.Background(), Filter{})
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

func TestFilterKey_OrderInsensitive(t *testing.T) {
	a := Filter{CropTypes: []string{"Rice", "Wheat"}, RiskLevels: []string{"low", "high"}}
	b := Filter{CropTypes: []string{"Wheat", "Rice"}, RiskLevels: []string{"high", "low"}}
	assert.Equal(t, a.key(), b.key())
	assert.NotEqual(t, a.key(), Filter{}.key())
}

func TestList_CachedUntilInvalidated(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	pages := cache.NewPageCache(rdb, "marketplace", time.Minute)

	calls := 0
	repo := &loanmock.Repo{
		ListFundableFn: func(context.Context, loan.FundableFilter) ([]loan.Loan, error) {
			calls++
			return sampleLoans(), nil
		},
	}
	uc := NewUsecase(repo, pages, 50, dec("1000"))
	ctx := context.Background()

	first, err := uc.List(ctx, Filter{})
	require.NoError(t, err)
	second, err := uc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second read must come from cache")
	assert.Equal(t, first[0].LoanID, second[0].LoanID)
	assert.Equal(t, first[0].AmountRemaining, second[0].AmountRemaining)

	require.NoError(t, pages.Invalidate(ctx))
	_, err = uc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestList_InvalidateDuringReadDropsPage(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	pages := cache.NewPageCache(rdb, "marketplace", time.Minute)
	ctx := context.Background()

	calls := 0
	repo := &loanmock.Repo{
		ListFundableFn: func(context.Context, loan.FundableFilter) ([]loan.Loan, error) {
			calls++
			ls := sampleLoans()
			if calls == 1 {
				// a funding commits while this read is in flight
				require.NoError(t, pages.Invalidate(ctx))
				return ls, nil
			}
			ls[0].AmountFunded = dec("50000")
			return ls, nil
		},
	}
	uc := NewUsecase(repo, pages, 50, dec("1000"))

	first, err := uc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, float64(20000), first[0].AmountFunded)

	second, err := uc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "page read before the invalidation must not be served")
	assert.Equal(t, float64(50000), second[0].AmountFunded)
}

func TestList_CacheDownFallsBackToStore(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	s.Close()

	uc := NewUsecase(&loanmock.Repo{
		ListFundableFn: func(context.Context, loan.FundableFilter) ([]loan.Loan, error) { return sampleLoans(), nil },
	}, cache.NewPageCache(rdb, "marketplace", time.Minute), 50, dec("1000"))
	cards, err := uc.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}
