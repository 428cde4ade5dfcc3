package funding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"farmfund-backend/internal/adapter/repository/gormrepo"
	"farmfund-backend/internal/domain/investment"
	"farmfund-backend/internal/domain/loan"
	"farmfund-backend/internal/domain/transaction"
	"farmfund-backend/internal/testutil/testdb"
	"farmfund-backend/internal/usecase/approval"
	"farmfund-backend/internal/usecase/stats"
	"farmfund-backend/pkg/id"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ledger struct {
	db    *gorm.DB
	loans *gormrepo.LoanRepository
	uc    *Usecase
}

func newLedger(t *testing.T) *ledger {
	db := testdb.Open(t)
	guow := gormrepo.NewGormUoW(db)
	return &ledger{
		db:    db,
		loans: gormrepo.NewLoanRepository(db),
		uc:    NewUsecase(guow, stats.NewUsecase(guow), nil, dec("1000")),
	}
}

// approvedLoan files a pending application and runs it through review.
func (lg *ledger) approvedLoan(t *testing.T, amount string) string {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	l := &loan.Loan{
		LoanID:         id.NewID32(),
		FarmerID:       "farmer-1",
		FarmerName:     "Ravi",
		Amount:         dec(amount),
		InterestRate:   dec("12"),
		Duration:       6,
		Purpose:        "Seeds",
		CropType:       "Rice",
		RiskLevel:      loan.RiskMedium,
		Status:         loan.StatusPending,
		AppliedAt:      now,
		StateUpdatedAt: now,
	}
	require.NoError(t, lg.loans.Create(ctx, l))
	_, err := approval.NewUsecase(gormrepo.NewGormUoW(lg.db)).Approve(ctx, approval.ReviewInput{LoanID: l.LoanID, ReviewerID: "admin"})
	require.NoError(t, err)
	return l.LoanID
}

func TestInvest_Ledger_FillsAndCloses(t *testing.T) {
	lg := newLedger(t)
	ctx := context.Background()
	loanID := lg.approvedLoan(t, "50000")

	first, err := lg.uc.Invest(ctx, InvestInput{LoanID: loanID, UserID: "inv-a", InvestorName: "Asha", Amount: dec("20000")})
	require.NoError(t, err)
	assert.Equal(t, "approved", first.LoanStatus)
	assert.False(t, first.StatsStale)

	second, err := lg.uc.Invest(ctx, InvestInput{LoanID: loanID, UserID: "inv-b", InvestorName: "Bima", Amount: dec("30000")})
	require.NoError(t, err)
	assert.Equal(t, "funded", second.LoanStatus)

	l, err := lg.loans.GetByLoanID(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusFunded, l.Status)
	assert.True(t, l.AmountFunded.Equal(dec("50000")), "funded = %s", l.AmountFunded)
	require.Len(t, l.Fundings, 2)
	assert.True(t, l.Fundings[0].Amount.Equal(dec("20000")))
	assert.Equal(t, "Bima", l.Fundings[1].InvestorName)

	_, err = lg.uc.Invest(ctx, InvestInput{LoanID: loanID, UserID: "inv-c", Amount: dec("1000")})
	require.ErrorIs(t, err, loan.ErrNotFundable)

	// rollup was refreshed for the second investor
	invs := gormrepo.NewInvestorRepository(lg.db)
	b, err := invs.GetByUserID(ctx, "inv-b")
	require.NoError(t, err)
	assert.True(t, b.TotalInvested.Equal(dec("30000")))
	assert.Equal(t, 1, b.ActiveInvestments)
	require.NotNil(t, b.StatsUpdatedAt)

	// investment carries a prorated schedule
	stakes, err := gormrepo.NewInvestmentRepository(lg.db).ListByInvestor(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, stakes, 1)
	full, err := gormrepo.NewInvestmentRepository(lg.db).GetByInvestmentID(ctx, stakes[0].InvestmentID)
	require.NoError(t, err)
	assert.Len(t, full.Installments, 6)
	assert.True(t, full.ExpectedReturn.Equal(dec("31800")))

	txns, err := gormrepo.NewTransactionRepository(lg.db).ListByInvestor(ctx, b.ID, 50)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, transaction.TypeInvestment, txns[0].Type)
}

func TestInvest_Ledger_OverfundLeavesStateUnchanged(t *testing.T) {
	lg := newLedger(t)
	ctx := context.Background()
	loanID := lg.approvedLoan(t, "50000")

	_, err := lg.uc.Invest(ctx, InvestInput{LoanID: loanID, UserID: "inv-a", Amount: dec("20000")})
	require.NoError(t, err)

	_, err = lg.uc.Invest(ctx, InvestInput{LoanID: loanID, UserID: "inv-b", Amount: dec("40000")})
	require.ErrorIs(t, err, loan.ErrInsufficientCapacity)
	assert.Contains(t, err.Error(), "30000.00")

	l, err := lg.loans.GetByLoanID(ctx, loanID)
	require.NoError(t, err)
	assert.True(t, l.AmountFunded.Equal(dec("20000")))
	assert.Equal(t, loan.StatusApproved, l.Status)
	assert.Len(t, l.Fundings, 1)

	var count int64
	require.NoError(t, lg.db.Model(&investment.Investment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, lg.db.Model(&transaction.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestInvest_Ledger_ConcurrentNeverOverfunds(t *testing.T) {
	lg := newLedger(t)
	ctx := context.Background()
	loanID := lg.approvedLoan(t, "50000")

	const workers = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := lg.uc.Invest(ctx, InvestInput{LoanID: loanID, UserID: id.NewID32(), Amount: dec("10000")})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, loan.ErrNotFundable), errors.Is(err, loan.ErrInsufficientCapacity), errors.Is(err, loan.ErrConcurrentFunding):
			default:
				t.Errorf("worker %d: unexpected error %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, accepted)
	l, err := lg.loans.GetByLoanID(ctx, loanID)
	require.NoError(t, err)
	assert.True(t, l.AmountFunded.Equal(dec("50000")), "funded = %s", l.AmountFunded)
	assert.Equal(t, loan.StatusFunded, l.Status)

	sum := dec("0")
	for _, f := range l.Fundings {
		sum = sum.Add(f.Amount)
	}
	assert.True(t, sum.Equal(l.AmountFunded), "fundings must add up to amount funded")
}
