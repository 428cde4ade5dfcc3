package loan

import (
	"context"
	"strings"
	"time"

	"farmfund-backend/internal/domain/apperr"
	"farmfund-backend/internal/domain/identity"
	"farmfund-backend/internal/domain/loan"
	"farmfund-backend/pkg/id"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Usecase struct {
	repo        loan.Repository
	defaultRate decimal.Decimal
	recentLimit int
	now         func() time.Time
}

func NewUsecase(r loan.Repository, defaultRate decimal.Decimal, recentLimit int) *Usecase {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &Usecase{repo: r, defaultRate: defaultRate, recentLimit: recentLimit, now: func() time.Time { return time.Now().UTC() }}
}

func validateCreate(in CreateLoanInput) error {
	switch {
	case !in.Amount.IsPositive():
		return apperr.Validation("amount must be greater than 0")
	case in.Duration <= 0:
		return apperr.Validation("duration must be at least 1 month")
	case strings.TrimSpace(in.Purpose) == "":
		return apperr.Validation("purpose is required")
	case strings.TrimSpace(in.CropType) == "":
		return apperr.Validation("crop type is required")
	case in.Acreage.IsNegative() || in.ExpectedYield.IsNegative() || in.ExpectedMarketPrice.IsNegative() || in.ProductionCost.IsNegative():
		return apperr.Validation("crop economics must not be negative")
	case in.InterestRate != nil && in.InterestRate.IsNegative():
		return apperr.Validation("interest rate must not be negative")
	case in.RiskLevel != "" && !loan.RiskLevel(in.RiskLevel).Valid():
		return apperr.Validation("risk level must be one of low, medium, high")
	}
	return nil
}

// Create files a pending application for the calling farmer.
func (u *Usecase) Create(ctx context.Context, farmer identity.Actor, in CreateLoanInput) (*LoanDTO, error) {
	if farmer.UserID == "" {
		return nil, apperr.Validation("farmer id is required")
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := u.now()
	l := &loan.Loan{
		LoanID:              id.NewID32(),
		FarmerID:            farmer.UserID,
		FarmerName:          farmer.Name,
		Amount:              in.Amount,
		InterestRate:        u.defaultRate,
		Duration:            in.Duration,
		Purpose:             strings.TrimSpace(in.Purpose),
		Season:              in.Season,
		CropType:            in.CropType,
		RiskLevel:           loan.RiskMedium,
		Acreage:             in.Acreage,
		ExpectedYield:       in.ExpectedYield,
		ExpectedMarketPrice: in.ExpectedMarketPrice,
		ProductionCost:      in.ProductionCost,
		AmountFunded:        decimal.Zero,
		Status:              loan.StatusPending,
		AppliedAt:           now,
		StateUpdatedAt:      now,
	}
	if in.InterestRate != nil && !in.InterestRate.IsZero() {
		l.InterestRate = *in.InterestRate
	}
	if in.RiskLevel != "" {
		l.RiskLevel = loan.RiskLevel(in.RiskLevel)
	}
	// expected profit is fixed at creation
	if in.ExpectedProfit != nil && !in.ExpectedProfit.IsZero() {
		l.ExpectedProfit = *in.ExpectedProfit
	} else {
		l.ExpectedProfit = l.DeriveExpectedProfit()
	}

	if err := u.repo.Create(ctx, l); err != nil {
		return nil, apperr.Persistence(err)
	}
	log.Info().Str("loan_id", l.LoanID).Str("farmer_id", l.FarmerID).Str("amount", l.Amount.String()).Msg("loan application created")
	return toDTO(l), nil
}

// Get returns a loan. Farmers may only read their own applications.
func (u *Usecase) Get(ctx context.Context, caller identity.Actor, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, apperr.FromStore(err, loan.ErrNotFound)
	}
	if caller.Is(identity.RoleFarmer) && l.FarmerID != caller.UserID {
		return nil, loan.ErrForbidden
	}
	return toDTO(l), nil
}

func (u *Usecase) ListMine(ctx context.Context, farmerID string) ([]LoanDTO, error) {
	return u.list(ctx, farmerID, 0)
}

func (u *Usecase) Recent(ctx context.Context, farmerID string) ([]LoanDTO, error) {
	return u.list(ctx, farmerID, u.recentLimit)
}

func (u *Usecase) list(ctx context.Context, farmerID string, limit int) ([]LoanDTO, error) {
	ls, err := u.repo.ListByFarmer(ctx, farmerID, limit)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

// DashboardStats summarizes a farmer's applications.
func (u *Usecase) DashboardStats(ctx context.Context, farmerID string) (*FarmerStatsDTO, error) {
	ls, err := u.repo.ListByFarmer(ctx, farmerID, 0)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	out := &FarmerStatsDTO{TotalLoans: len(ls)}
	funded := decimal.Zero
	var installments []loan.Installment
	for _, l := range ls {
		switch l.Status {
		case loan.StatusApproved, loan.StatusFunded, loan.StatusActive, loan.StatusDisbursed:
			out.ActiveLoans++
		}
		funded = funded.Add(l.AmountFunded)
		installments = append(installments, l.Installments...)
	}
	out.AmountFunded = funded.InexactFloat64()
	out.RepaymentRate = loan.RepaymentRate(installments)
	return out, nil
}

func toDTO(l *loan.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:              l.LoanID,
		FarmerID:            l.FarmerID,
		FarmerName:          l.FarmerName,
		Amount:              l.Amount.InexactFloat64(),
		Purpose:             l.Purpose,
		Duration:            l.Duration,
		Season:              l.Season,
		CropType:            l.CropType,
		Acreage:             l.Acreage.InexactFloat64(),
		ExpectedYield:       l.ExpectedYield.InexactFloat64(),
		ExpectedMarketPrice: l.ExpectedMarketPrice.InexactFloat64(),
		ProductionCost:      l.ProductionCost.InexactFloat64(),
		ExpectedProfit:      l.ExpectedProfit.InexactFloat64(),
		InterestRate:        l.InterestRate.InexactFloat64(),
		RiskLevel:           string(l.RiskLevel),
		AmountFunded:        l.AmountFunded.InexactFloat64(),
		AmountRemaining:     l.Remaining().InexactFloat64(),
		FundingProgress:     l.FundingProgress().InexactFloat64(),
		Status:              string(l.Status),
		AppliedAt:           l.AppliedAt,
		ApprovedAt:          l.ApprovedAt,
		Fundings:            make([]FundingDTO, 0, len(l.Fundings)),
		RepaymentSchedule:   make([]InstallmentDTO, 0, len(l.Installments)),
		CreatedAt:           l.CreatedAt,
	}
	for _, f := range l.Fundings {
		dto.Fundings = append(dto.Fundings, FundingDTO{
			InvestorID:   f.InvestorID,
			InvestorName: f.InvestorName,
			Amount:       f.Amount.InexactFloat64(),
			Date:         f.FundedAt,
		})
	}
	for _, it := range l.Installments {
		dto.RepaymentSchedule = append(dto.RepaymentSchedule, InstallmentDTO{
			Seq:        it.Seq,
			DueDate:    it.DueDate,
			Amount:     it.Amount.InexactFloat64(),
			Status:     string(it.Status),
			PaidDate:   it.PaidDate,
			PaidAmount: it.PaidAmount.InexactFloat64(),
		})
	}
	return dto
}
