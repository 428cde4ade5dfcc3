package investor

import (
	"context"
	"strings"
	"time"

	"farmfund-backend/internal/domain/apperr"
	"farmfund-backend/internal/domain/identity"
	"farmfund-backend/internal/domain/investment"
	domain "farmfund-backend/internal/domain/investor"
	"farmfund-backend/internal/domain/loan"
	"farmfund-backend/internal/domain/transaction"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const monthlyWindow = 30 * 24 * time.Hour

type Usecase struct {
	investors    domain.Repository
	investments  investment.Repository
	transactions transaction.Repository
	txnLimit     int
	now          func() time.Time
}

func NewUsecase(investors domain.Repository, investments investment.Repository, transactions transaction.Repository, txnLimit int) *Usecase {
	if txnLimit <= 0 {
		txnLimit = 50
	}
	return &Usecase{
		investors:    investors,
		investments:  investments,
		transactions: transactions,
		txnLimit:     txnLimit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) profile(ctx context.Context, a identity.Actor) (*domain.Investor, error) {
	inv, err := u.investors.GetOrCreate(ctx, a.UserID, a.Name)
	if err != nil {
		return nil, apperr.FromStore(err, domain.ErrNotFound)
	}
	return inv, nil
}

// Profile returns the caller's investor profile, creating it with defaults on first use.
func (u *Usecase) Profile(ctx context.Context, a identity.Actor) (*ProfileDTO, error) {
	inv, err := u.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	return toProfileDTO(inv), nil
}

func (in UpdateProfileInput) validate() error {
	if in.InvestmentCapacity != nil && !in.InvestmentCapacity.IsPositive() {
		return apperr.Validation("investment capacity must be greater than 0")
	}
	if in.RiskTolerance != nil && !loan.RiskLevel(*in.RiskTolerance).Valid() {
		return apperr.Validation("risk tolerance must be one of low, medium, high")
	}
	for _, c := range in.PreferredCrops {
		if !domain.ValidCrop(c) {
			return apperr.Validation("unsupported crop %q", c)
		}
	}
	return nil
}

func (u *Usecase) UpdateProfile(ctx context.Context, a identity.Actor, in UpdateProfileInput) (*ProfileDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	inv, err := u.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	if in.InvestmentCapacity != nil {
		inv.InvestmentCapacity = *in.InvestmentCapacity
	}
	if in.RiskTolerance != nil {
		inv.RiskTolerance = *in.RiskTolerance
	}
	if in.PreferredCrops != nil {
		inv.PreferredCrops = in.PreferredCrops
	}
	if in.PreferredRegions != nil {
		regions := make([]string, 0, len(in.PreferredRegions))
		for _, r := range in.PreferredRegions {
			if r = strings.TrimSpace(r); r != "" {
				regions = append(regions, r)
			}
		}
		inv.PreferredRegions = regions
	}
	if err := u.investors.UpdateProfile(ctx, inv); err != nil {
		return nil, apperr.Persistence(err)
	}
	log.Info().Uint64("investor_id", inv.ID).Msg("investor profile updated")
	return toProfileDTO(inv), nil
}

// Portfolio lists the caller's investments, newest first.
func (u *Usecase) Portfolio(ctx context.Context, a identity.Actor) ([]InvestmentDTO, error) {
	inv, err := u.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	invs, err := u.investments.ListByInvestor(ctx, inv.ID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	out := make([]InvestmentDTO, 0, len(invs))
	for i := range invs {
		out = append(out, toInvestmentDTO(&invs[i]))
	}
	return out, nil
}

// Investment returns one of the caller's stakes with its repayment schedule.
// Stakes owned by someone else read as not found.
func (u *Usecase) Investment(ctx context.Context, a identity.Actor, investmentID string) (*InvestmentDTO, error) {
	inv, err := u.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	i, err := u.investments.GetByInvestmentID(ctx, investmentID)
	if err != nil {
		return nil, apperr.FromStore(err, investment.ErrNotFound)
	}
	if i.InvestorID != inv.ID {
		return nil, investment.ErrNotFound
	}
	dto := toInvestmentDTO(i)
	return &dto, nil
}

// Transactions returns the latest ledger lines of the caller.
func (u *Usecase) Transactions(ctx context.Context, a identity.Actor) ([]TransactionDTO, error) {
	inv, err := u.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	txns, err := u.transactions.ListByInvestor(ctx, inv.ID, u.txnLimit)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	out := make([]TransactionDTO, 0, len(txns))
	for _, t := range txns {
		out = append(out, TransactionDTO{
			TransactionID: t.TransactionID,
			Type:          string(t.Type),
			Amount:        t.Amount.InexactFloat64(),
			Description:   t.Description,
			LoanID:        t.LoanRef,
			InvestmentID:  t.InvestmentRef,
			Status:        string(t.Status),
			CreatedAt:     t.CreatedAt,
		})
	}
	return out, nil
}

// Dashboard combines the stored rollup with figures derived on read.
func (u *Usecase) Dashboard(ctx context.Context, a identity.Actor) (*DashboardDTO, error) {
	inv, err := u.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	recent, err := u.transactions.ListByInvestorSince(ctx, inv.ID, transaction.TypeReturn, transaction.StatusCompleted, u.now().Add(-monthlyWindow))
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	monthly := decimal.Zero
	for _, t := range recent {
		monthly = monthly.Add(t.Amount)
	}

	invs, err := u.investments.ListByInvestor(ctx, inv.ID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	pending := decimal.Zero
	for _, i := range invs {
		if i.Status == investment.StatusActive {
			pending = pending.Add(i.ExpectedReturn.Sub(i.Amount))
		}
	}

	return &DashboardDTO{
		TotalInvested:        inv.TotalInvested.InexactFloat64(),
		TotalReturns:         inv.TotalReturns.InexactFloat64(),
		ActiveInvestments:    inv.ActiveInvestments,
		CompletedInvestments: inv.CompletedInvestments,
		AverageROI:           inv.AverageROI.InexactFloat64(),
		PortfolioValue:       inv.TotalInvested.Add(inv.TotalReturns).InexactFloat64(),
		MonthlyReturns:       monthly.InexactFloat64(),
		PendingReturns:       pending.InexactFloat64(),
	}, nil
}

func toProfileDTO(inv *domain.Investor) *ProfileDTO {
	crops, regions := inv.PreferredCrops, inv.PreferredRegions
	if crops == nil {
		crops = []string{}
	}
	if regions == nil {
		regions = []string{}
	}
	return &ProfileDTO{
		UserID:               inv.UserID,
		Name:                 inv.Name,
		InvestmentCapacity:   inv.InvestmentCapacity.InexactFloat64(),
		RiskTolerance:        inv.RiskTolerance,
		PreferredCrops:       crops,
		PreferredRegions:     regions,
		VerificationStatus:   string(inv.VerificationStatus),
		TotalInvested:        inv.TotalInvested.InexactFloat64(),
		TotalReturns:         inv.TotalReturns.InexactFloat64(),
		ActiveInvestments:    inv.ActiveInvestments,
		CompletedInvestments: inv.CompletedInvestments,
		AverageROI:           inv.AverageROI.InexactFloat64(),
		StatsUpdatedAt:       inv.StatsUpdatedAt,
	}
}

func toInvestmentDTO(i *investment.Investment) InvestmentDTO {
	dto := InvestmentDTO{
		InvestmentID:   i.InvestmentID,
		LoanID:         i.LoanRef,
		FarmerID:       i.FarmerID,
		FarmerName:     i.FarmerName,
		Amount:         i.Amount.InexactFloat64(),
		ExpectedReturn: i.ExpectedReturn.InexactFloat64(),
		InterestRate:   i.InterestRate.InexactFloat64(),
		Duration:       i.Duration,
		CropType:       i.CropType,
		RiskLevel:      i.RiskLevel,
		Purpose:        i.Purpose,
		Status:         string(i.Status),
		InvestmentDate: i.InvestmentDate,
		SettledAt:      i.SettledAt,
	}
	if i.ActualReturn != nil {
		v := i.ActualReturn.InexactFloat64()
		dto.ActualReturn = &v
	}
	for _, it := range i.Installments {
		dto.RepaymentSchedule = append(dto.RepaymentSchedule, InstallmentDTO{
			Seq:     it.Seq,
			DueDate: it.DueDate,
			Amount:  it.Amount.InexactFloat64(),
			Status:  it.Status,
		})
	}
	return dto
}
