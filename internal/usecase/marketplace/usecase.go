package marketplace

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"farmfund-backend/internal/domain/apperr"
	"farmfund-backend/internal/domain/loan"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Cache keeps rendered pages for a short while.
type Cache interface {
	Get(ctx context.Context, key string) (b []byte, ver int64, ok bool, err error)
	Set(ctx context.Context, ver int64, key string, b []byte) error
}

var hundred = decimal.NewFromInt(100)

type Usecase struct {
	repo    loan.Repository
	cache   Cache
	limit   int
	minimum decimal.Decimal
}

// NewUsecase wires the marketplace. cache may be nil.
func NewUsecase(r loan.Repository, cache Cache, limit int, minimum decimal.Decimal) *Usecase {
	if limit <= 0 {
		limit = 50
	}
	return &Usecase{repo: r, cache: cache, limit: limit, minimum: minimum}
}

func (f Filter) validate() error {
	if f.MinAmount != nil && f.MinAmount.IsNegative() {
		return apperr.Validation("minAmount must not be negative")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return apperr.Validation("minAmount must not exceed maxAmount")
	}
	if f.MaxDuration < 0 {
		return apperr.Validation("maxDuration must not be negative")
	}
	for _, r := range f.RiskLevels {
		if !loan.RiskLevel(r).Valid() {
			return apperr.Validation("unknown risk level %q", r)
		}
	}
	return nil
}

// key is stable for equal filters regardless of list order.
func (f Filter) key() string {
	var b strings.Builder
	if f.MinAmount != nil {
		b.WriteString("min=" + f.MinAmount.String())
	}
	if f.MaxAmount != nil {
		b.WriteString("|max=" + f.MaxAmount.String())
	}
	crops := append([]string(nil), f.CropTypes...)
	sort.Strings(crops)
	risks := append([]string(nil), f.RiskLevels...)
	sort.Strings(risks)
	b.WriteString("|crops=" + strings.Join(crops, ","))
	b.WriteString("|risk=" + strings.Join(risks, ","))
	b.WriteString("|dur=" + strconv.Itoa(f.MaxDuration))
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:12])
}

// List returns approved loans that still accept investment, newest first.
func (u *Usecase) List(ctx context.Context, f Filter) ([]LoanCard, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	key := f.key()
	// the generation is taken before the store read so a concurrent
	// Invalidate leaves this page behind
	var (
		ver       int64
		cacheable bool
	)
	if u.cache != nil {
		b, v, ok, err := u.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("marketplace cache read failed")
		case ok:
			var cards []LoanCard
			if err := json.Unmarshal(b, &cards); err == nil {
				return cards, nil
			}
			ver, cacheable = v, true
		default:
			ver, cacheable = v, true
		}
	}

	risks := make([]loan.RiskLevel, 0, len(f.RiskLevels))
	for _, r := range f.RiskLevels {
		risks = append(risks, loan.RiskLevel(r))
	}
	ls, err := u.repo.ListFundable(ctx, loan.FundableFilter{
		MinAmount:   f.MinAmount,
		MaxAmount:   f.MaxAmount,
		CropTypes:   f.CropTypes,
		RiskLevels:  risks,
		MaxDuration: f.MaxDuration,
		Limit:       u.limit,
	})
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	cards := make([]LoanCard, 0, len(ls))
	for i := range ls {
		cards = append(cards, u.project(&ls[i]))
	}

	if cacheable {
		if b, err := json.Marshal(cards); err == nil {
			if err := u.cache.Set(ctx, ver, key, b); err != nil {
				log.Warn().Err(err).Msg("marketplace cache write failed")
			}
		}
	}
	return cards, nil
}

func (u *Usecase) project(l *loan.Loan) LoanCard {
	progress := l.FundingProgress()
	status := "funding"
	if progress.GreaterThanOrEqual(hundred) {
		status = "funded"
	}
	investors := map[uint64]struct{}{}
	for _, f := range l.Fundings {
		investors[f.InvestorID] = struct{}{}
	}
	return LoanCard{
		LoanID:              l.LoanID,
		FarmerID:            l.FarmerID,
		FarmerName:          l.FarmerName,
		Amount:              l.Amount.InexactFloat64(),
		AmountFunded:        l.AmountFunded.InexactFloat64(),
		AmountRemaining:     l.Remaining().InexactFloat64(),
		FundingProgress:     progress.InexactFloat64(),
		Status:              status,
		InterestRate:        l.InterestRate.InexactFloat64(),
		Duration:            l.Duration,
		Purpose:             l.Purpose,
		Season:              l.Season,
		CropType:            l.CropType,
		RiskLevel:           string(l.RiskLevel),
		Acreage:             l.Acreage.InexactFloat64(),
		ExpectedYield:       l.ExpectedYield.InexactFloat64(),
		ExpectedMarketPrice: l.ExpectedMarketPrice.InexactFloat64(),
		ExpectedProfit:      l.ExpectedProfit.InexactFloat64(),
		Investors:           len(investors),
		MinimumInvestment:   u.minimum.InexactFloat64(),
		CreatedAt:           l.CreatedAt,
	}
}
