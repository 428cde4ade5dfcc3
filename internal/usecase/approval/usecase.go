package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	domainApproval "farmfund-backend/internal/domain/approval"
	"farmfund-backend/internal/domain/apperr"
	domainLoan "farmfund-backend/internal/domain/loan"
	"farmfund-backend/internal/domain/uow"
	"farmfund-backend/pkg/id"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Invalidator drops cached marketplace pages.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Usecase struct {
	uow    uow.UnitOfWork
	market Invalidator
	now    func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// WithMarketplace makes approvals visible on the marketplace without waiting
// for cached pages to expire.
func (u *Usecase) WithMarketplace(m Invalidator) *Usecase {
	u.market = m
	return u
}

// Approve moves a pending loan to approved and lays out its repayment schedule.
func (u *Usecase) Approve(ctx context.Context, in ReviewInput) (*ReviewDTO, error) {
	return u.review(ctx, in, domainApproval.DecisionApproved)
}

// Reject closes a pending loan. A rejected loan never reaches the marketplace.
func (u *Usecase) Reject(ctx context.Context, in ReviewInput) (*ReviewDTO, error) {
	if strings.TrimSpace(in.Note) == "" {
		return nil, apperr.Validation("rejection note is required")
	}
	return u.review(ctx, in, domainApproval.DecisionRejected)
}

func (u *Usecase) review(ctx context.Context, in ReviewInput, d domainApproval.Decision) (*ReviewDTO, error) {
	if in.LoanID == "" || in.ReviewerID == "" {
		return nil, apperr.Validation("loan id and reviewer are required")
	}
	var dto *ReviewDTO

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		// only pending -> approved|rejected
		if l.Status != domainLoan.StatusPending {
			if l.Status == domainLoan.StatusApproved {
				return domainLoan.ErrAlreadyApproved
			}
			return apperr.Detail(domainLoan.ErrInvalidTransition, "loan is %s and can no longer be reviewed", l.Status)
		}

		if _, err := r.Approvals.GetByLoanID(ctx, l.ID); err == nil {
			return domainLoan.ErrAlreadyApproved
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := u.now()
		a := &domainApproval.Approval{
			ApprovalID: id.NewID32(),
			LoanID:     l.ID,
			ReviewerID: in.ReviewerID,
			Decision:   d,
			Note:       strings.TrimSpace(in.Note),
			ReviewedAt: now,
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}

		var schedule []domainLoan.Installment
		if d == domainApproval.DecisionApproved {
			l.Status = domainLoan.StatusApproved
			l.ApprovedAt = &now
			schedule = domainLoan.BuildSchedule(l.Amount, l.InterestRate, l.Duration, now)
		} else {
			l.Status = domainLoan.StatusRejected
		}
		l.StateUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if schedule != nil {
			if err := r.Loans.ReplaceSchedule(ctx, l.ID, schedule); err != nil {
				return err
			}
		}

		dto = &ReviewDTO{
			ApprovalID:   a.ApprovalID,
			LoanID:       l.LoanID,
			Decision:     string(a.Decision),
			Note:         a.Note,
			ReviewedAt:   a.ReviewedAt,
			LoanStatus:   string(l.Status),
			Installments: len(schedule),
		}
		return nil
	})
	if err != nil {
		return nil, apperr.FromStore(err, domainLoan.ErrNotFound)
	}

	log.Info().Str("loan_id", dto.LoanID).Str("decision", dto.Decision).Str("reviewer", in.ReviewerID).Msg("loan reviewed")
	if d == domainApproval.DecisionApproved && u.market != nil {
		if err := u.market.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("marketplace cache invalidation failed")
		}
	}
	return dto, nil
}
