package approval

import (
	"time"

	"farmfund-backend/internal/domain/apperr"
)

var (
	ErrNotFound = apperr.NotFound("review not found")
)

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Approval records the review decision taken on a pending loan. At most one per loan.
type Approval struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ApprovalID string `gorm:"column:approval_id;size:32;not null;uniqueIndex:ux_approvals_approval_id"`
	// FK to loans.id (numeric)
	LoanID     uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_approvals_loan"`
	ReviewerID string    `gorm:"column:reviewer_id;size:64;not null"`
	Decision   Decision  `gorm:"column:decision;size:16;not null"`
	Note       string    `gorm:"column:note;type:text"`
	ReviewedAt time.Time `gorm:"column:reviewed_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Approval) TableName() string { return "approvals" }
