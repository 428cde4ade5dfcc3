package investment

import (
	"time"

	"farmfund-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive        Status = "active"
	StatusCompleted     Status = "completed"
	StatusDefaulted     Status = "defaulted"
	StatusPartialReturn Status = "partial_return"
)

var (
	ErrNotFound          = apperr.NotFound("investment not found")
	ErrInvalidAmount     = apperr.Validation("investment amount is below the minimum")
	ErrNotSettleable     = apperr.Conflict("investment is already settled")
	ErrInvalidSettlement = apperr.Validation("invalid settlement status")
)

// Investment is one investor's stake in one loan. Loan terms are copied at
// creation and never follow later loan edits. Rows are never deleted.
type Investment struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID string `gorm:"size:32;uniqueIndex:ux_investments_investment_id" json:"investment_id"`
	InvestorID   uint64 `gorm:"not null;index:idx_investments_investor" json:"-"`
	LoanID       uint64 `gorm:"not null;index:idx_investments_loan" json:"-"`
	LoanRef      string `gorm:"size:32;not null" json:"loan_id"`
	FarmerID     string `gorm:"size:64" json:"farmer_id"`
	FarmerName   string `gorm:"size:128" json:"farmer_name"`

	Amount         decimal.Decimal  `gorm:"type:decimal(18,2);not null" json:"amount"`
	ExpectedReturn decimal.Decimal  `gorm:"type:decimal(18,2);not null" json:"expected_return"`
	ActualReturn   *decimal.Decimal `gorm:"type:decimal(18,2)" json:"actual_return,omitempty"`
	InterestRate   decimal.Decimal  `gorm:"type:decimal(6,2);not null" json:"interest_rate"`

	Duration  int    `gorm:"not null" json:"duration"`
	CropType  string `gorm:"size:32" json:"crop_type"`
	RiskLevel string `gorm:"size:16" json:"risk_level"`
	Purpose   string `gorm:"size:255" json:"purpose"`

	Status         Status     `gorm:"size:16;index:idx_investments_status;default:'active'" json:"status"`
	InvestmentDate time.Time  `gorm:"not null" json:"investment_date"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Installments []Installment `gorm:"foreignKey:InvestmentID;references:ID" json:"repayment_schedule,omitempty"`
}

func (Investment) TableName() string { return "investments" }

// Installment is the investor's prorated share of a loan installment.
type Installment struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID uint64          `gorm:"not null;index:idx_inv_installments_investment" json:"-"`
	Seq          int             `gorm:"not null" json:"seq"`
	DueDate      time.Time       `gorm:"not null" json:"due_date"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status       string          `gorm:"size:16;default:'pending'" json:"status"`
}

func (Installment) TableName() string { return "investment_installments" }

// Settleable reports whether settlement may still change the outcome.
func (i *Investment) Settleable() bool {
	return i.Status == StatusActive || i.Status == StatusPartialReturn
}

// ValidSettlement lists the outcomes a settlement may record.
func ValidSettlement(s Status) bool {
	return s == StatusCompleted || s == StatusDefaulted || s == StatusPartialReturn
}
