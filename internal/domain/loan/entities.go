package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusFunded    Status = "funded"
	StatusActive    Status = "active"
	StatusDisbursed Status = "disbursed"
	StatusCompleted Status = "completed"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) Valid() bool { return r == RiskLow || r == RiskMedium || r == RiskHigh }

type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

// Loan is a farmer's funding request. AmountFunded always equals the sum of Fundings.
type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	FarmerID   string `gorm:"size:64;index:idx_loans_farmer" json:"farmer_id"`
	FarmerName string `gorm:"size:128" json:"farmer_name"`

	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	InterestRate decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"interest_rate"`
	Duration     int             `gorm:"not null" json:"duration"`
	Purpose      string          `gorm:"size:255" json:"purpose"`
	Season       string          `gorm:"size:32" json:"season"`
	CropType     string          `gorm:"size:32;index:idx_loans_crop" json:"crop_type"`
	RiskLevel    RiskLevel       `gorm:"size:16;default:'medium'" json:"risk_level"`

	Acreage             decimal.Decimal `gorm:"type:decimal(12,2)" json:"acreage"`
	ExpectedYield       decimal.Decimal `gorm:"type:decimal(12,2)" json:"expected_yield"`
	ExpectedMarketPrice decimal.Decimal `gorm:"type:decimal(18,2)" json:"expected_market_price"`
	ProductionCost      decimal.Decimal `gorm:"type:decimal(18,2)" json:"production_cost"`
	ExpectedProfit      decimal.Decimal `gorm:"type:decimal(18,2)" json:"expected_profit"`

	AmountFunded decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount_funded"`
	Status       Status          `gorm:"size:16;index:idx_loans_status;default:'pending'" json:"status"`

	AppliedAt      time.Time  `json:"applied_at"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	DisbursedAt    *time.Time `json:"disbursed_at,omitempty"`
	StateUpdatedAt time.Time  `json:"state_updated_at"`

	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_loans_created" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Fundings     []Funding     `gorm:"foreignKey:LoanID;references:ID" json:"fundings,omitempty"`
	Installments []Installment `gorm:"foreignKey:LoanID;references:ID" json:"installments,omitempty"`
}

func (Loan) TableName() string { return "loans" }

// Funding is one contribution towards a loan, appended in order.
type Funding struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID       uint64          `gorm:"not null;index:idx_fundings_loan" json:"-"`
	InvestmentID uint64          `gorm:"not null" json:"-"`
	InvestorID   uint64          `gorm:"not null" json:"investor_id"`
	InvestorName string          `gorm:"size:128" json:"investor_name"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	FundedAt     time.Time       `gorm:"not null" json:"date"`
}

func (Funding) TableName() string { return "loan_fundings" }

type Installment struct {
	ID         uint64            `gorm:"primaryKey;column:id" json:"-"`
	LoanID     uint64            `gorm:"not null;index:idx_installments_loan" json:"-"`
	Seq        int               `gorm:"not null" json:"seq"`
	DueDate    time.Time         `gorm:"not null" json:"due_date"`
	Amount     decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status     InstallmentStatus `gorm:"size:16;default:'pending'" json:"status"`
	PaidDate   *time.Time        `json:"paid_date,omitempty"`
	PaidAmount decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
}

func (Installment) TableName() string { return "loan_installments" }

// Remaining is the amount still open for investment.
func (l *Loan) Remaining() decimal.Decimal {
	r := l.Amount.Sub(l.AmountFunded)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// FundingProgress is AmountFunded / Amount in percent, two decimals.
func (l *Loan) FundingProgress() decimal.Decimal {
	if l.Amount.IsZero() {
		return decimal.Zero
	}
	return l.AmountFunded.Div(l.Amount).Mul(decimal.NewFromInt(100)).Round(2)
}

func (l *Loan) FullyFunded() bool { return l.AmountFunded.GreaterThanOrEqual(l.Amount) }

// Fundable is true only for approved loans with capacity left.
func (l *Loan) Fundable() bool { return l.Status == StatusApproved && !l.FullyFunded() }

// DeriveExpectedProfit is acreage × yield × market price − production cost.
func (l *Loan) DeriveExpectedProfit() decimal.Decimal {
	return l.Acreage.Mul(l.ExpectedYield).Mul(l.ExpectedMarketPrice).Sub(l.ProductionCost).Round(2)
}
