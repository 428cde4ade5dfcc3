package investor

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateProfileInput carries only the fields the caller sent; nil leaves a
// field unchanged.
type UpdateProfileInput struct {
	InvestmentCapacity *decimal.Decimal
	RiskTolerance      *string
	PreferredCrops     []string
	PreferredRegions   []string
}

type ProfileDTO struct {
	UserID               string     `json:"user_id"`
	Name                 string     `json:"name"`
	InvestmentCapacity   float64    `json:"investment_capacity"`
	RiskTolerance        string     `json:"risk_tolerance"`
	PreferredCrops       []string   `json:"preferred_crops"`
	PreferredRegions     []string   `json:"preferred_regions"`
	VerificationStatus   string     `json:"verification_status"`
	TotalInvested        float64    `json:"total_invested"`
	TotalReturns         float64    `json:"total_returns"`
	ActiveInvestments    int        `json:"active_investments"`
	CompletedInvestments int        `json:"completed_investments"`
	AverageROI           float64    `json:"average_roi"`
	StatsUpdatedAt       *time.Time `json:"stats_updated_at,omitempty"`
}

type DashboardDTO struct {
	TotalInvested        float64 `json:"total_invested"`
	TotalReturns         float64 `json:"total_returns"`
	ActiveInvestments    int     `json:"active_investments"`
	CompletedInvestments int     `json:"completed_investments"`
	AverageROI           float64 `json:"average_roi"`
	PortfolioValue       float64 `json:"portfolio_value"`
	MonthlyReturns       float64 `json:"monthly_returns"`
	PendingReturns       float64 `json:"pending_returns"`
}

type InstallmentDTO struct {
	Seq     int       `json:"seq"`
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
	Status  string    `json:"status"`
}

type InvestmentDTO struct {
	InvestmentID      string           `json:"investment_id"`
	LoanID            string           `json:"loan_id"`
	FarmerID          string           `json:"farmer_id"`
	FarmerName        string           `json:"farmer_name"`
	Amount            float64          `json:"amount"`
	ExpectedReturn    float64          `json:"expected_return"`
	ActualReturn      *float64         `json:"actual_return,omitempty"`
	InterestRate      float64          `json:"interest_rate"`
	Duration          int              `json:"duration"`
	CropType          string           `json:"crop_type"`
	RiskLevel         string           `json:"risk_level"`
	Purpose           string           `json:"purpose"`
	Status            string           `json:"status"`
	InvestmentDate    time.Time        `json:"investment_date"`
	SettledAt         *time.Time       `json:"settled_at,omitempty"`
	RepaymentSchedule []InstallmentDTO `json:"repayment_schedule,omitempty"`
}

type TransactionDTO struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	LoanID        string    `json:"loan_id,omitempty"`
	InvestmentID  string    `json:"investment_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
