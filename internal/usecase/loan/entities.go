package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	Amount              decimal.Decimal
	Purpose             string
	Duration            int
	Season              string
	CropType            string
	Acreage             decimal.Decimal
	ExpectedYield       decimal.Decimal
	ExpectedMarketPrice decimal.Decimal
	ProductionCost      decimal.Decimal
	// nil or zero means derive from the crop economics
	ExpectedProfit *decimal.Decimal
	// nil or zero means the platform default
	InterestRate *decimal.Decimal
	RiskLevel    string
}

type FundingDTO struct {
	InvestorID   uint64    `json:"investor_id"`
	InvestorName string    `json:"investor_name"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
}

type InstallmentDTO struct {
	Seq        int        `json:"seq"`
	DueDate    time.Time  `json:"due_date"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	PaidDate   *time.Time `json:"paid_date,omitempty"`
	PaidAmount float64    `json:"paid_amount"`
}

type LoanDTO struct {
	LoanID              string           `json:"loan_id"`
	FarmerID            string           `json:"farmer_id"`
	FarmerName          string           `json:"farmer_name"`
	Amount              float64          `json:"amount"`
	Purpose             string           `json:"purpose"`
	Duration            int              `json:"duration"`
	Season              string           `json:"season"`
	CropType            string           `json:"crop_type"`
	Acreage             float64          `json:"acreage"`
	ExpectedYield       float64          `json:"expected_yield"`
	ExpectedMarketPrice float64          `json:"expected_market_price"`
	ProductionCost      float64          `json:"production_cost"`
	ExpectedProfit      float64          `json:"expected_profit"`
	InterestRate        float64          `json:"interest_rate"`
	RiskLevel           string           `json:"risk_level"`
	AmountFunded        float64          `json:"amount_funded"`
	AmountRemaining     float64          `json:"amount_remaining"`
	FundingProgress     float64          `json:"funding_progress"`
	Status              string           `json:"status"`
	AppliedAt           time.Time        `json:"applied_at"`
	ApprovedAt          *time.Time       `json:"approved_at,omitempty"`
	Fundings            []FundingDTO     `json:"funding_details"`
	RepaymentSchedule   []InstallmentDTO `json:"repayment_schedule"`
	CreatedAt           time.Time        `json:"created_at"`
}

type FarmerStatsDTO struct {
	TotalLoans    int     `json:"total_loans"`
	ActiveLoans   int     `json:"active_loans"`
	AmountFunded  float64 `json:"amount_funded"`
	RepaymentRate int     `json:"repayment_rate"`
}
