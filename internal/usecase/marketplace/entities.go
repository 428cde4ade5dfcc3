package marketplace

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filter narrows the marketplace. Empty fields do not constrain.
type Filter struct {
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	CropTypes   []string
	RiskLevels  []string
	MaxDuration int
}

// LoanCard is the investor facing projection of a fundable loan.
type LoanCard struct {
	LoanID              string    `json:"loan_id"`
	FarmerID            string    `json:"farmer_id"`
	FarmerName          string    `json:"farmer_name"`
	Amount              float64   `json:"amount"`
	AmountFunded        float64   `json:"amount_funded"`
	AmountRemaining     float64   `json:"amount_remaining"`
	FundingProgress     float64   `json:"funding_progress"`
	Status              string    `json:"status"`
	InterestRate        float64   `json:"interest_rate"`
	Duration            int       `json:"duration"`
	Purpose             string    `json:"purpose"`
	Season              string    `json:"season"`
	CropType            string    `json:"crop_type"`
	RiskLevel           string    `json:"risk_level"`
	Acreage             float64   `json:"acreage"`
	ExpectedYield       float64   `json:"expected_yield"`
	ExpectedMarketPrice float64   `json:"expected_market_price"`
	ExpectedProfit      float64   `json:"expected_profit"`
	Investors           int       `json:"investors"`
	MinimumInvestment   float64   `json:"minimum_investment"`
	CreatedAt           time.Time `json:"created_at"`
}
