package funding

import (
	"github.com/shopspring/decimal"
)

type InvestInput struct {
	LoanID       string
	UserID       string
	InvestorName string
	Amount       decimal.Decimal
}

type InvestResult struct {
	InvestmentID    string  `json:"investment_id"`
	TransactionID   string  `json:"transaction_id"`
	LoanID          string  `json:"loan_id"`
	Amount          float64 `json:"amount"`
	ExpectedReturn  float64 `json:"expected_return"`
	LoanStatus      string  `json:"loan_status"`
	AmountFunded    float64 `json:"amount_funded"`
	AmountRemaining float64 `json:"amount_remaining"`
	// set when the investment committed but the rollup refresh failed
	StatsStale bool `json:"stats_stale,omitempty"`
}
