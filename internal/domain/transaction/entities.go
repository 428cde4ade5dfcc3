package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeInvestment Type = "investment"
	TypeReturn     Type = "return"
	TypeWithdrawal Type = "withdrawal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transaction is an append-only money movement record. Only Status may change.
type Transaction struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	TransactionID string          `gorm:"size:32;not null;uniqueIndex:ux_transactions_txn_id" json:"transaction_id"`
	Type          Type            `gorm:"size:16;not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Description   string          `gorm:"size:255" json:"description"`
	InvestorID    uint64          `gorm:"index:idx_transactions_investor_created,priority:1" json:"-"`
	LoanRef       string          `gorm:"size:32" json:"loan_id,omitempty"`
	InvestmentRef string          `gorm:"size:32" json:"investment_id,omitempty"`
	FarmerID      string          `gorm:"size:64" json:"farmer_id,omitempty"`
	Status        Status          `gorm:"size:16;default:'pending'" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index:idx_transactions_investor_created,priority:2" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }
