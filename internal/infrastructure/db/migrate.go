package db

import (
	"farmfund-backend/internal/domain/approval"
	"farmfund-backend/internal/domain/investment"
	"farmfund-backend/internal/domain/investor"
	"farmfund-backend/internal/domain/loan"
	"farmfund-backend/internal/domain/transaction"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&loan.Loan{},
		&loan.Funding{},
		&loan.Installment{},
		&approval.Approval{},
		&investor.Investor{},
		&investment.Investment{},
		&investment.Installment{},
		&transaction.Transaction{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
