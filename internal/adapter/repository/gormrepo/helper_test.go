package gormrepo

import (
	"fmt"
	"testing"
	"time"

	"farmfund-backend/internal/domain/loan"
	infradb "farmfund-backend/internal/infrastructure/db"
	"farmfund-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates a private in-memory sqlite DB with the full schema.
// A single connection keeps every statement on the same database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", id.NewID32())
	db, err := gorm.Open(sqlite.Open(dsn), infradb.NewConfig(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := infradb.Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func makeLoan(loanID, farmerID string, status loan.Status) *loan.Loan {
	now := time.Now().UTC()
	return &loan.Loan{
		LoanID:         loanID,
		FarmerID:       farmerID,
		FarmerName:     "Ravi",
		Amount:         dec("50000"),
		InterestRate:   dec("12"),
		Duration:       6,
		Purpose:        "Seeds and fertilizer",
		Season:         "kharif",
		CropType:       "Wheat",
		RiskLevel:      loan.RiskMedium,
		AmountFunded:   decimal.Zero,
		Status:         status,
		AppliedAt:      now,
		StateUpdatedAt: now,
	}
}
