package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	investorDomain "farmfund-backend/internal/domain/investor"

	"gorm.io/gorm"
)

func TestInvestorRepository_GetOrCreate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestorRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "user-1", "Meera")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if first.ID == 0 || !first.InvestmentCapacity.Equal(investorDomain.DefaultCapacity) {
		t.Fatalf("defaults not applied: %+v", first)
	}
	if first.RiskTolerance != "medium" || first.VerificationStatus != investorDomain.VerificationPending {
		t.Fatalf("unexpected defaults: %+v", first)
	}

	second, err := repo.GetOrCreate(ctx, "user-1", "Other Name")
	if err != nil {
		t.Fatalf("GetOrCreate again: %v", err)
	}
	if second.ID != first.ID || second.Name != "Meera" {
		t.Fatalf("expected same profile, got %+v", second)
	}

	var n int64
	db.Model(&investorDomain.Investor{}).Where("user_id = ?", "user-1").Count(&n)
	if n != 1 {
		t.Fatalf("expected one row, got %d", n)
	}
}

func TestInvestorRepository_UpdateProfileKeepsRollup(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestorRepository(db)
	ctx := context.Background()

	inv, err := repo.GetOrCreate(ctx, "user-2", "Arjun")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	now := time.Now().UTC()
	inv.TotalInvested = dec("7000")
	inv.ActiveInvestments = 2
	inv.AverageROI = dec("7.5")
	inv.ROISampleSize = 2
	inv.StatsUpdatedAt = &now
	if err := repo.UpdateRollup(ctx, inv); err != nil {
		t.Fatalf("UpdateRollup: %v", err)
	}

	// a stale copy updating preferences must not clobber the rollup
	stale, _ := repo.GetByUserID(ctx, "user-2")
	stale.TotalInvested = dec("0")
	stale.PreferredCrops = []string{"Rice", "Pulses"}
	stale.PreferredRegions = []string{"Punjab"}
	stale.InvestmentCapacity = dec("250000")
	if err := repo.UpdateProfile(ctx, stale); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := repo.GetByUserID(ctx, "user-2")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if !got.TotalInvested.Equal(dec("7000")) || got.ActiveInvestments != 2 || !got.AverageROI.Equal(dec("7.5")) {
		t.Fatalf("rollup clobbered: %+v", got)
	}
	if len(got.PreferredCrops) != 2 || got.PreferredCrops[1] != "Pulses" || !got.InvestmentCapacity.Equal(dec("250000")) {
		t.Fatalf("profile not updated: %+v", got)
	}
}

func TestInvestorRepository_UpdateRollup_LargeROI(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestorRepository(db)
	ctx := context.Background()

	inv, err := repo.GetOrCreate(ctx, "user-roi", "Kiran")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	inv.AverageROI = dec("150000.1234")
	inv.ROISampleSize = 1
	if err := repo.UpdateRollup(ctx, inv); err != nil {
		t.Fatalf("UpdateRollup: %v", err)
	}
	got, _ := repo.GetByUserID(ctx, "user-roi")
	if !got.AverageROI.Equal(dec("150000.1234")) {
		t.Fatalf("average roi = %s", got.AverageROI)
	}
}

func TestInvestorRepository_GetByIDForUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestorRepository(db)
	ctx := context.Background()

	inv, err := repo.GetOrCreate(ctx, "user-3", "Kavya")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	got, err := repo.GetByIDForUpdate(ctx, inv.ID)
	if err != nil || got.UserID != "user-3" {
		t.Fatalf("GetByIDForUpdate: %+v, %v", got, err)
	}
	if _, err := repo.GetByIDForUpdate(ctx, 12345); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
