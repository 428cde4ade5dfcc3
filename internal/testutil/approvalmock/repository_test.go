package approvalmock

import (
	"context"
	"errors"
	"testing"

	domain "farmfund-backend/internal/domain/approval"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	a := &domain.Approval{ApprovalID: "A1"}
	wantErr := errors.New("dup")

	m := &Repo{CreateFn: func(_ context.Context, got *domain.Approval) error {
		if got != a {
			t.Fatalf("Create arg mismatch")
		}
		return wantErr
	}}
	if err := m.Create(ctx, a); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if err := (&Repo{}).Create(ctx, a); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByLoanID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Approval{ApprovalID: "A2", LoanID: 7}

	m := &Repo{
		GetByLoanIDFn: func(_ context.Context, loanID uint64) (*domain.Approval, error) {
			if loanID != 7 {
				t.Fatalf("GetByLoanID loanID = %d", loanID)
			}
			return want, nil
		},
	}
	if got, err := m.GetByLoanID(ctx, 7); err != nil || got != want {
		t.Fatalf("GetByLoanID: (%v, %v)", got, err)
	}

	m = &Repo{}
	if _, err := m.GetByLoanID(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByLoanID default: %v", err)
	}
}
