package apperr

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	sentinel := Conflict("loan is not open for investment")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"validation", Validation("amount must be at least %d", 1000), ErrValidation},
		{"not found", NotFound("loan not found"), ErrNotFound},
		{"conflict", sentinel, ErrStateConflict},
		{"detail keeps kind", Detail(sentinel, "only %s remaining", "100"), ErrStateConflict},
		{"wrapped", fmt.Errorf("invest: %w", NotFound("x")), ErrNotFound},
		{"persistence", Persistence(errors.New("deadlock")), ErrPersistence},
		{"plain", errors.New("boom"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetail_MatchesSentinel(t *testing.T) {
	sentinel := Conflict("insufficient capacity")
	err := Detail(sentinel, "only %s remaining for investment", "5000")
	if !errors.Is(err, sentinel) {
		t.Fatalf("detail should match its sentinel")
	}
	if err.Message() != "only 5000 remaining for investment" {
		t.Fatalf("message = %q", err.Message())
	}
}

func TestPublicMessage(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:3306: refused")
	if got := PublicMessage(Persistence(cause)); got != "internal server error" {
		t.Fatalf("persistence leaked: %q", got)
	}
	if got := PublicMessage(NotFound("loan abc not found")); got != "resource not found" {
		t.Fatalf("not found message = %q", got)
	}
	if got := PublicMessage(Validation("amount is required")); got != "amount is required" {
		t.Fatalf("validation message = %q", got)
	}
	if got := PublicMessage(errors.New("raw")); got != "internal server error" {
		t.Fatalf("unclassified message = %q", got)
	}
	if !errors.Is(Persistence(cause), cause) {
		t.Fatalf("persistence should unwrap to cause")
	}
}

func TestFromStore(t *testing.T) {
	notFound := NotFound("loan not found")
	conflict := Conflict("busy")
	raw := errors.New("connection reset")

	if FromStore(nil, notFound) != nil {
		t.Fatalf("nil should stay nil")
	}
	if got := FromStore(gorm.ErrRecordNotFound, notFound); got != notFound {
		t.Fatalf("record not found should map to sentinel, got %v", got)
	}
	if got := FromStore(fmt.Errorf("wrap: %w", gorm.ErrRecordNotFound), notFound); got != notFound {
		t.Fatalf("wrapped record not found should map to sentinel, got %v", got)
	}
	if got := FromStore(conflict, notFound); got != conflict {
		t.Fatalf("classified error should pass through, got %v", got)
	}
	got := FromStore(raw, notFound)
	if !errors.Is(got, ErrPersistence) || !errors.Is(got, raw) {
		t.Fatalf("raw error should become persistence, got %v", got)
	}
}
