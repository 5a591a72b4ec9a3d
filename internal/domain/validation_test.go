package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"valid simple", "alice", nil},
		{"valid with separators", "alice_b.c-1", nil},
		{"empty", "", ErrEmptyAccountID},
		{"whitespace only", "   ", ErrEmptyAccountID},
		{"too long", strings.Repeat("a", MaxAccountIDLength+1), ErrInvalidAccountIDFormat},
		{"forbidden characters", "alice bob", ErrInvalidAccountIDFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountID(tt.id)
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateCredential(t *testing.T) {
	if err := ValidateCredential(""); !errors.Is(err, ErrEmptyCredential) {
		t.Errorf("expected ErrEmptyCredential, got %v", err)
	}

	if err := ValidateCredential("abc"); !errors.Is(err, ErrCredentialTooShort) {
		t.Errorf("expected ErrCredentialTooShort, got %v", err)
	}

	if err := ValidateCredential(strings.Repeat("x", MaxCredentialLength+1)); !errors.Is(err, ErrCredentialTooLong) {
		t.Errorf("expected ErrCredentialTooLong, got %v", err)
	}

	if err := ValidateCredential("correct horse"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults (50, 0), got (%d, %d)", limit, offset)
	}

	limit, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Errorf("expected limit capped at 1000, got %d", limit)
	}
}

func TestPendingDeposit_Validate(t *testing.T) {
	dep := &PendingDeposit{Amount: decimal.NewFromInt(20)}
	if err := dep.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	dep.Amount = decimal.Zero
	if err := dep.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}
