package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/usecase"
	"github.com/mkmayk11/mhbank/internal/usecase/mocks"
)

func newLedgerFixture() (*usecase.LedgerUseCase, *mocks.MockAccountRepository, *mocks.MockHistoryRepository, *mocks.MockTransactionManager) {
	accRepo := mocks.NewMockAccountRepository()
	histRepo := mocks.NewMockHistoryRepository()
	txMgr := mocks.NewMockTransactionManager()
	uc := usecase.NewLedgerUseCase(txMgr, accRepo, histRepo, mocks.NewPassthroughRetrier())
	return uc, accRepo, histRepo, txMgr
}

func TestLedgerUseCase_Withdraw(t *testing.T) {
	tests := []struct {
		name          string
		balance       decimal.Decimal
		amount        decimal.Decimal
		expectError   error
		expectBalance decimal.Decimal
		expectEntries int
	}{
		{
			name:          "successful withdrawal",
			balance:       decimal.NewFromInt(100),
			amount:        decimal.NewFromInt(40),
			expectBalance: decimal.NewFromInt(60),
			expectEntries: 1,
		},
		{
			name:          "insufficient funds leaves balance unchanged",
			balance:       decimal.NewFromInt(100),
			amount:        decimal.NewFromInt(150),
			expectError:   domain.ErrInsufficientFunds,
			expectBalance: decimal.NewFromInt(100),
			expectEntries: 0,
		},
		{
			name:          "zero amount rejected",
			balance:       decimal.NewFromInt(100),
			amount:        decimal.Zero,
			expectError:   domain.ErrInvalidAmount,
			expectBalance: decimal.NewFromInt(100),
			expectEntries: 0,
		},
		{
			name:          "negative amount rejected",
			balance:       decimal.NewFromInt(100),
			amount:        decimal.NewFromInt(-5),
			expectError:   domain.ErrInvalidAmount,
			expectBalance: decimal.NewFromInt(100),
			expectEntries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, histRepo, _ := newLedgerFixture()
			accRepo.Seed(&domain.Account{ID: "alice", Balance: tt.balance})

			entry, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
				AccountID: "alice",
				Amount:    tt.amount,
			})

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if entry.Action != domain.ActionWithdrawal {
					t.Errorf("expected withdrawal action, got %s", entry.Action)
				}
				if !entry.Amount.Equal(tt.amount) {
					t.Errorf("expected entry amount %s, got %s", tt.amount, entry.Amount)
				}
				if entry.Sequence == 0 {
					t.Error("expected store-assigned sequence")
				}
			}

			if got := accRepo.Balance("alice"); !got.Equal(tt.expectBalance) {
				t.Errorf("expected balance %s, got %s", tt.expectBalance, got)
			}

			if got := len(histRepo.Entries()); got != tt.expectEntries {
				t.Errorf("expected %d history entries, got %d", tt.expectEntries, got)
			}
		})
	}
}

func TestLedgerUseCase_Withdraw_UnknownAccount(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()

	_, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
		AccountID: "ghost",
		Amount:    decimal.NewFromInt(10),
	})

	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerUseCase_Transfer(t *testing.T) {
	uc, accRepo, histRepo, _ := newLedgerFixture()
	accRepo.Seed(&domain.Account{ID: "alice", Balance: decimal.NewFromInt(100)})
	accRepo.Seed(&domain.Account{ID: "bob", Balance: decimal.NewFromInt(50)})

	entry, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceID:      "alice",
		DestinationID: "bob",
		Amount:        decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := accRepo.Balance("alice"); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected source balance 60, got %s", got)
	}

	if got := accRepo.Balance("bob"); !got.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected destination balance 90, got %s", got)
	}

	// Conservation: total before == total after.
	total := accRepo.Balance("alice").Add(accRepo.Balance("bob"))
	if !total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("transfer did not conserve funds: total %s", total)
	}

	// Exactly one entry, recorded for the source with the destination as
	// counterparty; the destination gets no symmetric entry.
	entries := histRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entry.AccountID != "alice" || entry.Action != domain.ActionTransfer {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Counterparty == nil || *entry.Counterparty != "bob" {
		t.Errorf("expected counterparty bob, got %v", entry.Counterparty)
	}
}

func TestLedgerUseCase_Transfer_Validation(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		destination string
		amount      decimal.Decimal
		expectError error
	}{
		{
			name:        "same account rejected",
			source:      "alice",
			destination: "alice",
			amount:      decimal.NewFromInt(10),
			expectError: domain.ErrSameAccount,
		},
		{
			name:        "unknown destination",
			source:      "alice",
			destination: "ghost",
			amount:      decimal.NewFromInt(10),
			expectError: domain.ErrCounterpartyNotFound,
		},
		{
			name:        "unknown source",
			source:      "ghost",
			destination: "alice",
			amount:      decimal.NewFromInt(10),
			expectError: domain.ErrAccountNotFound,
		},
		{
			name:        "non-positive amount",
			source:      "alice",
			destination: "bob",
			amount:      decimal.Zero,
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "insufficient funds",
			source:      "alice",
			destination: "bob",
			amount:      decimal.NewFromInt(500),
			expectError: domain.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, histRepo, _ := newLedgerFixture()
			accRepo.Seed(&domain.Account{ID: "alice", Balance: decimal.NewFromInt(100)})
			accRepo.Seed(&domain.Account{ID: "bob", Balance: decimal.NewFromInt(50)})

			_, err := uc.Transfer(context.Background(), usecase.TransferInput{
				SourceID:      tt.source,
				DestinationID: tt.destination,
				Amount:        tt.amount,
			})

			if !errors.Is(err, tt.expectError) {
				t.Fatalf("expected error %v, got %v", tt.expectError, err)
			}

			if got := accRepo.Balance("alice"); !got.Equal(decimal.NewFromInt(100)) {
				t.Errorf("source balance changed on failed transfer: %s", got)
			}
			if got := accRepo.Balance("bob"); !got.Equal(decimal.NewFromInt(50)) {
				t.Errorf("destination balance changed on failed transfer: %s", got)
			}
			if got := len(histRepo.Entries()); got != 0 {
				t.Errorf("expected no history entries, got %d", got)
			}
		})
	}
}

func TestLedgerUseCase_Transfer_CreditFailureRollsBack(t *testing.T) {
	uc, accRepo, _, txMgr := newLedgerFixture()
	accRepo.Seed(&domain.Account{ID: "alice", Balance: decimal.NewFromInt(100)})
	accRepo.Seed(&domain.Account{ID: "bob", Balance: decimal.NewFromInt(50)})

	boom := errors.New("write failed")
	calls := 0
	accRepo.UpdateBalanceFunc = func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
		calls++
		if id == "bob" {
			return boom
		}
		return nil
	}

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SourceID:      "alice",
		DestinationID: "bob",
		Amount:        decimal.NewFromInt(40),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}

	tx := txMgr.LastTransaction()
	if tx == nil {
		t.Fatal("expected a transaction to have been started")
	}
	if tx.Committed {
		t.Error("transaction must not commit after a failed credit")
	}
	if !tx.RolledBack {
		t.Error("transaction must roll back after a failed credit")
	}
	if calls != 2 {
		t.Errorf("expected debit then credit attempts, got %d calls", calls)
	}
}

func TestLedgerUseCase_Withdraw_HistoryFailureRollsBack(t *testing.T) {
	uc, accRepo, histRepo, txMgr := newLedgerFixture()
	accRepo.Seed(&domain.Account{ID: "alice", Balance: decimal.NewFromInt(100)})

	boom := errors.New("append failed")
	histRepo.AppendFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.HistoryEntry) (int64, error) {
		return 0, boom
	}

	balanceWritten := false
	accRepo.UpdateBalanceFunc = func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
		balanceWritten = true
		return nil
	}

	_, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
		AccountID: "alice",
		Amount:    decimal.NewFromInt(40),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}

	tx := txMgr.LastTransaction()
	if tx.Committed {
		t.Error("transaction must not commit when the history append fails")
	}
	if !tx.RolledBack {
		t.Error("transaction must roll back when the history append fails")
	}
	if balanceWritten {
		t.Error("balance must not be written after a failed history append")
	}
}
