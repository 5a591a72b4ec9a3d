package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/adapter/repository/postgres"
	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/usecase"
	"github.com/mkmayk11/mhbank/tests/testutil"
)

func newWagerUseCase(pool *testutil.TestDB) *usecase.WagerUseCase {
	return usecase.NewWagerUseCase(
		postgres.NewTxManager(pool.Pool),
		postgres.NewAccountRepository(pool.Pool),
		postgres.NewHistoryRepository(pool.Pool),
		postgres.NewRetrier(zerolog.Nop()),
	)
}

func intPtr(n int) *int { return &n }

func TestWagerSettlement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	wagerUC := newWagerUseCase(testDB)
	historyUC := usecase.NewHistoryUseCase(postgres.NewHistoryRepository(testDB.Pool))

	t.Run("winning wager pays twelve times the stake", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		testDB.CreateTestAccount(ctx, "alice", decimal.NewFromInt(100))

		result, err := wagerUC.PlaceWager(ctx, usecase.PlaceWagerInput{
			AccountID:    "alice",
			Stake:        decimal.NewFromInt(10),
			ChosenNumber: 5,
			DrawnNumber:  intPtr(5),
		})
		if err != nil {
			t.Fatalf("PlaceWager() error = %v", err)
		}

		if !result.Won {
			t.Fatal("expected a win")
		}
		if !result.Payout.Equal(decimal.NewFromInt(120)) {
			t.Errorf("expected payout 120, got %s", result.Payout)
		}
		if balance := testDB.Balance(ctx, "alice"); !balance.Equal(decimal.NewFromInt(210)) {
			t.Errorf("expected balance 210, got %s", balance)
		}

		entries, err := historyUC.ListByAccount(ctx, usecase.ListHistoryInput{AccountID: "alice"})
		if err != nil {
			t.Fatalf("ListByAccount() error = %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(entries))
		}
		if entries[0].Action != domain.ActionWagerWin {
			t.Errorf("expected action %s, got %s", domain.ActionWagerWin, entries[0].Action)
		}
		if !entries[0].Amount.Equal(decimal.NewFromInt(120)) {
			t.Errorf("expected entry amount 120, got %s", entries[0].Amount)
		}
	})

	t.Run("losing wager forfeits the stake", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		testDB.CreateTestAccount(ctx, "alice", decimal.NewFromInt(100))

		result, err := wagerUC.PlaceWager(ctx, usecase.PlaceWagerInput{
			AccountID:    "alice",
			Stake:        decimal.NewFromInt(10),
			ChosenNumber: 5,
			DrawnNumber:  intPtr(6),
		})
		if err != nil {
			t.Fatalf("PlaceWager() error = %v", err)
		}

		if result.Won {
			t.Fatal("expected a loss")
		}
		if balance := testDB.Balance(ctx, "alice"); !balance.Equal(decimal.NewFromInt(90)) {
			t.Errorf("expected balance 90, got %s", balance)
		}
	})

	t.Run("stake above balance is rejected", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		testDB.CreateTestAccount(ctx, "alice", decimal.NewFromInt(5))

		_, err := wagerUC.PlaceWager(ctx, usecase.PlaceWagerInput{
			AccountID:    "alice",
			Stake:        decimal.NewFromInt(10),
			ChosenNumber: 5,
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("PlaceWager() error = %v, want %v", err, domain.ErrInsufficientFunds)
		}

		if balance := testDB.Balance(ctx, "alice"); !balance.Equal(decimal.NewFromInt(5)) {
			t.Errorf("expected balance unchanged at 5, got %s", balance)
		}
		if count := testDB.HistoryCount(ctx, "alice"); count != 0 {
			t.Errorf("expected no history entries, got %d", count)
		}
	})
}
