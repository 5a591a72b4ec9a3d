package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/domain"
)

// WagerPayoutMultiplier is applied to the stake on a winning wager.
var WagerPayoutMultiplier = decimal.NewFromInt(12)

// wagerNumberRange bounds internally drawn numbers to 0..36.
const wagerNumberRange = 37

// WagerUseCase settles the betting operation on top of the ledger's
// debit/credit primitives. The stake is always debited first; a win credits
// stake * 12. Debit, conditional credit and the single history entry commit
// as one transaction.
type WagerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	historyRepo HistoryRepository
	retrier     Retrier
}

// NewWagerUseCase creates a new WagerUseCase.
func NewWagerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	historyRepo HistoryRepository,
	retrier Retrier,
) *WagerUseCase {
	return &WagerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		retrier:     retrier,
	}
}

// PlaceWagerInput represents input for placing a wager. When DrawnNumber is
// nil the resolver draws one itself with crypto/rand; a caller-supplied drawn
// number keeps the settlement deterministic for its inputs.
type PlaceWagerInput struct {
	AccountID    string
	Stake        decimal.Decimal
	ChosenNumber int
	DrawnNumber  *int
}

// WagerResult describes a settled wager.
type WagerResult struct {
	Entry       *domain.HistoryEntry
	DrawnNumber int
	Won         bool
	Payout      decimal.Decimal
	NewBalance  decimal.Decimal
}

// PlaceWager settles a wager against the account balance.
func (uc *WagerUseCase) PlaceWager(ctx context.Context, input PlaceWagerInput) (*WagerResult, error) {
	if input.Stake.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	drawn := 0
	if input.DrawnNumber != nil {
		drawn = *input.DrawnNumber
	} else {
		n, err := drawNumber()
		if err != nil {
			return nil, err
		}
		drawn = n
	}

	var result *WagerResult

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		result, err = uc.settleOnce(ctx, input, drawn)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *WagerUseCase) settleOnce(ctx context.Context, input PlaceWagerInput, drawn int) (*WagerResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(input.Stake); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	won := input.ChosenNumber == drawn

	// Stake comes off first regardless of outcome.
	newBalance := account.ApplyDebit(input.Stake)

	payout := decimal.Zero
	entry := &domain.HistoryEntry{
		AccountID: account.ID,
		Action:    domain.ActionWagerLoss,
		Amount:    input.Stake,
		CreatedAt: now,
	}

	if won {
		payout = input.Stake.Mul(WagerPayoutMultiplier)
		newBalance = newBalance.Add(payout)
		entry.Action = domain.ActionWagerWin
		entry.Amount = payout
	}

	seq, err := uc.historyRepo.Append(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	entry.Sequence = seq

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &WagerResult{
		Entry:       entry,
		DrawnNumber: drawn,
		Won:         won,
		Payout:      payout,
		NewBalance:  newBalance,
	}, nil
}

func drawNumber() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(wagerNumberRange))
	if err != nil {
		return 0, fmt.Errorf("failed to draw number: %w", err)
	}
	return int(n.Int64()), nil
}
