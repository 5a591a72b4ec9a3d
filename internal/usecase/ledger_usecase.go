package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/domain"
)

// LedgerUseCase applies the balance-mutating operations. Every operation is a
// validate -> compute -> apply sequence inside one database transaction: the
// involved account rows are locked before any balance is read, and the balance
// update commits together with its history entry or not at all.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	historyRepo HistoryRepository
	retrier     Retrier
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	historyRepo HistoryRepository,
	retrier Retrier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		retrier:     retrier,
	}
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// Withdraw debits the account by amount and records a withdrawal entry.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.HistoryEntry, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	var entry *domain.HistoryEntry

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		entry, err = uc.withdrawOnce(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *LedgerUseCase) withdrawOnce(ctx context.Context, input WithdrawInput) (*domain.HistoryEntry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := account.ApplyDebit(input.Amount)

	entry := &domain.HistoryEntry{
		AccountID: account.ID,
		Action:    domain.ActionWithdrawal,
		Amount:    input.Amount,
		CreatedAt: now,
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

	return entry, nil
}

// TransferInput represents input for a peer-to-peer transfer.
type TransferInput struct {
	SourceID      string
	DestinationID string
	Amount        decimal.Decimal
}

// Transfer moves amount from the source account to the destination account.
// Both balances change in one transaction; the source receives the single
// transfer history entry, carrying the destination as counterparty.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.HistoryEntry, error) {
	if input.SourceID == input.DestinationID {
		return nil, domain.ErrSameAccount
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	var entry *domain.HistoryEntry

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		entry, err = uc.transferOnce(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *LedgerUseCase) transferOnce(ctx context.Context, input TransferInput) (*domain.HistoryEntry, error) {
	// Lock both rows in sorted order to avoid deadlock between two
	// transfers going in opposite directions.
	ids := []string{input.SourceID, input.DestinationID}
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var source, destination *domain.Account
	for _, account := range accounts {
		switch account.ID {
		case input.SourceID:
			source = account
		case input.DestinationID:
			destination = account
		}
	}

	if source == nil {
		return nil, domain.ErrAccountNotFound
	}

	if destination == nil {
		return nil, domain.ErrCounterpartyNotFound
	}

	if err := source.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sourceBalance := source.ApplyDebit(input.Amount)
	destinationBalance := destination.ApplyCredit(input.Amount)

	counterparty := destination.ID
	entry := &domain.HistoryEntry{
		AccountID:    source.ID,
		Action:       domain.ActionTransfer,
		Amount:       input.Amount,
		Counterparty: &counterparty,
		CreatedAt:    now,
	}

	seq, err := uc.historyRepo.Append(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	entry.Sequence = seq

	if err := uc.accountRepo.UpdateBalance(ctx, tx, source.ID, sourceBalance, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, destination.ID, destinationBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}
