package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/domain"
)

// DepositUseCase handles the pending-deposit queue. Submission never touches
// the balance; only approval does, and approving an already approved deposit
// must never credit the account a second time.
type DepositUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	historyRepo HistoryRepository
	depositRepo DepositRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	historyRepo HistoryRepository,
	depositRepo DepositRepository,
	idGen IDGenerator,
	retrier Retrier,
) *DepositUseCase {
	return &DepositUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		depositRepo: depositRepo,
		idGen:       idGen,
		retrier:     retrier,
	}
}

// SubmitDepositInput represents input for submitting a deposit request.
type SubmitDepositInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// SubmitDeposit records a deposit request awaiting admin approval.
func (uc *DepositUseCase) SubmitDeposit(ctx context.Context, input SubmitDepositInput) (*domain.PendingDeposit, error) {
	deposit := &domain.PendingDeposit{
		ID:          uc.idGen.Generate(),
		AccountID:   input.AccountID,
		Amount:      input.Amount,
		Status:      domain.DepositStatusPending,
		SubmittedAt: time.Now().UTC(),
	}

	if err := deposit.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	if err := uc.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}

	return deposit, nil
}

// ListPendingInput represents input for listing pending deposits.
type ListPendingInput struct {
	Limit  int
	Offset int
}

// ListPending lists deposits still awaiting approval.
func (uc *DepositUseCase) ListPending(ctx context.Context, input ListPendingInput) ([]*domain.PendingDeposit, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.depositRepo.ListPending(ctx, limit, offset)
}

// ApproveDeposit credits the target account by the deposit amount, records a
// deposit-approved history entry and flips the deposit to approved, all in
// one transaction. A second approval returns ErrDepositAlreadyApproved and
// changes nothing.
func (uc *DepositUseCase) ApproveDeposit(ctx context.Context, depositID string) (*domain.PendingDeposit, error) {
	var deposit *domain.PendingDeposit

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		deposit, err = uc.approveOnce(ctx, depositID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return deposit, nil
}

func (uc *DepositUseCase) approveOnce(ctx context.Context, depositID string) (*domain.PendingDeposit, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	deposit, err := uc.depositRepo.GetByIDForUpdate(ctx, tx, depositID)
	if err != nil {
		return nil, err
	}

	if deposit.Status == domain.DepositStatusApproved {
		return nil, domain.ErrDepositAlreadyApproved
	}

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, deposit.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := account.ApplyCredit(deposit.Amount)

	entry := &domain.HistoryEntry{
		AccountID: account.ID,
		Action:    domain.ActionDepositApproved,
		Amount:    deposit.Amount,
		CreatedAt: now,
	}

	if _, err := uc.historyRepo.Append(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := uc.depositRepo.UpdateStatus(ctx, tx, deposit.ID, domain.DepositStatusApproved, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	deposit.Status = domain.DepositStatusApproved
	deposit.ApprovedAt = &now

	return deposit, nil
}
