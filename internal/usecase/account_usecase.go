package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkmayk11/mhbank/internal/domain"
)

// AccountUseCase handles account registration and credential management.
type AccountUseCase struct {
	accountRepo AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// RegisterInput represents input for registering an account.
type RegisterInput struct {
	AccountID  string
	Credential string
	Role       domain.Role
}

// Register creates a new account with a zero balance and a hashed credential.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	id := strings.TrimSpace(input.AccountID)

	if err := domain.ValidateAccountID(id); err != nil {
		return nil, err
	}

	if err := domain.ValidateCredential(input.Credential); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.IsValid() {
		return nil, errors.New("invalid role")
	}

	hash, err := hashCredential(input.Credential)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:             id,
		CredentialHash: hash,
		Balance:        decimal.Zero,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	// Don't return the hash
	account.CredentialHash = ""
	return account, nil
}

// Authenticate verifies an account's credential and returns the account.
func (uc *AccountUseCase) Authenticate(ctx context.Context, accountID, credential string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := verifyCredential(account.CredentialHash, credential); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	account.CredentialHash = ""
	return account, nil
}

// VerifyCredential reports whether the credential matches the stored hash.
func (uc *AccountUseCase) VerifyCredential(ctx context.Context, accountID, credential string) (bool, error) {
	_, err := uc.Authenticate(ctx, accountID, credential)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// ChangeCredential unconditionally replaces the account's credential.
// Not a balance mutation; no history entry is written.
func (uc *AccountUseCase) ChangeCredential(ctx context.Context, accountID, newCredential string) error {
	if err := domain.ValidateCredential(newCredential); err != nil {
		return err
	}

	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return err
	}

	hash, err := hashCredential(newCredential)
	if err != nil {
		return err
	}

	return uc.accountRepo.UpdateCredential(ctx, accountID, hash, time.Now().UTC())
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.CredentialHash = ""
	return account, nil
}

// GetBalance retrieves the current balance of an account. An unknown account
// is an error, never a zero balance.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	accounts, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		account.CredentialHash = ""
	}

	return accounts, nil
}

func hashCredential(credential string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyCredential(hash, credential string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential))
}
