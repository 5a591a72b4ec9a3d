package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/usecase"
)

// RegisterRequest represents a request to register an account.
type RegisterRequest struct {
	AccountID  string `json:"account_id"`
	Credential string `json:"credential"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		AccountID:  r.AccountID,
		Credential: r.Credential,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	AccountID  string `json:"account_id"`
	Credential string `json:"credential"`
}

// ChangeCredentialRequest represents a credential change request.
type ChangeCredentialRequest struct {
	CurrentCredential string `json:"current_credential"`
	NewCredential     string `json:"new_credential"`
}

// WithdrawRequest represents a withdrawal request.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest represents a transfer request. The source account is the
// authenticated caller.
type TransferRequest struct {
	ToAccountID string          `json:"to_account_id"`
	Amount      decimal.Decimal `json:"amount"`
}

// SubmitDepositRequest represents a deposit submission.
type SubmitDepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PlaceWagerRequest represents a wager placement. The drawn number is never
// accepted over the wire.
type PlaceWagerRequest struct {
	Stake        decimal.Decimal `json:"stake"`
	ChosenNumber int             `json:"chosen_number"`
}
