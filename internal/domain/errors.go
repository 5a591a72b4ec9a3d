package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrEmptyAccountID     = errors.New("account id must not be empty")
	ErrEmptyCredential    = errors.New("credential must not be empty")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Mutation errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transfer errors
	ErrSameAccount          = errors.New("cannot transfer to same account")
	ErrCounterpartyNotFound = errors.New("transfer destination account not found")

	// Deposit errors
	ErrDepositNotFound        = errors.New("pending deposit not found")
	ErrDepositAlreadyApproved = errors.New("deposit already approved")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrForbidden    = errors.New("operation not permitted")
)
