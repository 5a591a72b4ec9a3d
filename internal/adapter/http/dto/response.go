package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	Role      domain.Role     `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Balance:   a.Balance,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	Token     string      `json:"token"`
	AccountID string      `json:"account_id"`
	Role      domain.Role `json:"role"`
}

// BalanceResponse represents an account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// HistoryEntryResponse represents a history entry in API responses.
type HistoryEntryResponse struct {
	Sequence     int64           `json:"sequence"`
	AccountID    string          `json:"account_id"`
	Action       domain.Action   `json:"action"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty *string         `json:"counterparty,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// HistoryEntryFromDomain converts a domain history entry to a response.
func HistoryEntryFromDomain(e *domain.HistoryEntry) *HistoryEntryResponse {
	return &HistoryEntryResponse{
		Sequence:     e.Sequence,
		AccountID:    e.AccountID,
		Action:       e.Action,
		Amount:       e.Amount,
		Counterparty: e.Counterparty,
		CreatedAt:    e.CreatedAt,
	}
}

// HistoryEntriesFromDomain converts domain history entries to responses.
func HistoryEntriesFromDomain(entries []*domain.HistoryEntry) []*HistoryEntryResponse {
	result := make([]*HistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = HistoryEntryFromDomain(e)
	}
	return result
}

// ListHistoryResponse wraps a page of history entries.
type ListHistoryResponse struct {
	Entries []*HistoryEntryResponse `json:"entries"`
	Total   int64                   `json:"total"`
}

// DepositResponse represents a pending deposit in API responses.
type DepositResponse struct {
	ID          string               `json:"id"`
	AccountID   string               `json:"account_id"`
	Amount      decimal.Decimal      `json:"amount"`
	Status      domain.DepositStatus `json:"status"`
	SubmittedAt time.Time            `json:"submitted_at"`
	ApprovedAt  *time.Time           `json:"approved_at,omitempty"`
}

// DepositFromDomain converts a domain pending deposit to a response.
func DepositFromDomain(d *domain.PendingDeposit) *DepositResponse {
	return &DepositResponse{
		ID:          d.ID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		Status:      d.Status,
		SubmittedAt: d.SubmittedAt,
		ApprovedAt:  d.ApprovedAt,
	}
}

// DepositsFromDomain converts domain pending deposits to responses.
func DepositsFromDomain(deposits []*domain.PendingDeposit) []*DepositResponse {
	result := make([]*DepositResponse, len(deposits))
	for i, d := range deposits {
		result[i] = DepositFromDomain(d)
	}
	return result
}

// ListDepositsResponse wraps a page of pending deposits.
type ListDepositsResponse struct {
	Deposits []*DepositResponse `json:"deposits"`
	Total    int64              `json:"total"`
}

// WagerResponse represents a settled wager.
type WagerResponse struct {
	DrawnNumber int                   `json:"drawn_number"`
	Won         bool                  `json:"won"`
	Payout      decimal.Decimal       `json:"payout"`
	NewBalance  decimal.Decimal       `json:"new_balance"`
	Entry       *HistoryEntryResponse `json:"entry"`
}

// WagerFromResult converts a use case wager result to a response.
func WagerFromResult(r *usecase.WagerResult) *WagerResponse {
	return &WagerResponse{
		DrawnNumber: r.DrawnNumber,
		Won:         r.Won,
		Payout:      r.Payout,
		NewBalance:  r.NewBalance,
		Entry:       HistoryEntryFromDomain(r.Entry),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
