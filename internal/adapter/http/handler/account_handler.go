package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mkmayk11/mhbank/internal/adapter/http/dto"
	"github.com/mkmayk11/mhbank/internal/adapter/http/middleware"
	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	Authenticate(ctx context.Context, accountID, credential string) (*domain.Account, error)
	VerifyCredential(ctx context.Context, accountID, credential string) (bool, error)
	ChangeCredential(ctx context.Context, accountID, newCredential string) error
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetBalance(ctx context.Context, id string) (decimal.Decimal, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// TokenIssuer issues session tokens for authenticated accounts.
type TokenIssuer interface {
	Generate(account *domain.Account) (string, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	tokens    TokenIssuer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, tokens TokenIssuer) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, tokens: tokens}
}

// Register creates a new account.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Login authenticates an account and returns a session token.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Authenticate(r.Context(), req.AccountID, req.Credential)
	if err != nil {
		writeError(w, mapDomainError(err), "authentication failed", err.Error())
		return
	}

	token, err := h.tokens.Generate(account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     token,
		AccountID: account.ID,
		Role:      account.Role,
	})
}

// Me returns the authenticated account.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), principal.AccountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Balance returns the authenticated account's balance.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	balance, err := h.accountUC.GetBalance(r.Context(), principal.AccountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: principal.AccountID,
		Balance:   balance,
	})
}

// ChangeCredential replaces the caller's credential after checking the
// current one.
func (h *AccountHandler) ChangeCredential(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.ChangeCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	valid, err := h.accountUC.VerifyCredential(r.Context(), principal.AccountID, req.CurrentCredential)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to change credential", err.Error())
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "current credential does not match", "")
		return
	}

	if err := h.accountUC.ChangeCredential(r.Context(), principal.AccountID, req.NewCredential); err != nil {
		writeError(w, mapDomainError(err), "failed to change credential", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists accounts. Admin only.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}
