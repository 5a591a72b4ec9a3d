package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mkmayk11/mhbank/internal/adapter/http/dto"
	"github.com/mkmayk11/mhbank/internal/adapter/http/middleware"
	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/infrastructure/metrics"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.HistoryEntry, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.HistoryEntry, error)
}

// LedgerHandler handles balance-mutating HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
	metrics  *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, metrics: m}
}

// Withdraw debits the authenticated account.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerUC.Withdraw(r.Context(), usecase.WithdrawInput{
		AccountID: principal.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		h.metrics.OperationErrors.WithLabelValues("withdraw", errorReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to withdraw", err.Error())
		return
	}

	h.metrics.OperationsTotal.WithLabelValues("withdraw").Inc()
	writeJSON(w, http.StatusCreated, dto.HistoryEntryFromDomain(entry))
}

// Transfer moves funds from the authenticated account to another account.
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledgerUC.Transfer(r.Context(), usecase.TransferInput{
		SourceID:      principal.AccountID,
		DestinationID: req.ToAccountID,
		Amount:        req.Amount,
	})
	if err != nil {
		h.metrics.OperationErrors.WithLabelValues("transfer", errorReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to transfer", err.Error())
		return
	}

	h.metrics.OperationsTotal.WithLabelValues("transfer").Inc()
	writeJSON(w, http.StatusCreated, dto.HistoryEntryFromDomain(entry))
}
