package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkmayk11/mhbank/internal/adapter/http/dto"
	"github.com/mkmayk11/mhbank/internal/adapter/http/middleware"
	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/infrastructure/metrics"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// DepositService defines the behavior needed by DepositHandler.
type DepositService interface {
	SubmitDeposit(ctx context.Context, input usecase.SubmitDepositInput) (*domain.PendingDeposit, error)
	ListPending(ctx context.Context, input usecase.ListPendingInput) ([]*domain.PendingDeposit, error)
	ApproveDeposit(ctx context.Context, depositID string) (*domain.PendingDeposit, error)
}

// DepositHandler handles deposit-related HTTP requests.
type DepositHandler struct {
	depositUC DepositService
	metrics   *metrics.Metrics
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositUC DepositService, m *metrics.Metrics) *DepositHandler {
	return &DepositHandler{depositUC: depositUC, metrics: m}
}

// Submit queues a deposit for the authenticated account. The balance does not
// change until an admin approves it.
func (h *DepositHandler) Submit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SubmitDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	deposit, err := h.depositUC.SubmitDeposit(r.Context(), usecase.SubmitDepositInput{
		AccountID: principal.AccountID,
		Amount:    req.Amount,
	})
	if err != nil {
		h.metrics.OperationErrors.WithLabelValues("deposit_submit", errorReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to submit deposit", err.Error())
		return
	}

	h.metrics.OperationsTotal.WithLabelValues("deposit_submit").Inc()
	writeJSON(w, http.StatusAccepted, dto.DepositFromDomain(deposit))
}

// ListPending lists deposits awaiting approval. Admin only.
func (h *DepositHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	deposits, err := h.depositUC.ListPending(r.Context(), usecase.ListPendingInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list pending deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListDepositsResponse{
		Deposits: dto.DepositsFromDomain(deposits),
		Total:    int64(len(deposits)),
	})
}

// Approve approves a pending deposit and credits its account. Admin only.
func (h *DepositHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	deposit, err := h.depositUC.ApproveDeposit(r.Context(), id)
	if err != nil {
		h.metrics.OperationErrors.WithLabelValues("deposit_approve", errorReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to approve deposit", err.Error())
		return
	}

	h.metrics.OperationsTotal.WithLabelValues("deposit_approve").Inc()
	h.metrics.DepositsApproved.Inc()
	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}
