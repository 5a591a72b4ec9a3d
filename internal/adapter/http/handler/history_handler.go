package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/mkmayk11/mhbank/internal/adapter/http/dto"
	"github.com/mkmayk11/mhbank/internal/adapter/http/middleware"
	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	ListByAccount(ctx context.Context, input usecase.ListHistoryInput) ([]*domain.HistoryEntry, error)
}

// HistoryHandler handles history HTTP requests.
type HistoryHandler struct {
	historyUC HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// List returns the authenticated account's history as JSON.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entries, err := h.historyUC.ListByAccount(r.Context(), usecase.ListHistoryInput{
		AccountID: principal.AccountID,
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListHistoryResponse{
		Entries: dto.HistoryEntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// Export streams the authenticated account's history as CSV.
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entries, err := h.historyUC.ListByAccount(r.Context(), usecase.ListHistoryInput{
		AccountID: principal.AccountID,
		Limit:     parseIntQuery(r, "limit", 1000),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to export history", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", principal.AccountID+"-history.csv"))

	cw := csv.NewWriter(w)
	cw.Write([]string{"sequence", "action", "amount", "counterparty", "created_at"})
	for _, e := range entries {
		counterparty := ""
		if e.Counterparty != nil {
			counterparty = *e.Counterparty
		}
		cw.Write([]string{
			fmt.Sprintf("%d", e.Sequence),
			string(e.Action),
			e.Amount.String(),
			counterparty,
			e.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}
