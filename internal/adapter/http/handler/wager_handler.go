package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mkmayk11/mhbank/internal/adapter/http/dto"
	"github.com/mkmayk11/mhbank/internal/adapter/http/middleware"
	"github.com/mkmayk11/mhbank/internal/infrastructure/metrics"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

// WagerService defines the behavior needed by WagerHandler.
type WagerService interface {
	PlaceWager(ctx context.Context, input usecase.PlaceWagerInput) (*usecase.WagerResult, error)
}

// WagerHandler handles wager HTTP requests.
type WagerHandler struct {
	wagerUC WagerService
	metrics *metrics.Metrics
}

// NewWagerHandler creates a new WagerHandler.
func NewWagerHandler(wagerUC WagerService, m *metrics.Metrics) *WagerHandler {
	return &WagerHandler{wagerUC: wagerUC, metrics: m}
}

// Place stakes part of the authenticated account's balance on a number. The
// drawn number always comes from the server.
func (h *WagerHandler) Place(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.PlaceWagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.ChosenNumber < 0 || req.ChosenNumber > 36 {
		writeError(w, http.StatusBadRequest, "chosen number must be between 0 and 36", "")
		return
	}

	result, err := h.wagerUC.PlaceWager(r.Context(), usecase.PlaceWagerInput{
		AccountID:    principal.AccountID,
		Stake:        req.Stake,
		ChosenNumber: req.ChosenNumber,
	})
	if err != nil {
		h.metrics.OperationErrors.WithLabelValues("wager", errorReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to place wager", err.Error())
		return
	}

	h.metrics.OperationsTotal.WithLabelValues("wager").Inc()
	outcome := "loss"
	if result.Won {
		outcome = "win"
	}
	h.metrics.WagersSettled.WithLabelValues(outcome).Inc()

	writeJSON(w, http.StatusCreated, dto.WagerFromResult(result))
}
