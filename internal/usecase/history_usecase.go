package usecase

import (
	"context"

	"github.com/mkmayk11/mhbank/internal/domain"
)

// HistoryUseCase reads the append-only history log.
type HistoryUseCase struct {
	historyRepo HistoryRepository
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(historyRepo HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{historyRepo: historyRepo}
}

// ListHistoryInput represents input for listing history entries.
type ListHistoryInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListByAccount lists an account's history entries ordered by sequence ascending.
func (uc *HistoryUseCase) ListByAccount(ctx context.Context, input ListHistoryInput) ([]*domain.HistoryEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.historyRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
