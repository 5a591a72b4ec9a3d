package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkmayk11/mhbank/internal/adapter/http/dto"
	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

type wagerServiceStub struct {
	placeFn func(ctx context.Context, input usecase.PlaceWagerInput) (*usecase.WagerResult, error)
}

func (s *wagerServiceStub) PlaceWager(ctx context.Context, input usecase.PlaceWagerInput) (*usecase.WagerResult, error) {
	return s.placeFn(ctx, input)
}

func TestWagerHandler_Place_Win(t *testing.T) {
	var captured usecase.PlaceWagerInput
	handler := NewWagerHandler(&wagerServiceStub{
		placeFn: func(ctx context.Context, input usecase.PlaceWagerInput) (*usecase.WagerResult, error) {
			captured = input
			return &usecase.WagerResult{
				Entry: &domain.HistoryEntry{
					Sequence:  3,
					AccountID: input.AccountID,
					Action:    domain.ActionWagerWin,
					Amount:    decimal.NewFromInt(120),
				},
				DrawnNumber: input.ChosenNumber,
				Won:         true,
				Payout:      decimal.NewFromInt(120),
				NewBalance:  decimal.NewFromInt(210),
			}, nil
		},
	}, testMetrics)

	body, _ := json.Marshal(dto.PlaceWagerRequest{
		Stake:        decimal.NewFromInt(10),
		ChosenNumber: 5,
	})
	req := authedRequest(http.MethodPost, "/wagers", body, "alice", domain.RoleCustomer)
	rec := httptest.NewRecorder()

	handler.Place(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "alice", captured.AccountID)
	// The drawn number is never taken from the client.
	assert.Nil(t, captured.DrawnNumber)

	var resp dto.WagerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Won)
	assert.True(t, resp.Payout.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.NewBalance.Equal(decimal.NewFromInt(210)))
	assert.Equal(t, domain.ActionWagerWin, resp.Entry.Action)
}

func TestWagerHandler_Place_ChosenNumberOutOfRange(t *testing.T) {
	handler := NewWagerHandler(&wagerServiceStub{
		placeFn: func(ctx context.Context, input usecase.PlaceWagerInput) (*usecase.WagerResult, error) {
			t.Fatal("PlaceWager should not be called")
			return nil, nil
		},
	}, testMetrics)

	for _, chosen := range []int{-1, 37} {
		body, _ := json.Marshal(dto.PlaceWagerRequest{
			Stake:        decimal.NewFromInt(10),
			ChosenNumber: chosen,
		})
		req := authedRequest(http.MethodPost, "/wagers", body, "alice", domain.RoleCustomer)
		rec := httptest.NewRecorder()

		handler.Place(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestWagerHandler_Place_InsufficientFunds(t *testing.T) {
	handler := NewWagerHandler(&wagerServiceStub{
		placeFn: func(ctx context.Context, input usecase.PlaceWagerInput) (*usecase.WagerResult, error) {
			return nil, domain.ErrInsufficientFunds
		},
	}, testMetrics)

	body, _ := json.Marshal(dto.PlaceWagerRequest{
		Stake:        decimal.NewFromInt(1000),
		ChosenNumber: 5,
	})
	req := authedRequest(http.MethodPost, "/wagers", body, "alice", domain.RoleCustomer)
	rec := httptest.NewRecorder()

	handler.Place(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
