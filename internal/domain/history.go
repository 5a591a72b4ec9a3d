package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action identifies the kind of balance mutation a history entry documents.
type Action string

const (
	ActionDeposit         Action = "deposit"
	ActionDepositApproved Action = "deposit_approved"
	ActionWithdrawal      Action = "withdrawal"
	ActionTransfer        Action = "transfer"
	ActionWagerWin        Action = "wager_win"
	ActionWagerLoss       Action = "wager_loss"
)

// IsValid checks if the action is a known action.
func (a Action) IsValid() bool {
	switch a {
	case ActionDeposit, ActionDepositApproved, ActionWithdrawal,
		ActionTransfer, ActionWagerWin, ActionWagerLoss:
		return true
	}
	return false
}

// HistoryEntry is an immutable record of one committed balance mutation.
// Sequence is assigned by the store on append; ordering by Sequence is the
// canonical chronological order of an account's history.
type HistoryEntry struct {
	Sequence     int64
	AccountID    string
	Action       Action
	Amount       decimal.Decimal
	Counterparty *string
	CreatedAt    time.Time
}
