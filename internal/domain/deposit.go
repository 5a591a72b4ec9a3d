package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus is the approval state of a pending deposit.
type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
)

// PendingDeposit is a deposit request that does not affect the account
// balance until an admin approves it. The pending -> approved transition
// happens exactly once; an approved deposit is never credited again.
type PendingDeposit struct {
	ID          string
	AccountID   string
	Amount      decimal.Decimal
	Status      DepositStatus
	SubmittedAt time.Time
	ApprovedAt  *time.Time
}

// Validate validates a deposit request.
func (d *PendingDeposit) Validate() error {
	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}
