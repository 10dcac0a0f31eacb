package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus follows the two-step saga: a pending record is created
// first, then main is debited. A debit failure compensates by deleting the
// pending record, so "failed" is only reachable from processing.
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusCompleted  WithdrawalStatus = "completed"
	WithdrawalStatusFailed     WithdrawalStatus = "failed"
)

// Withdrawal is a request to move funds out of the main category.
type Withdrawal struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Destination string
	// Reference is the external payout reference handed to the
	// downstream payment provider.
	Reference string
	Status    WithdrawalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks withdrawal invariants before the saga starts.
func (w *Withdrawal) Validate() error {
	if w.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}
