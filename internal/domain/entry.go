package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags a ledger entry with the kind of event that produced it.
type EntryType string

const (
	EntryDeposit     EntryType = "deposit"
	EntryStake       EntryType = "stake"
	EntryPayout      EntryType = "payout"
	EntryLoss        EntryType = "loss"
	EntryBonus       EntryType = "bonus"
	EntryPenalty     EntryType = "penalty"
	EntryReferral    EntryType = "referral"
	EntryWithdrawal  EntryType = "withdrawal"
	EntryRefund      EntryType = "refund"
	EntrySignupBonus EntryType = "signup_bonus"
	EntryAdjustment  EntryType = "manual_adjustment"
)

// EntryStatus describes the state of a ledger entry.
type EntryStatus string

const (
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusFailed    EntryStatus = "failed"
)

// LedgerEntry is one record in the append-only transaction log. Amounts
// are stored positive; Sign gives the balance direction of the type.
type LedgerEntry struct {
	ID          string
	UserID      string
	Type        EntryType
	Category    Category
	Amount      decimal.Decimal
	Status      EntryStatus
	Description string
	CreatedAt   time.Time
}

// Sign returns +1 for entry types that add funds and -1 for types that
// remove them. Used when replaying the log during reconciliation.
func (t EntryType) Sign() int {
	switch t {
	case EntryStake, EntryLoss, EntryPenalty, EntryWithdrawal:
		return -1
	default:
		return 1
	}
}

// SignedAmount returns the entry amount with its balance direction applied.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Type.Sign() < 0 {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Validate checks entry invariants before append.
func (e *LedgerEntry) Validate() error {
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	return nil
}
