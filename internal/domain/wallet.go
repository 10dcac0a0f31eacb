package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebitPolicy controls how a debit behaves when the category balance does
// not cover the full amount.
type DebitPolicy int

const (
	// ClampDebit floors the category at zero and reports the amount
	// actually taken. Callers must check the returned amount: a clamped
	// debit can take less than requested without erroring.
	ClampDebit DebitPolicy = iota
	// StrictDebit fails with ErrInsufficientFunds instead of flooring.
	StrictDebit
)

// Direction marks a balance adjustment as a credit or a debit.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Wallet holds a user's categorized funds. Aggregate and Withdrawable are
// derived: Aggregate is the sum of the eight categories and Withdrawable
// equals Main. Reconcile must be called after any category mutation.
type Wallet struct {
	UserID     string
	Main       decimal.Decimal
	Deposit    decimal.Decimal
	Game       decimal.Decimal
	Earning    decimal.Decimal
	Investment decimal.Decimal
	Referral   decimal.Decimal
	Commission decimal.Decimal
	Bonus      decimal.Decimal

	Aggregate    decimal.Decimal
	Withdrawable decimal.Decimal

	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWallet creates a wallet with zero balances plus the signup bonus
// credited to the bonus category. Wallets are created once per user and
// never deleted.
func NewWallet(userID, currency string, signupBonus decimal.Decimal, now time.Time) *Wallet {
	w := &Wallet{
		UserID:    userID,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if signupBonus.IsPositive() {
		w.Bonus = signupBonus
	}
	w.Reconcile()
	return w
}

// Balance returns the live value of one category.
func (w *Wallet) Balance(c Category) decimal.Decimal {
	switch c {
	case CategoryMain:
		return w.Main
	case CategoryDeposit:
		return w.Deposit
	case CategoryGame:
		return w.Game
	case CategoryEarning:
		return w.Earning
	case CategoryInvestment:
		return w.Investment
	case CategoryReferral:
		return w.Referral
	case CategoryCommission:
		return w.Commission
	case CategoryBonus:
		return w.Bonus
	}
	return decimal.Zero
}

// SetBalance overwrites one category. Callers are responsible for calling
// Reconcile afterwards.
func (w *Wallet) SetBalance(c Category, v decimal.Decimal) {
	switch c {
	case CategoryMain:
		w.Main = v
	case CategoryDeposit:
		w.Deposit = v
	case CategoryGame:
		w.Game = v
	case CategoryEarning:
		w.Earning = v
	case CategoryInvestment:
		w.Investment = v
	case CategoryReferral:
		w.Referral = v
	case CategoryCommission:
		w.Commission = v
	case CategoryBonus:
		w.Bonus = v
	}
}

// Sum returns the live sum of the eight categories.
func (w *Wallet) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, c := range AllCategories() {
		total = total.Add(w.Balance(c))
	}
	return total
}

// Reconcile recomputes the derived fields: Aggregate = sum of categories,
// Withdrawable = Main.
func (w *Wallet) Reconcile() {
	w.Aggregate = w.Sum()
	w.Withdrawable = w.Main
}

// Credit adds amount to one category and reconciles.
func (w *Wallet) Credit(c Category, amount decimal.Decimal) {
	w.SetBalance(c, w.Balance(c).Add(amount))
	w.Reconcile()
}

// Debit subtracts amount from one category under the given policy and
// reconciles. It returns the amount actually taken; under ClampDebit the
// category floors at zero and the taken amount may be less than requested.
func (w *Wallet) Debit(c Category, amount decimal.Decimal, policy DebitPolicy) (decimal.Decimal, error) {
	balance := w.Balance(c)
	if policy == StrictDebit && balance.LessThan(amount) {
		return decimal.Zero, &InsufficientFundsError{
			Requested: amount,
			Aggregate: w.Aggregate,
		}
	}

	taken := amount
	remaining := balance.Sub(amount)
	if remaining.IsNegative() {
		taken = balance
		remaining = decimal.Zero
	}

	w.SetBalance(c, remaining)
	w.Reconcile()
	return taken, nil
}

// StakeSource resolves which single category a stake of the given amount
// is taken from. Priority order is tried first; the first category that
// alone covers the amount takes all of it. If none suffices individually
// but the four together do, the single largest category takes the entire
// amount (never split). If the four together cannot cover the amount it
// returns ErrInsufficientFunds carrying the wallet aggregate.
func (w *Wallet) StakeSource(amount decimal.Decimal) (Category, error) {
	total := decimal.Zero
	for _, c := range StakePriority {
		total = total.Add(w.Balance(c))
	}

	if total.LessThan(amount) {
		return "", &InsufficientFundsError{
			Requested: amount,
			Aggregate: w.Aggregate,
		}
	}

	for _, c := range StakePriority {
		if w.Balance(c).GreaterThanOrEqual(amount) {
			return c, nil
		}
	}

	largest := StakePriority[0]
	for _, c := range StakePriority[1:] {
		if w.Balance(c).GreaterThan(w.Balance(largest)) {
			largest = c
		}
	}
	return largest, nil
}
