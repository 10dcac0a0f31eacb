package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Wallet errors
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrWalletExists    = errors.New("wallet already exists")
	ErrInvalidCategory = errors.New("invalid wallet category")

	// Amount errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Ledger errors
	ErrLogWrite = errors.New("ledger entry write failed")

	// Withdrawal errors
	ErrWithdrawalNotFound = errors.New("withdrawal not found")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// InsufficientFundsError reports a failed deduction together with the
// aggregate balance computed at the time of the attempt, for diagnostics.
// It matches ErrInsufficientFunds under errors.Is.
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Aggregate decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %s, aggregate %s",
		e.Requested.String(), e.Aggregate.String())
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// WithdrawalSagaError reports a withdrawal whose balance debit failed
// after the pending record had been created. The pending record is
// compensated (deleted); Cause carries the debit failure.
type WithdrawalSagaError struct {
	WithdrawalID string
	Compensated  bool
	Cause        error
}

func (e *WithdrawalSagaError) Error() string {
	if e.Compensated {
		return fmt.Sprintf("withdrawal %s failed and was compensated: %v", e.WithdrawalID, e.Cause)
	}
	return fmt.Sprintf("withdrawal %s failed, pending record left behind: %v", e.WithdrawalID, e.Cause)
}

func (e *WithdrawalSagaError) Unwrap() error {
	return e.Cause
}
