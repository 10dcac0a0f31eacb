package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidUserID  = errors.New("invalid user id")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrInvalidStake   = errors.New("stake outside allowed range")
)

// Validation constants
const (
	MaxUserIDLength = 64
	MaxAmount       = "1000000000" // 1 billion
)

// ValidateUserID validates a user reference.
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUserID)
	}
	if len(userID) > MaxUserIDLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidUserID, MaxUserIDLength)
	}
	return nil
}

// ValidateAmount validates a balance adjustment amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateStake validates a stake against a game's limits.
func ValidateStake(stake, min, max decimal.Decimal) error {
	if err := ValidateAmount(stake); err != nil {
		return err
	}
	if stake.LessThan(min) || stake.GreaterThan(max) {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrInvalidStake, stake, min, max)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
