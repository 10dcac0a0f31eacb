package domain

import "fmt"

// Category identifies one of the eight independent fund pools that make up
// a wallet. The set is closed: every consumer switches over all eight.
type Category string

const (
	CategoryMain       Category = "main"
	CategoryDeposit    Category = "deposit"
	CategoryGame       Category = "game"
	CategoryEarning    Category = "earning"
	CategoryInvestment Category = "investment"
	CategoryReferral   Category = "referral"
	CategoryCommission Category = "commission"
	CategoryBonus      Category = "bonus"
)

// AllCategories returns every wallet category in stable order.
func AllCategories() []Category {
	return []Category{
		CategoryMain,
		CategoryDeposit,
		CategoryGame,
		CategoryEarning,
		CategoryInvestment,
		CategoryReferral,
		CategoryCommission,
		CategoryBonus,
	}
}

// StakePriority is the fixed order in which categories are tried when
// deducting a stake: game, then bonus, then deposit, then main.
var StakePriority = []Category{
	CategoryGame,
	CategoryBonus,
	CategoryDeposit,
	CategoryMain,
}

// ParseCategory validates and normalizes a category string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range AllCategories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (c Category) String() string {
	return string(c)
}
