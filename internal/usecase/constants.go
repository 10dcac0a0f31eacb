package usecase

import "github.com/shopspring/decimal"

// Stake limits applied by settlement when a game supplies none.
var (
	DefaultMinStake = decimal.NewFromInt(1)
	DefaultMaxStake = decimal.NewFromInt(100000)
)

// DefaultSignupBonus is credited to the bonus category at wallet creation.
var DefaultSignupBonus = decimal.NewFromInt(50)

// DefaultCurrency for new wallets.
const DefaultCurrency = "INR"
