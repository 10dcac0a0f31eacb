package domain

import "github.com/shopspring/decimal"

// Outcome is the result of the adaptive probability engine for one
// stake-based action. It is decided before, and independent of, any
// game's surface mechanics: the board a game shows is generated to match
// the outcome, never the other way around.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Balance tiers for the adaptive win chance. First matching rule wins.
var (
	tierAggregateHigh = decimal.NewFromInt(5000)
	tierAggregateMid  = decimal.NewFromInt(3500)
	tierAggregateLow  = decimal.NewFromInt(3000)
	tierProfit        = decimal.NewFromInt(2500)
	penaltyStake      = decimal.NewFromInt(500)
)

// AdjustedChance applies the balance-tier policy to a game's base win
// chance. Evaluated against the current aggregate balance and lifetime
// net profit, in order:
//
//	aggregate > 5000           -> 0.02
//	aggregate > 3500           -> 0.10
//	aggregate > 3000           -> 0.25
//	lifetime net profit > 2500 -> 0.30
//	otherwise                  -> baseChance
//
// Stakes above 500 placed while the aggregate exceeds 3000 halve the
// selected chance.
func AdjustedChance(baseChance float64, stake, aggregate, lifetimeProfit decimal.Decimal) float64 {
	if baseChance < 0 {
		baseChance = 0
	}
	if baseChance > 1 {
		baseChance = 1
	}

	chance := baseChance
	switch {
	case aggregate.GreaterThan(tierAggregateHigh):
		chance = 0.02
	case aggregate.GreaterThan(tierAggregateMid):
		chance = 0.10
	case aggregate.GreaterThan(tierAggregateLow):
		chance = 0.25
	case lifetimeProfit.GreaterThan(tierProfit):
		chance = 0.30
	}

	if stake.GreaterThan(penaltyStake) && aggregate.GreaterThan(tierAggregateLow) {
		chance *= 0.5
	}

	return chance
}
