package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

// SettlementUseCase is the per-action orchestration every game module
// follows: validate, deduct, decide, payout, log. The outcome director's
// decision is obtained first and dictates the presentation; a game
// renders a board consistent with the decision, never the reverse.
type SettlementUseCase struct {
	walletUC  *WalletUseCase
	outcomeUC *OutcomeUseCase
	ledgerUC  *LedgerUseCase
	logger    zerolog.Logger
	minStake  decimal.Decimal
	maxStake  decimal.Decimal
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	walletUC *WalletUseCase,
	outcomeUC *OutcomeUseCase,
	ledgerUC *LedgerUseCase,
	logger zerolog.Logger,
) *SettlementUseCase {
	return &SettlementUseCase{
		walletUC:  walletUC,
		outcomeUC: outcomeUC,
		ledgerUC:  ledgerUC,
		logger:    logger,
		minStake:  DefaultMinStake,
		maxStake:  DefaultMaxStake,
	}
}

// SetStakeLimits overrides the default stake bounds applied when a game
// does not pass its own.
func (uc *SettlementUseCase) SetStakeLimits(min, max decimal.Decimal) {
	uc.minStake = min
	uc.maxStake = max
}

// PlaceStakeInput describes one stake-based game action.
type PlaceStakeInput struct {
	UserID string
	// Game names the calling game module, for the ledger description.
	Game string
	// Stake is the wagered amount.
	Stake decimal.Decimal
	// BaseChance is the game's nominal win probability, used only when
	// no balance tier overrides it.
	BaseChance float64
	// WinMultiplier scales the stake into the payout on a win.
	WinMultiplier decimal.Decimal
	// MinStake/MaxStake are the game's limits; zero values fall back to
	// the defaults.
	MinStake decimal.Decimal
	MaxStake decimal.Decimal
}

// SettlementResult is what a game module renders from.
type SettlementResult struct {
	Outcome      domain.Outcome
	Stake        decimal.Decimal
	DeductedFrom domain.Category
	Payout       decimal.Decimal
}

// PlaceStake runs one game action end to end. A failed validation or
// deduction aborts before any decision is made and surfaces the error to
// the caller untouched; no partial stake is ever taken.
func (uc *SettlementUseCase) PlaceStake(ctx context.Context, input PlaceStakeInput) (*SettlementResult, error) {
	min := input.MinStake
	if min.IsZero() {
		min = uc.minStake
	}
	max := input.MaxStake
	if max.IsZero() {
		max = uc.maxStake
	}
	if err := domain.ValidateStake(input.Stake, min, max); err != nil {
		return nil, err
	}

	deduction, err := uc.walletUC.DeductForStake(ctx, input.UserID, input.Stake)
	if err != nil {
		return nil, err
	}

	outcome, err := uc.outcomeUC.Decide(ctx, input.UserID, input.BaseChance, input.Stake)
	if err != nil {
		return nil, err
	}

	result := &SettlementResult{
		Outcome:      outcome,
		Stake:        input.Stake,
		DeductedFrom: deduction.Category,
		Payout:       decimal.Zero,
	}

	if outcome == domain.OutcomeWin {
		result.Payout = input.Stake.Mul(input.WinMultiplier)
		if result.Payout.IsPositive() {
			_, err := uc.walletUC.Adjust(ctx, AdjustInput{
				UserID:      input.UserID,
				Category:    domain.CategoryGame,
				Amount:      result.Payout,
				Direction:   domain.DirectionCredit,
				EntryType:   domain.EntryPayout,
				Description: fmt.Sprintf("%s payout at %sx", input.Game, input.WinMultiplier),
			})
			if err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	// The deduction already recorded the stake; the loss entry is a
	// zero-amount marker so the replayed ledger stays in balance.
	uc.ledgerUC.AppendBestEffort(ctx, input.UserID, domain.EntryLoss,
		deduction.Category, decimal.Zero,
		fmt.Sprintf("%s stake of %s lost", input.Game, input.Stake))

	return result, nil
}
