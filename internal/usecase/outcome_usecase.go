package usecase

import (
	"context"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

// OutcomeUseCase is the adaptive probability engine. It decides win or
// loss for a stake-based action from the player's financial state, before
// and independent of the game's surface mechanics. The decision is pure
// once the state is loaded: no ledger writes, no side effects.
type OutcomeUseCase struct {
	walletRepo WalletRepository
	entryRepo  EntryRepository
	rand       RandSource
}

// NewOutcomeUseCase creates a new OutcomeUseCase.
func NewOutcomeUseCase(walletRepo WalletRepository, entryRepo EntryRepository, rand RandSource) *OutcomeUseCase {
	return &OutcomeUseCase{
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		rand:       rand,
	}
}

// Decide returns win or loss for a stake at the given base chance. The
// chance is adjusted by the balance-tier policy against the current
// aggregate and lifetime net profit, then a uniform draw settles it.
func (uc *OutcomeUseCase) Decide(ctx context.Context, userID string, baseChance float64, stake decimal.Decimal) (domain.Outcome, error) {
	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return domain.OutcomeLoss, err
	}

	profit, err := uc.lifetimeNetProfit(ctx, userID)
	if err != nil {
		return domain.OutcomeLoss, err
	}

	chance := domain.AdjustedChance(baseChance, stake, wallet.Aggregate, profit)
	if uc.rand.Float64() < chance {
		return domain.OutcomeWin, nil
	}
	return domain.OutcomeLoss, nil
}

func (uc *OutcomeUseCase) lifetimeNetProfit(ctx context.Context, userID string) (decimal.Decimal, error) {
	payouts, err := uc.entryRepo.SumByType(ctx, userID, domain.EntryPayout)
	if err != nil {
		return decimal.Zero, err
	}

	stakes, err := uc.entryRepo.SumByType(ctx, userID, domain.EntryStake)
	if err != nil {
		return decimal.Zero, err
	}

	return payouts.Sub(stakes), nil
}

// SystemRand draws from math/rand/v2's shared, concurrency-safe source.
type SystemRand struct{}

func (SystemRand) Float64() float64 {
	return rand.Float64()
}
