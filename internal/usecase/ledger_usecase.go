package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

// LedgerUseCase owns the append-only transaction log: user-facing history
// and the per-category sums used by administrative reconciliation.
type LedgerUseCase struct {
	entryRepo EntryRepository
	idGen     IDGenerator
	logger    zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(entryRepo EntryRepository, idGen IDGenerator, logger zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		entryRepo: entryRepo,
		idGen:     idGen,
		logger:    logger,
	}
}

// Append writes one ledger entry. Fails with ErrLogWrite on repository
// failure; callers that must not roll back use AppendBestEffort.
func (uc *LedgerUseCase) Append(ctx context.Context, userID string, entryType domain.EntryType, category domain.Category, amount decimal.Decimal, description string) error {
	entry := &domain.LedgerEntry{
		ID:          uc.idGen.Generate(),
		UserID:      userID,
		Type:        entryType,
		Category:    category,
		Amount:      amount,
		Status:      domain.EntryStatusCompleted,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLogWrite, err)
	}

	return nil
}

// AppendBestEffort writes one ledger entry and swallows the failure,
// reporting it to diagnostics. The balance mutation that triggered the
// append is never rolled back.
func (uc *LedgerUseCase) AppendBestEffort(ctx context.Context, userID string, entryType domain.EntryType, category domain.Category, amount decimal.Decimal, description string) {
	if err := uc.Append(ctx, userID, entryType, category, amount, description); err != nil {
		uc.logger.Error().Err(err).
			Str("user_id", userID).
			Str("entry_type", string(entryType)).
			Msg("best-effort ledger append failed")
	}
}

// ListByUser returns a user's transaction history, newest first.
func (uc *LedgerUseCase) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.entryRepo.ListByUser(ctx, userID, limit, offset)
}

// LifetimeNetProfit computes total payouts minus total stakes from the
// ledger. This is the profit figure the outcome director tiers on.
func (uc *LedgerUseCase) LifetimeNetProfit(ctx context.Context, userID string) (decimal.Decimal, error) {
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

// CategoryNets replays the ledger into expected per-category balances by
// folding each (category, type) total with the type's sign.
func (uc *LedgerUseCase) CategoryNets(ctx context.Context, userID string) (map[domain.Category]decimal.Decimal, error) {
	sums, err := uc.entryRepo.SumsByCategoryAndType(ctx, userID)
	if err != nil {
		return nil, err
	}

	nets := make(map[domain.Category]decimal.Decimal, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		nets[c] = decimal.Zero
	}

	for _, s := range sums {
		signed := s.Total
		if s.Type.Sign() < 0 {
			signed = signed.Neg()
		}
		nets[s.Category] = nets[s.Category].Add(signed)
	}

	return nets, nil
}
