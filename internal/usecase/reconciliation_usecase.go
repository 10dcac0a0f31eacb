package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

// ReconciliationUseCase replays the append-only ledger into expected
// per-category balances and compares them with the live wallet row.
// Drift is surfaced, never auto-corrected: applying a correction is an
// explicit operator action through the CLI.
type ReconciliationUseCase struct {
	walletRepo WalletRepository
	ledgerUC   *LedgerUseCase
	cache      Cache
	logger     zerolog.Logger
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	walletRepo WalletRepository,
	ledgerUC *LedgerUseCase,
	cache Cache,
	logger zerolog.Logger,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		walletRepo: walletRepo,
		ledgerUC:   ledgerUC,
		cache:      cache,
		logger:     logger,
	}
}

// CategoryDrift is the live-minus-replayed difference for one category.
type CategoryDrift struct {
	Category domain.Category `json:"category"`
	Live     decimal.Decimal `json:"live"`
	Replayed decimal.Decimal `json:"replayed"`
	Drift    decimal.Decimal `json:"drift"`
}

// WalletDriftReport is the reconciliation result for one wallet.
type WalletDriftReport struct {
	UserID       string          `json:"user_id"`
	Categories   []CategoryDrift `json:"categories"`
	AggregateOK  bool            `json:"aggregate_ok"`
	IsReconciled bool            `json:"is_reconciled"`
	CheckedAt    time.Time       `json:"checked_at"`
}

const reportCacheTTL = 24 * time.Hour

// ReconcileWallet replays one user's ledger and reports drift against the
// live wallet. The report is cached for the admin surface.
func (uc *ReconciliationUseCase) ReconcileWallet(ctx context.Context, userID string) (*WalletDriftReport, error) {
	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	nets, err := uc.ledgerUC.CategoryNets(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &WalletDriftReport{
		UserID:       userID,
		AggregateOK:  wallet.Aggregate.Equal(wallet.Sum()),
		IsReconciled: true,
		CheckedAt:    time.Now().UTC(),
	}

	for _, c := range domain.AllCategories() {
		live := wallet.Balance(c)
		replayed := nets[c]
		drift := live.Sub(replayed)
		report.Categories = append(report.Categories, CategoryDrift{
			Category: c,
			Live:     live,
			Replayed: replayed,
			Drift:    drift,
		})
		if !drift.IsZero() {
			report.IsReconciled = false
		}
	}
	if !report.AggregateOK {
		report.IsReconciled = false
	}

	if !report.IsReconciled {
		uc.logger.Warn().
			Str("user_id", userID).
			Msg("wallet drift detected; operator action required")
	}

	uc.cacheReport(ctx, report)
	return report, nil
}

// ReconcileAll walks every wallet. Used by the nightly sweep.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) ([]*WalletDriftReport, error) {
	const pageSize = 500

	var reports []*WalletDriftReport
	for offset := 0; ; offset += pageSize {
		userIDs, err := uc.walletRepo.ListUserIDs(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(userIDs) == 0 {
			break
		}

		for _, userID := range userIDs {
			report, err := uc.ReconcileWallet(ctx, userID)
			if err != nil {
				return nil, err
			}
			reports = append(reports, report)
		}

		if len(userIDs) < pageSize {
			break
		}
	}

	return reports, nil
}

// CachedReport returns the most recent stored report for a user, or nil
// when none exists.
func (uc *ReconciliationUseCase) CachedReport(ctx context.Context, userID string) (*WalletDriftReport, error) {
	if uc.cache == nil {
		return nil, nil
	}

	data, err := uc.cache.Get(ctx, reportCacheKey(userID))
	if err != nil || data == nil {
		return nil, err
	}

	var report WalletDriftReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (uc *ReconciliationUseCase) cacheReport(ctx context.Context, report *WalletDriftReport) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, reportCacheKey(report.UserID), data, reportCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", report.UserID).Msg("failed to cache drift report")
	}
}

func reportCacheKey(userID string) string {
	return "reconcile:report:" + userID
}
