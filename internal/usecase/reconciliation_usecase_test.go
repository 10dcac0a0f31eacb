package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase/mocks"
)

func newReconciliationUC(walletRepo *mocks.MockWalletRepository, entryRepo *mocks.MockEntryRepository, cache usecase.Cache) *usecase.ReconciliationUseCase {
	ledgerUC := usecase.NewLedgerUseCase(entryRepo, mocks.NewMockIDGenerator(), zerolog.Nop())
	return usecase.NewReconciliationUseCase(walletRepo, ledgerUC, cache, zerolog.Nop())
}

func TestReconcileWalletClean(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	uc := newReconciliationUC(walletRepo, entryRepo, nil)

	ctx := context.Background()
	seedWallet(walletRepo, "u-1", map[domain.Category]int64{
		domain.CategoryDeposit: 70,
		domain.CategoryGame:    30,
	})
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-1", UserID: "u-1", Type: domain.EntryDeposit, Category: domain.CategoryDeposit, Amount: dec(100)})
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-2", UserID: "u-1", Type: domain.EntryStake, Category: domain.CategoryDeposit, Amount: dec(30)})
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-3", UserID: "u-1", Type: domain.EntryPayout, Category: domain.CategoryGame, Amount: dec(30)})

	report, err := uc.ReconcileWallet(ctx, "u-1")
	if err != nil {
		t.Fatalf("ReconcileWallet: %v", err)
	}

	if !report.IsReconciled {
		t.Errorf("clean wallet flagged as drifted: %+v", report.Categories)
	}
	if !report.AggregateOK {
		t.Error("aggregate mismatch on a reconciled wallet")
	}
	if len(report.Categories) != len(domain.AllCategories()) {
		t.Errorf("report covers %d categories, want %d", len(report.Categories), len(domain.AllCategories()))
	}
}

func TestReconcileWalletDetectsDrift(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	uc := newReconciliationUC(walletRepo, entryRepo, nil)

	ctx := context.Background()
	seedWallet(walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 500})
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-1", UserID: "u-1", Type: domain.EntryDeposit, Category: domain.CategoryMain, Amount: dec(480)})

	report, err := uc.ReconcileWallet(ctx, "u-1")
	if err != nil {
		t.Fatalf("ReconcileWallet: %v", err)
	}

	if report.IsReconciled {
		t.Fatal("drifted wallet reported as reconciled")
	}
	for _, cd := range report.Categories {
		if cd.Category != domain.CategoryMain {
			if !cd.Drift.IsZero() {
				t.Errorf("category %s drift = %s, want 0", cd.Category, cd.Drift)
			}
			continue
		}
		if !cd.Drift.Equal(dec(20)) {
			t.Errorf("main drift = %s, want 20", cd.Drift)
		}
	}
}

func TestReconcileWalletCachesReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)

	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	uc := newReconciliationUC(walletRepo, entryRepo, cache)

	seedWallet(walletRepo, "u-1", nil)

	var cached []byte
	cache.EXPECT().
		Set(gomock.Any(), "reconcile:report:u-1", gomock.Any(), 24*time.Hour).
		DoAndReturn(func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			cached = value
			return nil
		})

	report, err := uc.ReconcileWallet(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ReconcileWallet: %v", err)
	}

	var fromCache usecase.WalletDriftReport
	if err := json.Unmarshal(cached, &fromCache); err != nil {
		t.Fatalf("cached report is not valid JSON: %v", err)
	}
	if fromCache.UserID != report.UserID || fromCache.IsReconciled != report.IsReconciled {
		t.Error("cached report does not match the returned one")
	}

	cache.EXPECT().
		Get(gomock.Any(), "reconcile:report:u-1").
		Return(cached, nil)

	got, err := uc.CachedReport(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CachedReport: %v", err)
	}
	if got == nil || got.UserID != "u-1" {
		t.Fatalf("CachedReport = %+v, want the stored report", got)
	}
}

func TestReconcileAllWalksEveryWallet(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	uc := newReconciliationUC(walletRepo, entryRepo, nil)

	ctx := context.Background()
	users := []string{"u-1", "u-2", "u-3"}
	for _, u := range users {
		seedWallet(walletRepo, u, map[domain.Category]int64{domain.CategoryMain: 10})
		entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-" + u, UserID: u, Type: domain.EntryDeposit, Category: domain.CategoryMain, Amount: dec(10)})
	}

	reports, err := uc.ReconcileAll(ctx)
	if err != nil {
		t.Fatalf("ReconcileAll: %v", err)
	}
	if len(reports) != len(users) {
		t.Fatalf("got %d reports, want %d", len(reports), len(users))
	}
	for _, r := range reports {
		if !r.IsReconciled {
			t.Errorf("wallet %s drifted: %+v", r.UserID, r.Categories)
		}
	}
}

func TestLifetimeNetProfitFromLedger(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	ledgerUC := usecase.NewLedgerUseCase(entryRepo, mocks.NewMockIDGenerator(), zerolog.Nop())

	ctx := context.Background()
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-1", UserID: "u-1", Type: domain.EntryPayout, Category: domain.CategoryGame, Amount: dec(300)})
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-2", UserID: "u-1", Type: domain.EntryStake, Category: domain.CategoryGame, Amount: dec(120)})
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-3", UserID: "u-1", Type: domain.EntryDeposit, Category: domain.CategoryDeposit, Amount: dec(999)})
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-4", UserID: "u-2", Type: domain.EntryPayout, Category: domain.CategoryGame, Amount: dec(777)})

	profit, err := ledgerUC.LifetimeNetProfit(ctx, "u-1")
	if err != nil {
		t.Fatalf("LifetimeNetProfit: %v", err)
	}
	if !profit.Equal(dec(180)) {
		t.Errorf("profit = %s, want 180; deposits and other users must not count", profit)
	}
	if !profit.Equal(decimal.NewFromInt(180)) {
		t.Error("decimal comparison drifted")
	}
}
