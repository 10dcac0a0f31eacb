package usecase_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase/mocks"
)

type seededRand struct{ r *rand.Rand }

func newSeededRand(seed uint64) *seededRand {
	return &seededRand{r: rand.New(rand.NewPCG(seed, seed))}
}

func (s *seededRand) Float64() float64 { return s.r.Float64() }

// fixedRand always draws the same value.
type fixedRand struct{ v float64 }

func (f fixedRand) Float64() float64 { return f.v }

func TestDecideWinRateAtHighAggregate(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallet(walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 6000})

	uc := usecase.NewOutcomeUseCase(walletRepo, entryRepo, newSeededRand(42))

	const trials = 100_000
	wins := 0
	for i := 0; i < trials; i++ {
		outcome, err := uc.Decide(context.Background(), "u-1", 0.45, dec(10))
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if outcome == domain.OutcomeWin {
			wins++
		}
	}

	// Effective chance at aggregate > 5000 is 0.02 regardless of the 0.45
	// base. Bounds are far outside sampling noise for 100k draws.
	rate := float64(wins) / trials
	if rate < 0.014 || rate > 0.026 {
		t.Errorf("win rate = %.4f, want about 0.02", rate)
	}
}

func TestDecideUsesBaseChanceAtLowBalance(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallet(walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 100})

	// Draw just under the base chance: must win when no tier applies.
	uc := usecase.NewOutcomeUseCase(walletRepo, entryRepo, fixedRand{v: 0.44})
	outcome, err := uc.Decide(context.Background(), "u-1", 0.45, dec(10))
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if outcome != domain.OutcomeWin {
		t.Error("draw below base chance must win at a low aggregate")
	}

	uc = usecase.NewOutcomeUseCase(walletRepo, entryRepo, fixedRand{v: 0.46})
	outcome, err = uc.Decide(context.Background(), "u-1", 0.45, dec(10))
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if outcome != domain.OutcomeLoss {
		t.Error("draw above base chance must lose")
	}
}

func TestDecideProfitTierFromLedger(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	seedWallet(walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 1000})

	ctx := context.Background()
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-1", UserID: "u-1", Type: domain.EntryPayout, Category: domain.CategoryGame, Amount: dec(4000)})
	entryRepo.Create(ctx, &domain.LedgerEntry{ID: "e-2", UserID: "u-1", Type: domain.EntryStake, Category: domain.CategoryGame, Amount: dec(1000)})

	// Lifetime profit 3000 > 2500 pins the chance at 0.30: a draw of 0.29
	// wins, 0.31 loses, whatever the base chance says.
	uc := usecase.NewOutcomeUseCase(walletRepo, entryRepo, fixedRand{v: 0.29})
	outcome, err := uc.Decide(ctx, "u-1", 0.90, dec(10))
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if outcome != domain.OutcomeWin {
		t.Error("draw below profit-tier chance must win")
	}

	uc = usecase.NewOutcomeUseCase(walletRepo, entryRepo, fixedRand{v: 0.31})
	outcome, err = uc.Decide(ctx, "u-1", 0.90, dec(10))
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if outcome != domain.OutcomeLoss {
		t.Error("draw above profit-tier chance must lose")
	}
}

func TestDecidePropagatesRepositoryErrors(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewOutcomeUseCase(walletRepo, entryRepo, fixedRand{v: 0.5})

	_, err := uc.Decide(context.Background(), "nobody", 0.45, dec(10))
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}

	seedWallet(walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 100})
	boom := errors.New("ledger unavailable")
	entryRepo.SumByTypeFunc = func(ctx context.Context, userID string, entryType domain.EntryType) (decimal.Decimal, error) {
		return decimal.Zero, boom
	}

	_, err = uc.Decide(context.Background(), "u-1", 0.45, dec(10))
	if !errors.Is(err, boom) {
		t.Fatalf("expected ledger error to surface, got %v", err)
	}
}
