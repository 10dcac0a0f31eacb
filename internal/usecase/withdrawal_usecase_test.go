package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase/mocks"
)

type withdrawalFixture struct {
	walletRepo     *mocks.MockWalletRepository
	withdrawalRepo *mocks.MockWithdrawalRepository
	enqueuer       *mocks.MockTaskEnqueuer
	uc             *usecase.WithdrawalUseCase
}

func newWithdrawalFixture() *withdrawalFixture {
	walletRepo := mocks.NewMockWalletRepository()
	withdrawalRepo := mocks.NewMockWithdrawalRepository()
	enqueuer := mocks.NewMockTaskEnqueuer()
	idGen := mocks.NewMockIDGenerator()

	walletUC := usecase.NewWalletUseCase(
		mocks.NewMockTransactionManager(), walletRepo, mocks.NewMockEntryRepository(),
		mocks.NewMockRetrier(), idGen, zerolog.Nop(),
	)

	return &withdrawalFixture{
		walletRepo:     walletRepo,
		withdrawalRepo: withdrawalRepo,
		enqueuer:       enqueuer,
		uc:             usecase.NewWithdrawalUseCase(withdrawalRepo, walletUC, enqueuer, idGen, zerolog.Nop()),
	}
}

func TestRequestWithdrawalHappyPath(t *testing.T) {
	f := newWithdrawalFixture()
	seedWallet(f.walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 200})

	withdrawal, err := f.uc.RequestWithdrawal(context.Background(), "u-1", dec(150), "upi:alice@bank")
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}

	if withdrawal.Status != domain.WithdrawalStatusProcessing {
		t.Errorf("status = %s, want processing", withdrawal.Status)
	}
	if withdrawal.Reference == "" {
		t.Error("reference not assigned")
	}

	wallet, _ := f.walletRepo.GetByUserID(context.Background(), "u-1")
	if !wallet.Main.Equal(dec(50)) {
		t.Errorf("main = %s, want 50", wallet.Main)
	}
	if !wallet.Withdrawable.Equal(dec(50)) {
		t.Errorf("withdrawable = %s, want 50", wallet.Withdrawable)
	}

	if len(f.enqueuer.Completions) != 1 || f.enqueuer.Completions[0] != withdrawal.ID {
		t.Errorf("completion task not enqueued: %v", f.enqueuer.Completions)
	}
}

func TestRequestWithdrawalNeverClamps(t *testing.T) {
	f := newWithdrawalFixture()
	// Funds elsewhere never make a withdrawal viable: only main counts.
	seedWallet(f.walletRepo, "u-1", map[domain.Category]int64{
		domain.CategoryMain:  100,
		domain.CategoryBonus: 900,
	})

	_, err := f.uc.RequestWithdrawal(context.Background(), "u-1", dec(150), "upi:alice@bank")
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	wallet, _ := f.walletRepo.GetByUserID(context.Background(), "u-1")
	if !wallet.Main.Equal(dec(100)) {
		t.Errorf("main = %s, want untouched 100; strict debit must not clamp", wallet.Main)
	}
}

func TestRequestWithdrawalCompensatesOnDebitFailure(t *testing.T) {
	f := newWithdrawalFixture()
	seedWallet(f.walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 100})

	_, err := f.uc.RequestWithdrawal(context.Background(), "u-1", dec(150), "upi:alice@bank")
	if err == nil {
		t.Fatal("expected saga failure")
	}

	var sagaErr *domain.WithdrawalSagaError
	if !errors.As(err, &sagaErr) {
		t.Fatalf("expected WithdrawalSagaError, got %v", err)
	}
	if !sagaErr.Compensated {
		t.Error("saga reported compensation failure on a clean delete")
	}
	if f.withdrawalRepo.Count() != 0 {
		t.Errorf("pending withdrawal left behind, count = %d", f.withdrawalRepo.Count())
	}
	if len(f.enqueuer.Completions) != 0 {
		t.Error("completion enqueued for a compensated withdrawal")
	}
}

func TestRequestWithdrawalReportsFailedCompensation(t *testing.T) {
	f := newWithdrawalFixture()
	seedWallet(f.walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 100})
	f.withdrawalRepo.DeleteFunc = func(ctx context.Context, id string) error {
		return errors.New("connection reset")
	}

	_, err := f.uc.RequestWithdrawal(context.Background(), "u-1", dec(150), "upi:alice@bank")

	var sagaErr *domain.WithdrawalSagaError
	if !errors.As(err, &sagaErr) {
		t.Fatalf("expected WithdrawalSagaError, got %v", err)
	}
	if sagaErr.Compensated {
		t.Error("saga claims compensation despite delete failure")
	}
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("saga error must unwrap to the debit cause, got %v", err)
	}
}

func TestCompleteWithdrawalIdempotent(t *testing.T) {
	f := newWithdrawalFixture()
	seedWallet(f.walletRepo, "u-1", map[domain.Category]int64{domain.CategoryMain: 200})

	withdrawal, err := f.uc.RequestWithdrawal(context.Background(), "u-1", dec(50), "upi:alice@bank")
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}

	if err := f.uc.Complete(context.Background(), withdrawal.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := f.uc.Complete(context.Background(), withdrawal.ID); err != nil {
		t.Fatalf("second Complete must be a no-op, got %v", err)
	}

	got, err := f.uc.Get(context.Background(), withdrawal.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.WithdrawalStatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}

	wallet, _ := f.walletRepo.GetByUserID(context.Background(), "u-1")
	if !wallet.Main.Equal(dec(150)) {
		t.Errorf("main = %s, want 150; completion must not debit again", wallet.Main)
	}
}
