package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
)

// WithdrawalUseCase runs the two-step withdrawal saga: create a pending
// record, then debit main. If the debit fails the pending record is
// compensated (deleted) and the caller sees a WithdrawalSagaError. A
// crash between the steps can leave an orphan pending record; the
// reconciliation sweep surfaces those for operator action.
type WithdrawalUseCase struct {
	withdrawalRepo WithdrawalRepository
	walletUC       *WalletUseCase
	enqueuer       TaskEnqueuer
	idGen          IDGenerator
	logger         zerolog.Logger
}

// NewWithdrawalUseCase creates a new WithdrawalUseCase.
func NewWithdrawalUseCase(
	withdrawalRepo WithdrawalRepository,
	walletUC *WalletUseCase,
	enqueuer TaskEnqueuer,
	idGen IDGenerator,
	logger zerolog.Logger,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		withdrawalRepo: withdrawalRepo,
		walletUC:       walletUC,
		enqueuer:       enqueuer,
		idGen:          idGen,
		logger:         logger,
	}
}

// RequestWithdrawal starts the saga. Withdrawals debit main strictly:
// a shortfall fails rather than clamping, because a clamped withdrawal
// would silently destroy owed value.
func (uc *WithdrawalUseCase) RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, destination string) (*domain.Withdrawal, error) {
	now := time.Now().UTC()
	withdrawal := &domain.Withdrawal{
		ID:          uc.idGen.Generate(),
		UserID:      userID,
		Amount:      amount,
		Destination: destination,
		Reference:   uuid.NewString(),
		Status:      domain.WithdrawalStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := withdrawal.Validate(); err != nil {
		return nil, err
	}

	// Step 1: pending record.
	if err := uc.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		return nil, err
	}

	// Step 2: debit main.
	_, err := uc.walletUC.Adjust(ctx, AdjustInput{
		UserID:      userID,
		Category:    domain.CategoryMain,
		Amount:      amount,
		Direction:   domain.DirectionDebit,
		Policy:      domain.StrictDebit,
		EntryType:   domain.EntryWithdrawal,
		Description: "withdrawal to " + destination,
	})
	if err != nil {
		compensated := true
		if delErr := uc.withdrawalRepo.Delete(ctx, withdrawal.ID); delErr != nil {
			compensated = false
			uc.logger.Error().Err(delErr).
				Str("withdrawal_id", withdrawal.ID).
				Msg("compensation failed, orphan pending withdrawal left behind")
		}
		return nil, &domain.WithdrawalSagaError{
			WithdrawalID: withdrawal.ID,
			Compensated:  compensated,
			Cause:        err,
		}
	}

	if err := uc.withdrawalRepo.UpdateStatus(ctx, withdrawal.ID, domain.WithdrawalStatusProcessing, time.Now().UTC()); err != nil {
		uc.logger.Error().Err(err).Str("withdrawal_id", withdrawal.ID).Msg("failed to mark withdrawal processing")
	}
	withdrawal.Status = domain.WithdrawalStatusProcessing

	if err := uc.enqueuer.EnqueueCompleteWithdrawal(ctx, withdrawal.ID); err != nil {
		// The payout task is retried by the sweep; the debit stands.
		uc.logger.Error().Err(err).Str("withdrawal_id", withdrawal.ID).Msg("failed to enqueue withdrawal completion")
	}

	return withdrawal, nil
}

// Complete finishes a processing withdrawal after the external payout
// succeeded. Invoked by the background worker.
func (uc *WithdrawalUseCase) Complete(ctx context.Context, withdrawalID string) error {
	withdrawal, err := uc.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return err
	}
	if withdrawal.Status == domain.WithdrawalStatusCompleted {
		return nil
	}

	return uc.withdrawalRepo.UpdateStatus(ctx, withdrawalID, domain.WithdrawalStatusCompleted, time.Now().UTC())
}

// Get returns one withdrawal.
func (uc *WithdrawalUseCase) Get(ctx context.Context, id string) (*domain.Withdrawal, error) {
	return uc.withdrawalRepo.GetByID(ctx, id)
}

// ListByUser returns a user's withdrawals, newest first.
func (uc *WithdrawalUseCase) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Withdrawal, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.withdrawalRepo.ListByUser(ctx, userID, limit, offset)
}
