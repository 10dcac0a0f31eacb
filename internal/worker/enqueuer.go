package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Enqueuer implements usecase.TaskEnqueuer on top of an asynq client.
type Enqueuer struct {
	client *asynq.Client
	logger zerolog.Logger
}

// NewEnqueuer creates a new Enqueuer.
func NewEnqueuer(client *asynq.Client, logger zerolog.Logger) *Enqueuer {
	return &Enqueuer{client: client, logger: logger}
}

// EnqueueCompleteWithdrawal queues the payout completion for a
// processing withdrawal.
func (e *Enqueuer) EnqueueCompleteWithdrawal(ctx context.Context, withdrawalID string) error {
	task, err := NewCompleteWithdrawalTask(withdrawalID)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	e.logger.Debug().
		Str("task_id", info.ID).
		Str("withdrawal_id", withdrawalID).
		Msg("enqueued withdrawal completion")

	return nil
}

// EnqueueReconcileWallet queues a drift check for one wallet.
func (e *Enqueuer) EnqueueReconcileWallet(ctx context.Context, userID string) error {
	task, err := NewReconcileWalletTask(userID)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	e.logger.Debug().
		Str("task_id", info.ID).
		Str("user_id", userID).
		Msg("enqueued wallet reconciliation")

	return nil
}
