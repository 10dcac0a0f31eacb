package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

// Handlers processes background tasks against the use cases.
type Handlers struct {
	withdrawalUC     *usecase.WithdrawalUseCase
	reconciliationUC *usecase.ReconciliationUseCase
	logger           zerolog.Logger
}

// NewHandlers creates the task handlers.
func NewHandlers(
	withdrawalUC *usecase.WithdrawalUseCase,
	reconciliationUC *usecase.ReconciliationUseCase,
	logger zerolog.Logger,
) *Handlers {
	return &Handlers{
		withdrawalUC:     withdrawalUC,
		reconciliationUC: reconciliationUC,
		logger:           logger,
	}
}

// HandleCompleteWithdrawal marks a processing withdrawal completed. The
// use case is idempotent, so asynq retries are safe.
func (h *Handlers) HandleCompleteWithdrawal(ctx context.Context, t *asynq.Task) error {
	var p CompleteWithdrawalPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.withdrawalUC.Complete(ctx, p.WithdrawalID); err != nil {
		h.logger.Error().Err(err).Str("withdrawal_id", p.WithdrawalID).Msg("withdrawal completion failed")
		return err
	}

	return nil
}

// HandleReconcileWallet replays one wallet's ledger and stores the drift
// report.
func (h *Handlers) HandleReconcileWallet(ctx context.Context, t *asynq.Task) error {
	var p ReconcileWalletPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	report, err := h.reconciliationUC.ReconcileWallet(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !report.IsReconciled {
		h.logger.Warn().Str("user_id", p.UserID).Msg("reconciliation task found drift")
	}

	return nil
}

// NewServer builds the asynq server and routes tasks to the handlers.
func NewServer(redisOpt asynq.RedisClientOpt, concurrency int, handlers *Handlers) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCompleteWithdrawal, handlers.HandleCompleteWithdrawal)
	mux.HandleFunc(TypeReconcileWallet, handlers.HandleReconcileWallet)

	return srv, mux
}
