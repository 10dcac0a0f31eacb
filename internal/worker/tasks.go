package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task types.
const (
	TypeCompleteWithdrawal = "withdrawal:complete"
	TypeReconcileWallet    = "wallet:reconcile"
)

// CompleteWithdrawalPayload carries the saga's final step to the worker.
type CompleteWithdrawalPayload struct {
	WithdrawalID string `json:"withdrawal_id"`
}

// ReconcileWalletPayload asks the worker to replay one user's ledger.
type ReconcileWalletPayload struct {
	UserID string `json:"user_id"`
}

// NewCompleteWithdrawalTask builds the payout completion task.
func NewCompleteWithdrawalTask(withdrawalID string) (*asynq.Task, error) {
	data, err := json.Marshal(CompleteWithdrawalPayload{WithdrawalID: withdrawalID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCompleteWithdrawal, data, asynq.MaxRetry(5), asynq.Queue("critical")), nil
}

// NewReconcileWalletTask builds a single-wallet reconciliation task.
func NewReconcileWalletTask(userID string) (*asynq.Task, error) {
	data, err := json.Marshal(ReconcileWalletPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReconcileWallet, data, asynq.Queue("low")), nil
}
