package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
	"github.com/toriai247/EarnHubPro-sub001/internal/round"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	UserID       string          `json:"user_id"`
	Main         decimal.Decimal `json:"main"`
	Deposit      decimal.Decimal `json:"deposit"`
	Game         decimal.Decimal `json:"game"`
	Earning      decimal.Decimal `json:"earning"`
	Investment   decimal.Decimal `json:"investment"`
	Referral     decimal.Decimal `json:"referral"`
	Commission   decimal.Decimal `json:"commission"`
	Bonus        decimal.Decimal `json:"bonus"`
	Aggregate    decimal.Decimal `json:"aggregate"`
	Withdrawable decimal.Decimal `json:"withdrawable"`
	Currency     string          `json:"currency"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		UserID:       w.UserID,
		Main:         w.Main,
		Deposit:      w.Deposit,
		Game:         w.Game,
		Earning:      w.Earning,
		Investment:   w.Investment,
		Referral:     w.Referral,
		Commission:   w.Commission,
		Bonus:        w.Bonus,
		Aggregate:    w.Aggregate,
		Withdrawable: w.Withdrawable,
		Currency:     w.Currency,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// AdjustResponse reports the amount actually applied by an adjustment.
// Under the clamp policy this can be less than requested.
type AdjustResponse struct {
	Applied decimal.Decimal `json:"applied"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Type:        string(e.Type),
		Category:    string(e.Category),
		Amount:      e.Amount,
		Status:      string(e.Status),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a page of ledger entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// StakeResponse represents a settled game action.
type StakeResponse struct {
	Outcome      string          `json:"outcome"`
	Stake        decimal.Decimal `json:"stake"`
	DeductedFrom string          `json:"deducted_from"`
	Payout       decimal.Decimal `json:"payout"`
}

// StakeFromResult converts a settlement result to a response.
func StakeFromResult(r *usecase.SettlementResult) *StakeResponse {
	return &StakeResponse{
		Outcome:      string(r.Outcome),
		Stake:        r.Stake,
		DeductedFrom: string(r.DeductedFrom),
		Payout:       r.Payout,
	}
}

// WithdrawalResponse represents a withdrawal in API responses.
type WithdrawalResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Destination string          `json:"destination"`
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WithdrawalFromDomain converts a domain withdrawal to a response.
func WithdrawalFromDomain(w *domain.Withdrawal) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:          w.ID,
		UserID:      w.UserID,
		Amount:      w.Amount,
		Destination: w.Destination,
		Reference:   w.Reference,
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// WithdrawalsFromDomain converts domain withdrawals to responses.
func WithdrawalsFromDomain(withdrawals []*domain.Withdrawal) []*WithdrawalResponse {
	result := make([]*WithdrawalResponse, len(withdrawals))
	for i, w := range withdrawals {
		result[i] = WithdrawalFromDomain(w)
	}
	return result
}

// RoundResponse represents the live crash-game round. CrashPoint is
// only disclosed once the round has crashed.
type RoundResponse struct {
	RoundID    int64           `json:"round_id"`
	Phase      string          `json:"phase"`
	ElapsedMs  int64           `json:"elapsed_ms"`
	Multiplier float64         `json:"multiplier,omitempty"`
	CrashPoint decimal.Decimal `json:"crash_point,omitzero"`
}

// RoundFromSnapshot converts a clock snapshot to a response.
func RoundFromSnapshot(s round.Snapshot) *RoundResponse {
	resp := &RoundResponse{
		RoundID:   s.RoundID,
		Phase:     string(s.Phase),
		ElapsedMs: s.Elapsed.Milliseconds(),
	}

	switch s.Phase {
	case round.PhaseFlying:
		resp.Multiplier = s.Multiplier()
	case round.PhaseCrashed:
		resp.CrashPoint = round.CrashDecimal(s.RoundID)
	}

	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
