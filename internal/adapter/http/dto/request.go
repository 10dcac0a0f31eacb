package dto

import (
	"github.com/shopspring/decimal"

	"github.com/toriai247/EarnHubPro-sub001/internal/domain"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency"`
}

// AdjustRequest represents a single-category balance adjustment.
type AdjustRequest struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Policy      string          `json:"policy,omitempty"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input. Unknown categories are
// caught downstream; the policy string defaults to clamp.
func (r *AdjustRequest) ToUseCaseInput(userID string) usecase.AdjustInput {
	policy := domain.ClampDebit
	if r.Policy == "strict" {
		policy = domain.StrictDebit
	}

	return usecase.AdjustInput{
		UserID:      userID,
		Category:    domain.Category(r.Category),
		Amount:      r.Amount,
		Direction:   domain.Direction(r.Direction),
		Policy:      policy,
		EntryType:   domain.EntryType(r.Type),
		Description: r.Description,
	}
}

// PlaceStakeRequest represents one stake-based game action.
type PlaceStakeRequest struct {
	Game          string          `json:"game"`
	Stake         decimal.Decimal `json:"stake"`
	BaseChance    float64         `json:"base_chance"`
	WinMultiplier decimal.Decimal `json:"win_multiplier"`
}

// ToUseCaseInput converts to use case input.
func (r *PlaceStakeRequest) ToUseCaseInput(userID string) usecase.PlaceStakeInput {
	return usecase.PlaceStakeInput{
		UserID:        userID,
		Game:          r.Game,
		Stake:         r.Stake,
		BaseChance:    r.BaseChance,
		WinMultiplier: r.WinMultiplier,
	}
}

// CreateWithdrawalRequest represents a withdrawal request.
type CreateWithdrawalRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Destination string          `json:"destination"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
