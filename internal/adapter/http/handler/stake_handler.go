package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toriai247/EarnHubPro-sub001/internal/adapter/http/dto"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

// SettlementService defines the behavior needed by StakeHandler.
type SettlementService interface {
	PlaceStake(ctx context.Context, input usecase.PlaceStakeInput) (*usecase.SettlementResult, error)
}

// StakeHandler handles stake placement and settlement.
type StakeHandler struct {
	settlementUC SettlementService
}

// NewStakeHandler creates a new StakeHandler.
func NewStakeHandler(settlementUC SettlementService) *StakeHandler {
	return &StakeHandler{settlementUC: settlementUC}
}

// Place deducts a stake, decides the outcome, and settles it in one call.
func (h *StakeHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	var req dto.PlaceStakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.settlementUC.PlaceStake(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to place stake", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StakeFromResult(result))
}
