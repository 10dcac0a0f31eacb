package handler

import (
	"net/http"
	"time"

	"github.com/toriai247/EarnHubPro-sub001/internal/adapter/http/dto"
	"github.com/toriai247/EarnHubPro-sub001/internal/round"
)

// RoundHandler serves the clock-derived round state.
type RoundHandler struct {
	now func() time.Time
}

// NewRoundHandler creates a new RoundHandler.
func NewRoundHandler() *RoundHandler {
	return &RoundHandler{now: time.Now}
}

// Current returns the round state at the time of the request. Every
// replica derives the same snapshot from the wall clock; there is no
// shared round state to query.
func (h *RoundHandler) Current(w http.ResponseWriter, r *http.Request) {
	snapshot := round.Locate(h.now().UTC())
	writeJSON(w, http.StatusOK, dto.RoundFromSnapshot(snapshot))
}
