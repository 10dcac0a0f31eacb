package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	ReconcileWallet(ctx context.Context, userID string) (*usecase.WalletDriftReport, error)
	CachedReport(ctx context.Context, userID string) (*usecase.WalletDriftReport, error)
}

// ReconciliationHandler exposes ledger-replay drift checks to operators.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// Report returns the latest drift report for a wallet. It serves the
// cached report from the nightly sweep when one exists and falls back
// to a fresh replay otherwise.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	report, err := h.reconciliationUC.CachedReport(r.Context(), userID)
	if err == nil && report != nil {
		writeJSON(w, http.StatusOK, report)
		return
	}

	report, err = h.reconciliationUC.ReconcileWallet(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Trigger runs a fresh replay for a wallet and returns the report.
func (h *ReconciliationHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	report, err := h.reconciliationUC.ReconcileWallet(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
