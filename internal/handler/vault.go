package handler

import (
	"net/http"

	"github.com/osse101/DegenBox_Go/internal/vault"
)

// VaultHandler serves project vault routes
type VaultHandler struct {
	service vault.Service
}

func NewVaultHandler(service vault.Service) *VaultHandler {
	return &VaultHandler{service: service}
}

// WithdrawEarningsRequest omits pending_reserve to use the cached snapshot
type WithdrawEarningsRequest struct {
	Amount         uint64  `json:"amount" validate:"gt=0"`
	PendingReserve *uint64 `json:"pending_reserve,omitempty"`
}

// HandleGetSummary returns vault balance and reserve information
// @Summary Vault summary
// @Tags vault
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} vault.Summary
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/projects/{projectID}/vault [get]
func (h *VaultHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUint64(w, r, ParamProjectID)
	if !ok {
		return
	}
	summary, err := h.service.GetSummary(r.Context(), projectID)
	if err != nil {
		respondServiceError(w, r, "Vault summary", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// HandleWithdrawEarnings moves vault funds above the pending reserve to the owner
// @Summary Withdraw earnings
// @Tags vault
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param projectID path int true "Project ID"
// @Param request body WithdrawEarningsRequest true "Amount and optional reserve"
// @Success 200 {object} vault.WithdrawResult
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/projects/{projectID}/vault/withdraw [post]
func (h *VaultHandler) HandleWithdrawEarnings(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathUint64(w, r, ParamProjectID)
	if !ok {
		return
	}
	var req WithdrawEarningsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw earnings"); err != nil {
		return
	}

	res, err := h.service.WithdrawEarnings(r.Context(), caller, projectID, vault.WithdrawRequest{
		Amount:         req.Amount,
		PendingReserve: req.PendingReserve,
	})
	if err != nil {
		respondServiceError(w, r, "Withdraw earnings", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
