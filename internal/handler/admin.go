package handler

import (
	"io"
	"net/http"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/gameconfig"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/logger"
	"github.com/osse101/DegenBox_Go/internal/vault"
)

// AdminHandler serves platform-admin routes
type AdminHandler struct {
	config gameconfig.Service
	vault  vault.Service
}

func NewAdminHandler(config gameconfig.Service, vaultSvc vault.Service) *AdminHandler {
	return &AdminHandler{config: config, vault: vaultSvc}
}

type TreasuryWithdrawRequest struct {
	Recipient string `json:"recipient" validate:"required,account"`
	Amount    uint64 `json:"amount" validate:"gt=0"`
}

type TreasuryWithdrawResponse struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Remaining uint64 `json:"treasury_balance"`
}

type CreditRequest struct {
	Account string `json:"account" validate:"required,account"`
	Amount  uint64 `json:"amount" validate:"gt=0"`
}

type CreditResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

// HandleGetConfig returns the configuration in force
// @Summary Get platform config
// @Tags admin
// @Produce json
// @Success 200 {object} domain.PlatformConfig
// @Router /api/v1/admin/config [get]
func (h *AdminHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.config.Get())
}

// HandlePutConfig replaces the platform configuration after schema and domain validation
// @Summary Replace platform config
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Admin identity"
// @Param request body domain.PlatformConfig true "Full configuration document"
// @Success 200 {object} domain.PlatformConfig
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/config [put]
func (h *AdminHandler) HandlePutConfig(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest, "")
		return
	}
	cfg, err := gameconfig.Parse(data)
	if err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgDecodeFailed, "action", "Update config", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidConfigDocument, domain.ReasonInvalidConfig)
		return
	}

	if err := h.config.Update(r.Context(), caller, cfg); err != nil {
		respondServiceError(w, r, "Update config", err)
		return
	}
	respondJSON(w, http.StatusOK, h.config.Get())
}

// HandleWithdrawTreasury pays accumulated commission to a recipient account
// @Summary Withdraw treasury
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Admin identity"
// @Param request body TreasuryWithdrawRequest true "Recipient and amount"
// @Success 200 {object} TreasuryWithdrawResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/admin/treasury/withdraw [post]
func (h *AdminHandler) HandleWithdrawTreasury(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var req TreasuryWithdrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw treasury"); err != nil {
		return
	}

	remaining, err := h.vault.WithdrawTreasury(r.Context(), caller, ledger.AccountID(req.Recipient), req.Amount)
	if err != nil {
		respondServiceError(w, r, "Withdraw treasury", err)
		return
	}
	respondJSON(w, http.StatusOK, TreasuryWithdrawResponse{Recipient: req.Recipient, Amount: req.Amount, Remaining: remaining})
}

// HandleCreditAccount records an external deposit into a ledger account
// @Summary Credit ledger account
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Admin identity"
// @Param request body CreditRequest true "Account and amount"
// @Success 200 {object} CreditResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/ledger/credit [post]
func (h *AdminHandler) HandleCreditAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var req CreditRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Credit account"); err != nil {
		return
	}

	balance, err := h.vault.CreditAccount(r.Context(), caller, ledger.AccountID(req.Account), req.Amount)
	if err != nil {
		respondServiceError(w, r, "Credit account", err)
		return
	}
	respondJSON(w, http.StatusOK, CreditResponse{Account: req.Account, Balance: balance})
}
