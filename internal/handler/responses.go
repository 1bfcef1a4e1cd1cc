package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/ledger"
	"github.com/osse101/DegenBox_Go/internal/logger"
)

// ErrorResponse represents an error response. Reason is a stable machine code;
// Retryable tells the client the same request may succeed later.
type ErrorResponse struct {
	Error     string `json:"error"`
	Reason    string `json:"reason,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message, reason string) {
	respondJSON(w, status, ErrorResponse{Error: message, Reason: reason})
}

// User-facing messages, one per reason code
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgRetryLater         = "Randomness is not available yet. Retry shortly."
)

var reasonStatus = map[string]int{
	domain.ReasonProjectNotFound:            http.StatusNotFound,
	domain.ReasonBoxNotFound:                http.StatusNotFound,
	domain.ReasonNotBoxOwner:                http.StatusForbidden,
	domain.ReasonNotProjectOwner:            http.StatusForbidden,
	domain.ReasonNotAdmin:                   http.StatusForbidden,
	domain.ReasonProjectInactive:            http.StatusConflict,
	domain.ReasonPlatformPaused:             http.StatusConflict,
	domain.ReasonInvalidBoxPrice:            http.StatusBadRequest,
	domain.ReasonInvalidPreset:              http.StatusBadRequest,
	domain.ReasonInvalidAmount:              http.StatusBadRequest,
	domain.ReasonInvalidIdentity:            http.StatusBadRequest,
	domain.ReasonAlreadyCommitted:           http.StatusConflict,
	domain.ReasonNotCommitted:               http.StatusConflict,
	domain.ReasonAlreadyRevealed:            http.StatusConflict,
	domain.ReasonNotRevealed:                http.StatusConflict,
	domain.ReasonAlreadySettled:             http.StatusConflict,
	domain.ReasonRandomnessHandleMismatch:   http.StatusBadRequest,
	domain.ReasonRandomnessNotReady:         http.StatusServiceUnavailable,
	domain.ReasonRefundTooEarly:             http.StatusConflict,
	domain.ReasonInsufficientFunds:          http.StatusUnprocessableEntity,
	domain.ReasonWithdrawalExceedsAvailable: http.StatusUnprocessableEntity,
	domain.ReasonReserveUnknown:             http.StatusUnprocessableEntity,
	domain.ReasonArithmeticOverflow:         http.StatusUnprocessableEntity,
	domain.ReasonInvalidConfig:              http.StatusBadRequest,
}

// mapServiceError converts a service error to an HTTP status and a body.
// Unrecognized errors become a generic 500 so internals do not leak.
func mapServiceError(err error) (int, ErrorResponse) {
	if errors.Is(err, ledger.ErrUnknownAccount) {
		return http.StatusBadRequest, ErrorResponse{Error: ErrMsgUnknownAccount, Reason: domain.ReasonInvalidIdentity}
	}

	reason := domain.ReasonCode(err)
	status, ok := reasonStatus[reason]
	if !ok {
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgGenericServerError, Reason: domain.ReasonInternal}
	}

	resp := ErrorResponse{Reason: reason, Retryable: domain.IsRetryable(err)}
	if resp.Retryable {
		resp.Error = ErrMsgRetryLater
	} else {
		resp.Error = domain.Sentinel(err).Error()
	}
	return status, resp
}

// respondServiceError logs the failure and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, resp := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError && !resp.Retryable {
		log.Error(LogMsgRequestFailed, "operation", opName, "error", err)
	} else {
		log.Warn(LogMsgRequestFailed, "operation", opName, "reason", resp.Reason, "error", err)
	}
	if resp.Retryable {
		w.Header().Set("Retry-After", "1")
	}
	respondJSON(w, status, resp)
}
