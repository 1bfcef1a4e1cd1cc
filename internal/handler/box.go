package handler

import (
	"net/http"

	"github.com/osse101/DegenBox_Go/internal/box"
	"github.com/osse101/DegenBox_Go/internal/domain"
)

// BoxHandler serves the box lifecycle routes
type BoxHandler struct {
	service box.Service
}

func NewBoxHandler(service box.Service) *BoxHandler {
	return &BoxHandler{service: service}
}

type RevealBoxRequest struct {
	RandomnessHandle string `json:"randomness_handle" validate:"required,max=128"`
}

// BoxResponse is a box plus its derived lifecycle state
type BoxResponse struct {
	*domain.Box
	State    domain.BoxState `json:"state"`
	TierName string          `json:"reward_tier_name,omitempty"`
}

func newBoxResponse(b *domain.Box) BoxResponse {
	return BoxResponse{Box: b, State: b.State(), TierName: b.RewardTier.DisplayName()}
}

type boxAction func(h *BoxHandler, r *http.Request, caller string, projectID, boxID uint64) (*domain.Box, error)

// lifecycle handles the shared caller + path parsing of box transitions
func (h *BoxHandler) lifecycle(opName string, status int, action boxAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerID(w, r)
		if !ok {
			return
		}
		projectID, ok := pathUint64(w, r, ParamProjectID)
		if !ok {
			return
		}
		var boxID uint64
		if opName != opCreateBox {
			if boxID, ok = pathUint64(w, r, ParamBoxID); !ok {
				return
			}
		}

		b, err := action(h, r, caller, projectID, boxID)
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		respondJSON(w, status, newBoxResponse(b))
	}
}

const (
	opCreateBox = "Create box"
	opCommitBox = "Commit box"
	opRevealBox = "Reveal box"
	opSettleBox = "Settle box"
	opRefundBox = "Refund box"
)

// HandleCreateBox buys a box at the project's current price
// @Summary Buy box
// @Tags boxes
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param projectID path int true "Project ID"
// @Success 201 {object} BoxResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/projects/{projectID}/boxes [post]
func (h *BoxHandler) HandleCreateBox() http.HandlerFunc {
	return h.lifecycle(opCreateBox, http.StatusCreated, func(h *BoxHandler, r *http.Request, caller string, projectID, _ uint64) (*domain.Box, error) {
		return h.service.CreateBox(r.Context(), caller, projectID)
	})
}

// HandleCommitBox requests randomness and freezes luck and preset
// @Summary Commit box
// @Tags boxes
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param projectID path int true "Project ID"
// @Param boxID path int true "Box ID"
// @Success 200 {object} BoxResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/projects/{projectID}/boxes/{boxID}/commit [post]
func (h *BoxHandler) HandleCommitBox() http.HandlerFunc {
	return h.lifecycle(opCommitBox, http.StatusOK, func(h *BoxHandler, r *http.Request, caller string, projectID, boxID uint64) (*domain.Box, error) {
		return h.service.CommitBox(r.Context(), caller, projectID, boxID)
	})
}

// HandleRevealBox reads the committed randomness and resolves the tier
// @Summary Reveal box
// @Tags boxes
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param projectID path int true "Project ID"
// @Param boxID path int true "Box ID"
// @Param request body RevealBoxRequest true "Randomness handle returned at commit"
// @Success 200 {object} BoxResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Randomness not ready, retry"
// @Router /api/v1/projects/{projectID}/boxes/{boxID}/reveal [post]
func (h *BoxHandler) HandleRevealBox(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathUint64(w, r, ParamProjectID)
	if !ok {
		return
	}
	boxID, ok := pathUint64(w, r, ParamBoxID)
	if !ok {
		return
	}
	var req RevealBoxRequest
	if err := DecodeAndValidateRequest(r, w, &req, opRevealBox); err != nil {
		return
	}

	b, err := h.service.RevealBox(r.Context(), caller, projectID, boxID, req.RandomnessHandle)
	if err != nil {
		respondServiceError(w, r, opRevealBox, err)
		return
	}
	respondJSON(w, http.StatusOK, newBoxResponse(b))
}

// HandleSettleBox pays the revealed reward from the vault
// @Summary Settle box
// @Tags boxes
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param projectID path int true "Project ID"
// @Param boxID path int true "Box ID"
// @Success 200 {object} BoxResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/projects/{projectID}/boxes/{boxID}/settle [post]
func (h *BoxHandler) HandleSettleBox() http.HandlerFunc {
	return h.lifecycle(opSettleBox, http.StatusOK, func(h *BoxHandler, r *http.Request, caller string, projectID, boxID uint64) (*domain.Box, error) {
		return h.service.SettleBox(r.Context(), caller, projectID, boxID)
	})
}

// HandleRefundBox returns the net price of a committed box that was never revealed
// @Summary Refund box
// @Tags boxes
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param projectID path int true "Project ID"
// @Param boxID path int true "Box ID"
// @Success 200 {object} BoxResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/projects/{projectID}/boxes/{boxID}/refund [post]
func (h *BoxHandler) HandleRefundBox() http.HandlerFunc {
	return h.lifecycle(opRefundBox, http.StatusOK, func(h *BoxHandler, r *http.Request, caller string, projectID, boxID uint64) (*domain.Box, error) {
		return h.service.RefundBox(r.Context(), caller, projectID, boxID)
	})
}

// HandleGetBox returns a box
// @Summary Get box
// @Tags boxes
// @Produce json
// @Param projectID path int true "Project ID"
// @Param boxID path int true "Box ID"
// @Success 200 {object} BoxResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/projects/{projectID}/boxes/{boxID} [get]
func (h *BoxHandler) HandleGetBox(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUint64(w, r, ParamProjectID)
	if !ok {
		return
	}
	boxID, ok := pathUint64(w, r, ParamBoxID)
	if !ok {
		return
	}
	b, err := h.service.GetBox(r.Context(), projectID, boxID)
	if err != nil {
		respondServiceError(w, r, "Get box", err)
		return
	}
	respondJSON(w, http.StatusOK, newBoxResponse(b))
}
