package handler

import (
	"net/http"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/project"
)

// ProjectHandler serves project bookkeeping routes
type ProjectHandler struct {
	service project.Service
}

func NewProjectHandler(service project.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type CreateProjectRequest struct {
	BoxPrice             uint64 `json:"box_price" validate:"gt=0"`
	LuckIntervalOverride int64  `json:"luck_time_interval_override" validate:"gte=0"`
	Preset               uint8  `json:"game_preset" validate:"lte=3"`
}

type UpdateProjectRequest struct {
	BoxPrice             *uint64 `json:"box_price,omitempty" validate:"omitempty,gt=0"`
	Active               *bool   `json:"active,omitempty"`
	Preset               *uint8  `json:"game_preset,omitempty" validate:"omitempty,lte=3"`
	LuckIntervalOverride *int64  `json:"luck_time_interval_override,omitempty" validate:"omitempty,gte=0"`
}

type FundVaultRequest struct {
	Amount uint64 `json:"amount" validate:"gt=0"`
}

type FundVaultResponse struct {
	ProjectID    uint64 `json:"project_id"`
	VaultBalance uint64 `json:"vault_balance"`
}

// HandleCreateProject registers a project owned by the caller
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param request body CreateProjectRequest true "Project settings"
// @Success 201 {object} domain.Project
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/projects [post]
func (h *ProjectHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var req CreateProjectRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create project"); err != nil {
		return
	}

	p, err := h.service.CreateProject(r.Context(), caller, project.CreateRequest{
		BoxPrice:             req.BoxPrice,
		LuckIntervalOverride: req.LuckIntervalOverride,
		Preset:               domain.PresetID(req.Preset),
	})
	if err != nil {
		respondServiceError(w, r, "Create project", err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// HandleGetProject returns a project and its counters
// @Summary Get project
// @Tags projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} domain.Project
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/projects/{projectID} [get]
func (h *ProjectHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUint64(w, r, ParamProjectID)
	if !ok {
		return
	}
	p, err := h.service.GetProject(r.Context(), projectID)
	if err != nil {
		respondServiceError(w, r, "Get project", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleUpdateProject applies a partial settings update, owner only
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param projectID path int true "Project ID"
// @Param request body UpdateProjectRequest true "Fields to change"
// @Success 200 {object} domain.Project
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/projects/{projectID} [patch]
func (h *ProjectHandler) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathUint64(w, r, ParamProjectID)
	if !ok {
		return
	}
	var req UpdateProjectRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update project"); err != nil {
		return
	}

	upd := domain.ProjectUpdate{
		BoxPrice:             req.BoxPrice,
		Active:               req.Active,
		LuckIntervalOverride: req.LuckIntervalOverride,
	}
	if req.Preset != nil {
		preset := domain.PresetID(*req.Preset)
		upd.Preset = &preset
	}

	p, err := h.service.UpdateProject(r.Context(), caller, projectID, upd)
	if err != nil {
		respondServiceError(w, r, "Update project", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleFundVault moves funds from the owner's wallet into the project vault
// @Summary Fund vault
// @Tags projects
// @Accept json
// @Produce json
// @Param X-Caller-ID header string true "Caller identity"
// @Param projectID path int true "Project ID"
// @Param request body FundVaultRequest true "Amount"
// @Success 200 {object} FundVaultResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/projects/{projectID}/fund [post]
func (h *ProjectHandler) HandleFundVault(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathUint64(w, r, ParamProjectID)
	if !ok {
		return
	}
	var req FundVaultRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Fund vault"); err != nil {
		return
	}

	balance, err := h.service.FundVault(r.Context(), caller, projectID, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Fund vault", err)
		return
	}
	respondJSON(w, http.StatusOK, FundVaultResponse{ProjectID: projectID, VaultBalance: balance})
}
