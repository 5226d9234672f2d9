package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ledgerline/investprofile/backend/internal/service"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// FlowHandler exposes per-user journey state
type FlowHandler struct {
	profiles *service.ProfileService
	logger   *logger.Logger
}

// NewFlowHandler creates a new flow handler
func NewFlowHandler(profiles *service.ProfileService, log *logger.Logger) *FlowHandler {
	return &FlowHandler{
		profiles: profiles,
		logger:   log,
	}
}

// GetState returns the flow state flags
// GET /api/v1/flow/state?userId=...
func (h *FlowHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	respondJSON(w, http.StatusOK, h.profiles.Flow().State(ctx, id))
}

// GetNext returns the next pending step in the journey
// GET /api/v1/flow/next?userId=...
func (h *FlowHandler) GetNext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"nextStep": string(h.profiles.Flow().NextStep(ctx, id)),
	})
}

// ResetRequest identifies the user whose progress gets cleared
type ResetRequest struct {
	UserID string `json:"userId"`
}

// RedoQuestionnaire reopens the questionnaire step. The previous
// answers and any later artifacts stay until the rerun replaces them.
// POST /api/v1/flow/redo-questionnaire
func (h *FlowHandler) RedoQuestionnaire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.profiles.Flow().RedoQuestionnaire(ctx, req.UserID); err != nil {
		h.logger.WithError(err).WithField("userId", req.UserID).Error("Questionnaire redo failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.profiles.Flow().State(ctx, req.UserID))
}

// Reset clears every stored artifact and the flow state
// POST /api/v1/flow/reset
func (h *FlowHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.profiles.ResetProgress(ctx, req.UserID); err != nil {
		h.logger.WithError(err).WithField("userId", req.UserID).Error("Flow reset failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
