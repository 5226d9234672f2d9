package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ledgerline/investprofile/backend/internal/service"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// RecommendationsHandler handles instrument recommendation endpoints
type RecommendationsHandler struct {
	profiles *service.ProfileService
	logger   *logger.Logger
}

// NewRecommendationsHandler creates a new recommendations handler
func NewRecommendationsHandler(profiles *service.ProfileService, log *logger.Logger) *RecommendationsHandler {
	return &RecommendationsHandler{
		profiles: profiles,
		logger:   log,
	}
}

// LoadRequest identifies the user whose recommendations get built
type LoadRequest struct {
	UserID string `json:"userId"`
}

// Load builds and stores recommendations from the stored analysis
// POST /api/v1/recommendations
func (h *RecommendationsHandler) Load(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	set, err := h.profiles.LoadRecommendations(ctx, req.UserID)
	if err != nil {
		h.logger.WithError(err).WithField("userId", req.UserID).Warn("Recommendation load failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, set)
}

// Get returns the stored recommendation set
// GET /api/v1/recommendations?userId=...
func (h *RecommendationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	set, found := h.profiles.Recommendations(ctx, id)
	if !found {
		respondError(w, http.StatusNotFound, "No recommendations on record")
		return
	}

	respondJSON(w, http.StatusOK, set)
}
