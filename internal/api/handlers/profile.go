package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ledgerline/investprofile/backend/internal/profile"
	"github.com/ledgerline/investprofile/backend/internal/service"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// ProfileHandler handles questionnaire and analysis endpoints
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   log,
	}
}

// QuestionnaireRequest represents a questionnaire submission
type QuestionnaireRequest struct {
	UserID       string          `json:"userId"`
	Answers      profile.Answers `json:"answers"`
	MonthlyValue float64         `json:"monthlyValue"`
}

// SubmitQuestionnaire records a completed questionnaire
// POST /api/v1/profile/questionnaire
func (h *ProfileHandler) SubmitQuestionnaire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QuestionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	record, err := h.profiles.SubmitQuestionnaire(ctx, req.UserID, req.Answers, req.MonthlyValue)
	if err != nil {
		h.logger.WithError(err).WithField("userId", req.UserID).Warn("Questionnaire rejected")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// GetQuestionnaire returns the stored questionnaire record
// GET /api/v1/profile/questionnaire?userId=...
func (h *ProfileHandler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	record, found := h.profiles.Questionnaire(ctx, id)
	if !found {
		respondError(w, http.StatusNotFound, "No questionnaire on record")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// AnalyzeRequest identifies the user whose questionnaire gets analyzed
type AnalyzeRequest struct {
	UserID string `json:"userId"`
}

// Analyze runs profile analysis over the stored questionnaire
// POST /api/v1/profile/analyze
func (h *ProfileHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	analysis, err := h.profiles.AnalyzeProfile(ctx, req.UserID)
	if err != nil {
		h.logger.WithError(err).WithField("userId", req.UserID).Warn("Profile analysis failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// GetAnalysis returns the stored analysis
// GET /api/v1/profile/analysis?userId=...
func (h *ProfileHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	analysis, found := h.profiles.Analysis(ctx, id)
	if !found {
		respondError(w, http.StatusNotFound, "No profile analysis on record")
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// GetOverview returns every stored artifact plus the flow state
// GET /api/v1/profile/overview?userId=...
func (h *ProfileHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	respondJSON(w, http.StatusOK, h.profiles.StoredOverview(ctx, id))
}
