package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ledgerline/investprofile/backend/internal/auth"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// AuthHandler handles session endpoints
type AuthHandler struct {
	authService *auth.Service
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	UserID   string `json:"userId"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	UserID   string `json:"userId"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login authenticates a user and stores the session
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Login == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "userId, login and password are required")
		return
	}

	session, err := h.authService.Login(ctx, req.UserID, req.Login, req.Password)
	if err != nil {
		h.logger.WithError(err).WithField("login", req.Login).Warn("Login failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// Register creates a remote account and stores the session
// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Login == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "userId, login and password are required")
		return
	}

	session, err := h.authService.Register(ctx, req.UserID, req.Login, req.Password, req.Role)
	if err != nil {
		h.logger.WithError(err).WithField("login", req.Login).Warn("Registration failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// Session returns the stored session, if any
// GET /api/v1/auth/session?userId=...
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	session, found := h.authService.CurrentSession(ctx, id)
	if !found {
		respondError(w, http.StatusNotFound, "No active session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// Logout clears the stored session
// POST /api/v1/auth/logout?userId=...
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := ownerID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	if err := h.authService.Logout(ctx, id); err != nil {
		h.logger.WithError(err).Error("Logout failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
