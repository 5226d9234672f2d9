package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ledgerline/investprofile/backend/internal/auth"
	"github.com/ledgerline/investprofile/backend/internal/profile"
	"github.com/ledgerline/investprofile/backend/internal/remote"
	"github.com/ledgerline/investprofile/backend/internal/service"
	"github.com/ledgerline/investprofile/backend/internal/storage"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondDomainError maps domain errors onto HTTP status codes. Anything
// unrecognized is a 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profile.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPrecondition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, remote.ErrTimeout):
		respondError(w, http.StatusGatewayTimeout, err.Error())
	case isRequestError(err):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, storage.ErrStorage):
		respondError(w, http.StatusInternalServerError, "Storage failure")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func isRequestError(err error) bool {
	var reqErr *remote.RequestError
	return errors.As(err, &reqErr)
}

// ownerID pulls the acting user from the userId query parameter.
func ownerID(r *http.Request) (string, bool) {
	id := r.URL.Query().Get("userId")
	return id, id != ""
}
