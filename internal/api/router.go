package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/ledgerline/investprofile/backend/internal/api/handlers"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	recHandler *handlers.RecommendationsHandler,
	flowHandler *handlers.FlowHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api/v1").Subrouter()

	// Auth endpoints
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/session", authHandler.Session).Methods("GET")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	// Profile endpoints
	api.HandleFunc("/profile/questionnaire", profileHandler.SubmitQuestionnaire).Methods("POST")
	api.HandleFunc("/profile/questionnaire", profileHandler.GetQuestionnaire).Methods("GET")
	api.HandleFunc("/profile/analyze", profileHandler.Analyze).Methods("POST")
	api.HandleFunc("/profile/analysis", profileHandler.GetAnalysis).Methods("GET")
	api.HandleFunc("/profile/overview", profileHandler.GetOverview).Methods("GET")

	// Recommendation endpoints
	api.HandleFunc("/recommendations", recHandler.Load).Methods("POST")
	api.HandleFunc("/recommendations", recHandler.Get).Methods("GET")

	// Flow endpoints
	api.HandleFunc("/flow/state", flowHandler.GetState).Methods("GET")
	api.HandleFunc("/flow/next", flowHandler.GetNext).Methods("GET")
	api.HandleFunc("/flow/reset", flowHandler.Reset).Methods("POST")
	api.HandleFunc("/flow/redo-questionnaire", flowHandler.RedoQuestionnaire).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(50), 100)))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "investprofile-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware sheds load once the shared limiter is exhausted
func rateLimitMiddleware(limiter *rate.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
