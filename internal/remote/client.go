package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline/investprofile/backend/internal/profile"
	"github.com/ledgerline/investprofile/backend/internal/recommend"
	"github.com/ledgerline/investprofile/backend/pkg/config"
	"github.com/ledgerline/investprofile/backend/pkg/httputil"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// ErrTimeout marks a remote call abandoned after its deadline.
var ErrTimeout = errors.New("remote timeout")

// RequestError carries the non-2xx status reported by a remote service.
type RequestError struct {
	Service    string
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s service returned status %d", e.Service, e.StatusCode)
}

// TimeoutError reports a remote call that exceeded its deadline.
type TimeoutError struct {
	Service string
	Limit   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s service timed out after %s", e.Service, e.Limit)
}

// Is reports ErrTimeout so errors.Is(err, ErrTimeout) matches.
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// Client talks to the three remote investment services: auth, profile
// analyzer, and recommender. All exchanges are JSON over HTTP. Failures
// surface to the caller as-is; none of the paths retry internally.
type Client struct {
	http   *httputil.Client
	logger *logger.Logger

	authURL     string
	analyzerURL string

	// The recommender gets a dedicated client with its own wait ceiling.
	recommenderHTTP    *httputil.Client
	recommenderURL     string
	recommenderTimeout time.Duration
}

// NewClient creates a remote services client from config
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		http:               httputil.New(log).DisableRetry(),
		logger:             log,
		authURL:            cfg.Auth.BaseURL,
		analyzerURL:        cfg.Analyzer.BaseURL,
		recommenderHTTP:    httputil.NewWithTimeout(log, cfg.Recommender.Timeout).DisableRetry(),
		recommenderURL:     cfg.Recommender.BaseURL,
		recommenderTimeout: cfg.Recommender.Timeout,
	}
}

// AuthRequest is the login/register payload
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // ADMIN or USER, register only
}

// AuthResponse carries the opaque bearer token
type AuthResponse struct {
	Token string `json:"token"`
}

// AnalyzeRequest is the profile analyzer payload
type AnalyzeRequest struct {
	UserID                 string          `json:"userId"`
	Answers                profile.Answers `json:"answers"`
	MonthlyInvestmentValue float64         `json:"monthlyInvestmentValue"`
}

// analyzeResponse is the analyzer wire shape; classification arrives
// as a free string and is narrowed to the enum on decode.
type analyzeResponse struct {
	UserID              string                  `json:"userId"`
	TotalScore          int                     `json:"totalScore"`
	Classification      string                  `json:"profileClassification"`
	IdentifiedInterests profile.InterestProfile `json:"identifiedInterests"`
}

// Login authenticates an existing user
func (c *Client) Login(ctx context.Context, login, password string) (AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", AuthRequest{Login: login, Password: password})
}

// Register creates a user and returns its token
func (c *Client) Register(ctx context.Context, login, password, role string) (AuthResponse, error) {
	if role == "" {
		role = "USER"
	}
	return c.authenticate(ctx, "/auth/register", AuthRequest{Login: login, Password: password, Role: role})
}

func (c *Client) authenticate(ctx context.Context, path string, req AuthRequest) (AuthResponse, error) {
	resp, err := c.http.PostJSON(ctx, c.authURL+path, req)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("auth request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return AuthResponse{}, &RequestError{Service: "auth", StatusCode: resp.StatusCode}
	}

	var out AuthResponse
	if err := httputil.DecodeJSON(resp, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

// Analyze submits the questionnaire to the analyzer service
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (profile.Analysis, error) {
	resp, err := c.http.PostJSON(ctx, c.analyzerURL+"/profile/analyze", req)
	if err != nil {
		return profile.Analysis{}, fmt.Errorf("analyze request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return profile.Analysis{}, &RequestError{Service: "analyzer", StatusCode: resp.StatusCode}
	}

	var payload analyzeResponse
	if err := httputil.DecodeJSON(resp, &payload); err != nil {
		return profile.Analysis{}, err
	}

	return profile.Analysis{
		OwnerID:        payload.UserID,
		TotalScore:     payload.TotalScore,
		Classification: profile.ParseClassification(payload.Classification),
		Interests:      payload.IdentifiedInterests,
	}, nil
}

// Recommend fetches the tiered recommendation set for an analysis.
// The recommender is slow; the call is bounded by the configured
// ceiling and abandoned as a timeout after that. No automatic retry;
// the caller may re-invoke the whole step.
func (c *Client) Recommend(ctx context.Context, analysis profile.Analysis) (recommend.RecommendationSet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.recommenderTimeout)
	defer cancel()

	payload := analyzeResponse{
		UserID:              analysis.OwnerID,
		TotalScore:          analysis.TotalScore,
		Classification:      string(analysis.Classification),
		IdentifiedInterests: analysis.Interests,
	}

	resp, err := c.recommenderHTTP.PostJSON(ctx, c.recommenderURL+"/recommender", payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return recommend.RecommendationSet{}, &TimeoutError{Service: "recommender", Limit: c.recommenderTimeout}
		}
		return recommend.RecommendationSet{}, fmt.Errorf("recommend request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return recommend.RecommendationSet{}, &RequestError{Service: "recommender", StatusCode: resp.StatusCode}
	}

	var set recommend.RecommendationSet
	if err := httputil.DecodeJSON(resp, &set); err != nil {
		return recommend.RecommendationSet{}, err
	}
	return set, nil
}
