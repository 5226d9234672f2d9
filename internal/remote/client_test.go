package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ledgerline/investprofile/backend/internal/profile"
	"github.com/ledgerline/investprofile/backend/pkg/config"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

func testConfig(baseURL string, recommenderTimeout time.Duration) *config.Config {
	return &config.Config{
		Auth:     config.AuthServiceConfig{BaseURL: baseURL},
		Analyzer: config.AnalyzerConfig{BaseURL: baseURL},
		Recommender: config.RecommenderConfig{
			BaseURL: baseURL,
			Timeout: recommenderTimeout,
		},
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var req AuthRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Login != "demo" || req.Password != "demo123" {
			t.Errorf("Unexpected credentials %+v", req)
		}

		json.NewEncoder(w).Encode(AuthResponse{Token: "tok-123"})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	resp, err := client.Login(context.Background(), "demo", "demo123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Errorf("Token = %s, want tok-123", resp.Token)
	}
}

func TestRegisterDefaultsRole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var req AuthRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Role != "USER" {
			t.Errorf("Role = %s, want USER", req.Role)
		}

		json.NewEncoder(w).Encode(AuthResponse{Token: "tok-456"})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	if _, err := client.Register(context.Background(), "new", "secret", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestAuthRequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	_, err := client.Login(context.Background(), "demo", "wrong")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if reqErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", reqErr.StatusCode)
	}
}

func TestAuthServerErrorIsNotRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	_, err := client.Login(context.Background(), "demo", "demo123")

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if reqErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", reqErr.StatusCode)
	}
	if calls != 1 {
		t.Errorf("Expected a single request, got %d", calls)
	}
}

func TestAnalyzeServerErrorIsNotRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	_, err := client.Analyze(context.Background(), AnalyzeRequest{UserID: "u"})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if calls != 1 {
		t.Errorf("Expected a single request, got %d", calls)
	}
}

func TestAnalyzeNarrowsClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile/analyze" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"userId":                "user_001",
			"totalScore":            22,
			"profileClassification": "Moderado",
			"identifiedInterests": map[string]interface{}{
				"liquidityNeeded": true,
				"esgInterest":     "high",
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	analysis, err := client.Analyze(context.Background(), AnalyzeRequest{
		UserID:                 "user_001",
		Answers:                profile.Answers{"q1": "c"},
		MonthlyInvestmentValue: 500,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if analysis.Classification != profile.Moderate {
		t.Errorf("Classification = %s, want Moderado", analysis.Classification)
	}
	if analysis.TotalScore != 22 {
		t.Errorf("TotalScore = %d, want 22", analysis.TotalScore)
	}
	if !analysis.Interests.LiquidityNeeded {
		t.Error("Expected LiquidityNeeded true")
	}
}

func TestAnalyzeUnrecognizedClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"userId":                "user_001",
			"totalScore":            10,
			"profileClassification": "UltraAggressive",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	analysis, err := client.Analyze(context.Background(), AnalyzeRequest{UserID: "u"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if analysis.Classification != profile.ClassificationUnknown {
		t.Errorf("Classification = %q, want unknown", analysis.Classification)
	}
}

func TestRecommend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommender" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"FixedIncomesList": [{"name": "Tesouro Selic 2029"}],
			"VariableIncomesList": [{"ticket": "VALE3"}, {"ticket": "PETR4"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	set, err := client.Recommend(context.Background(), profile.Analysis{
		OwnerID:        "user_001",
		Classification: profile.Conservative,
	})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if len(set.FixedIncomeItems) != 1 || set.FixedIncomeItems[0].Name != "Tesouro Selic 2029" {
		t.Errorf("Unexpected fixed income items: %+v", set.FixedIncomeItems)
	}
	if len(set.VariableIncomeItems) != 2 {
		t.Errorf("Expected 2 variable income items, got %d", len(set.VariableIncomeItems))
	}
}

func TestRecommendTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 50*time.Millisecond), logger.NewNop())

	_, err := client.Recommend(context.Background(), profile.Analysis{OwnerID: "user_001"})
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected ErrTimeout, got %v", err)
	}
}

func TestRecommendRequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 30*time.Second), logger.NewNop())

	_, err := client.Recommend(context.Background(), profile.Analysis{OwnerID: "user_001"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if reqErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", reqErr.StatusCode)
	}
}
