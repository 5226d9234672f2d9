package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/investprofile/backend/internal/auth"
	"github.com/ledgerline/investprofile/backend/internal/flow"
	"github.com/ledgerline/investprofile/backend/internal/market"
	"github.com/ledgerline/investprofile/backend/internal/service"
	"github.com/ledgerline/investprofile/backend/internal/storage"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

func newTestHandlers() (*AuthHandler, *ProfileHandler, *RecommendationsHandler, *FlowHandler) {
	store := storage.NewMemoryStore()
	log := logger.NewNop()

	profiles := service.NewProfileService(
		store,
		flow.NewController(store, log),
		service.NewLocalAnalysisSource(),
		service.NewLocalRecommendationSource(market.NewStaticSource()),
		log,
	)
	sessions := auth.NewService(store, auth.NewLocalAuthenticator(), log)

	return NewAuthHandler(sessions, log),
		NewProfileHandler(profiles, log),
		NewRecommendationsHandler(profiles, log),
		NewFlowHandler(profiles, log)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func get(t *testing.T, handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestLoginAndSession(t *testing.T) {
	authH, _, _, _ := newTestHandlers()

	rec := postJSON(t, authH.Login, "/api/v1/auth/login",
		`{"userId":"u1","login":"admin","password":"123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var session auth.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))
	assert.Equal(t, "admin", session.Login)
	assert.NotEmpty(t, session.Token)

	rec = get(t, authH.Session, "/api/v1/auth/session?userId=u1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, authH.Logout, "/api/v1/auth/logout?userId=u1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, authH.Session, "/api/v1/auth/session?userId=u1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	authH, _, _, _ := newTestHandlers()

	rec := postJSON(t, authH.Login, "/api/v1/auth/login",
		`{"userId":"u1","login":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuestionnaireValidationMapsTo400(t *testing.T) {
	_, profileH, _, _ := newTestHandlers()

	rec := postJSON(t, profileH.SubmitQuestionnaire, "/api/v1/profile/questionnaire",
		`{"userId":"u1","answers":{"q1":"z"},"monthlyValue":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, profileH.SubmitQuestionnaire, "/api/v1/profile/questionnaire",
		`{"userId":"u1","answers":{},"monthlyValue":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeWithoutQuestionnaireMapsTo409(t *testing.T) {
	_, profileH, _, _ := newTestHandlers()

	rec := postJSON(t, profileH.Analyze, "/api/v1/profile/analyze", `{"userId":"u1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRecommendationsWithoutAnalysisMapsTo409(t *testing.T) {
	_, _, recH, _ := newTestHandlers()

	rec := postJSON(t, recH.Load, "/api/v1/recommendations", `{"userId":"u1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFullJourneyOverHTTP(t *testing.T) {
	_, profileH, recH, flowH := newTestHandlers()

	rec := postJSON(t, profileH.SubmitQuestionnaire, "/api/v1/profile/questionnaire",
		`{"userId":"u1","answers":{"q1":"e","q2":"e","q3":"e","q4":"e","q5":"e","q6":"e"},"monthlyValue":15000}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, profileH.Analyze, "/api/v1/profile/analyze", `{"userId":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis struct {
		TotalScore     int    `json:"totalScore"`
		Classification string `json:"profileClassification"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&analysis))
	assert.Equal(t, 30, analysis.TotalScore)
	assert.Equal(t, "Sofisticado", analysis.Classification)

	rec = postJSON(t, recH.Load, "/api/v1/recommendations", `{"userId":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var set struct {
		Fixed    []json.RawMessage `json:"FixedIncomesList"`
		Variable []json.RawMessage `json:"VariableIncomesList"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&set))
	assert.Len(t, set.Fixed, 2)
	assert.Len(t, set.Variable, 6)

	rec = get(t, flowH.GetNext, "/api/v1/flow/next?userId=u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var next map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&next))
	assert.Equal(t, "completed", next["nextStep"])
}

func TestFlowResetClearsState(t *testing.T) {
	_, profileH, _, flowH := newTestHandlers()

	postJSON(t, profileH.SubmitQuestionnaire, "/api/v1/profile/questionnaire",
		`{"userId":"u1","answers":{"q1":"a"},"monthlyValue":100}`)

	rec := postJSON(t, flowH.Reset, "/api/v1/flow/reset", `{"userId":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, flowH.GetState, "/api/v1/flow/state?userId=u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var state struct {
		QuestionnaireDone bool `json:"hasCompletedQuestionnaire"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.False(t, state.QuestionnaireDone)
}

func TestRedoQuestionnaireReopensFirstStep(t *testing.T) {
	_, profileH, _, flowH := newTestHandlers()

	postJSON(t, profileH.SubmitQuestionnaire, "/api/v1/profile/questionnaire",
		`{"userId":"u1","answers":{"q1":"c"},"monthlyValue":100}`)
	postJSON(t, profileH.Analyze, "/api/v1/profile/analyze", `{"userId":"u1"}`)

	rec := postJSON(t, flowH.RedoQuestionnaire, "/api/v1/flow/redo-questionnaire", `{"userId":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var state struct {
		QuestionnaireDone bool `json:"hasCompletedQuestionnaire"`
		AnalysisDone      bool `json:"hasAnalyzedProfile"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.False(t, state.QuestionnaireDone, "questionnaire step must reopen")
	assert.True(t, state.AnalysisDone, "later flags stay until the rerun replaces them")

	// Stored answers survive the redo for prefilling.
	rec = get(t, profileH.GetQuestionnaire, "/api/v1/profile/questionnaire?userId=u1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingUserIDRejected(t *testing.T) {
	authH, profileH, recH, flowH := newTestHandlers()

	cases := []struct {
		name string
		rec  *httptest.ResponseRecorder
	}{
		{"session", get(t, authH.Session, "/api/v1/auth/session")},
		{"analysis", get(t, profileH.GetAnalysis, "/api/v1/profile/analysis")},
		{"recommendations", get(t, recH.Get, "/api/v1/recommendations")},
		{"flow state", get(t, flowH.GetState, "/api/v1/flow/state")},
		{"analyze", postJSON(t, profileH.Analyze, "/api/v1/profile/analyze", `{}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, tc.rec.Code)
		})
	}
}
