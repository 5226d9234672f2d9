package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/investprofile/backend/internal/flow"
	"github.com/ledgerline/investprofile/backend/internal/market"
	"github.com/ledgerline/investprofile/backend/internal/profile"
	"github.com/ledgerline/investprofile/backend/internal/recommend"
	"github.com/ledgerline/investprofile/backend/internal/storage"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

const testOwner = "user_001"

func newTestService() (*ProfileService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	log := logger.NewNop()
	flowCtrl := flow.NewController(store, log)

	svc := NewProfileService(
		store,
		flowCtrl,
		NewLocalAnalysisSource(),
		NewLocalRecommendationSource(market.NewStaticSource()),
		log,
	)
	return svc, store
}

func TestFullFlowLocalMode(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	// Step 1: questionnaire
	answers := profile.Answers{"q1": "b", "q2": "a", "q3": "e"}
	record, err := svc.SubmitQuestionnaire(ctx, testOwner, answers, 500)
	require.NoError(t, err)
	assert.Equal(t, testOwner, record.OwnerID)
	assert.Equal(t, flow.StepProfileAnalysis, svc.Flow().NextStep(ctx, testOwner))

	// Step 2: analysis
	analysis, err := svc.AnalyzeProfile(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, 8, analysis.TotalScore)
	assert.Equal(t, profile.Conservative, analysis.Classification)
	assert.True(t, analysis.Interests.LiquidityNeeded)
	assert.Equal(t, flow.StepRecommendations, svc.Flow().NextStep(ctx, testOwner))

	// Step 3: recommendations
	set, err := svc.LoadRecommendations(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, set.FixedIncomeItems, 3)
	assert.Len(t, set.VariableIncomeItems, 2)
	assert.Equal(t, flow.StepCompleted, svc.Flow().NextStep(ctx, testOwner))
}

func TestAnalyzeWithoutQuestionnaire(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.AnalyzeProfile(ctx, testOwner)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrecondition)

	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Equal(t, "questionnaire", preErr.Missing)
}

func TestRecommendationsWithoutAnalysis(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	svc.SubmitQuestionnaire(ctx, testOwner, profile.Answers{"q1": "a"}, 100)

	_, err := svc.LoadRecommendations(ctx, testOwner)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrecondition)

	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Equal(t, "profile analysis", preErr.Missing)
}

func TestSubmitQuestionnaireRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	_, err := svc.SubmitQuestionnaire(ctx, testOwner, profile.Answers{"q1": "z"}, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrValidation)
	assert.Equal(t, 0, store.Len(), "invalid questionnaire must not be persisted")
}

func TestArtifactRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	answers := profile.Answers{"q1": "d", "q2": "c"}
	submitted, err := svc.SubmitQuestionnaire(ctx, testOwner, answers, 2500)
	require.NoError(t, err)

	loaded, found := svc.Questionnaire(ctx, testOwner)
	require.True(t, found)
	assert.Equal(t, submitted.Answers, loaded.Answers)
	assert.Equal(t, submitted.MonthlyInvestmentValue, loaded.MonthlyInvestmentValue)
	assert.True(t, submitted.CompletedAt.Equal(loaded.CompletedAt))

	computed, err := svc.AnalyzeProfile(ctx, testOwner)
	require.NoError(t, err)

	storedAnalysis, found := svc.Analysis(ctx, testOwner)
	require.True(t, found)
	assert.Equal(t, computed.TotalScore, storedAnalysis.TotalScore)
	assert.Equal(t, computed.Classification, storedAnalysis.Classification)
	assert.Equal(t, computed.Interests, storedAnalysis.Interests)
	assert.True(t, computed.AnalyzedAt.Equal(storedAnalysis.AnalyzedAt))
}

func TestRerunReplacesAnalysis(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	svc.SubmitQuestionnaire(ctx, testOwner, profile.Answers{"q1": "a"}, 100)
	first, err := svc.AnalyzeProfile(ctx, testOwner)
	require.NoError(t, err)

	// Redo with different answers; the rerun replaces the analysis.
	svc.SubmitQuestionnaire(ctx, testOwner, profile.Answers{"q1": "e", "q2": "e", "q3": "e", "q4": "e", "q5": "e", "q6": "e"}, 100)
	second, err := svc.AnalyzeProfile(ctx, testOwner)
	require.NoError(t, err)

	assert.NotEqual(t, first.TotalScore, second.TotalScore)
	stored, _ := svc.Analysis(ctx, testOwner)
	assert.Equal(t, second.TotalScore, stored.TotalScore)
}

func TestResetClearsOverview(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	svc.SubmitQuestionnaire(ctx, testOwner, profile.Answers{"q1": "c"}, 100)
	svc.AnalyzeProfile(ctx, testOwner)
	svc.LoadRecommendations(ctx, testOwner)

	require.NoError(t, svc.ResetProgress(ctx, testOwner))

	overview := svc.StoredOverview(ctx, testOwner)
	assert.Nil(t, overview.Questionnaire)
	assert.Nil(t, overview.Analysis)
	assert.Nil(t, overview.Recommendations)
	assert.False(t, overview.FlowState.QuestionnaireDone)
	assert.Equal(t, 0, store.Len())
}

func TestStorageWriteFailurePropagates(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	store.FailOps = map[string]error{"set": errors.New("disk full")}

	_, err := svc.SubmitQuestionnaire(ctx, testOwner, profile.Answers{"q1": "a"}, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrStorage)
}

func TestArtifactReadFailureTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	svc.SubmitQuestionnaire(ctx, testOwner, profile.Answers{"q1": "a"}, 100)
	store.FailOps = map[string]error{"get": errors.New("connection refused")}

	_, found := svc.Questionnaire(ctx, testOwner)
	assert.False(t, found, "read failure must look like absence")

	// Which in turn makes analysis a precondition failure, not a
	// storage failure.
	_, err := svc.AnalyzeProfile(ctx, testOwner)
	assert.ErrorIs(t, err, ErrPrecondition)
}

type failingRecommender struct{ err error }

func (f *failingRecommender) Recommend(ctx context.Context, analysis profile.Analysis) (recommend.RecommendationSet, error) {
	return recommend.RecommendationSet{}, f.err
}

func TestRecommendationSourceErrorsBubbleUnmodified(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	log := logger.NewNop()
	wantErr := errors.New("upstream exploded")

	svc := NewProfileService(
		store,
		flow.NewController(store, log),
		NewLocalAnalysisSource(),
		&failingRecommender{err: wantErr},
		log,
	)

	svc.SubmitQuestionnaire(ctx, testOwner, profile.Answers{"q1": "a"}, 100)
	svc.AnalyzeProfile(ctx, testOwner)

	_, err := svc.LoadRecommendations(ctx, testOwner)
	assert.ErrorIs(t, err, wantErr)

	// Failed stage leaves the flow untouched.
	assert.Equal(t, flow.StepRecommendations, svc.Flow().NextStep(ctx, testOwner))
}
