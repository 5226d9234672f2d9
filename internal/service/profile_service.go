package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline/investprofile/backend/internal/flow"
	"github.com/ledgerline/investprofile/backend/internal/profile"
	"github.com/ledgerline/investprofile/backend/internal/recommend"
	"github.com/ledgerline/investprofile/backend/internal/storage"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// ErrPrecondition marks operations invoked out of sequence.
var ErrPrecondition = errors.New("precondition error")

// PreconditionError names the missing prerequisite of an operation.
type PreconditionError struct {
	Missing string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("missing prerequisite: %s", e.Missing)
}

// Is reports ErrPrecondition so errors.Is matches.
func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

// Overview bundles everything stored for one owner.
type Overview struct {
	FlowState       flow.State                   `json:"flowState"`
	Questionnaire   *profile.QuestionnaireRecord `json:"questionnaire,omitempty"`
	Analysis        *profile.Analysis            `json:"profile,omitempty"`
	Recommendations *recommend.RecommendationSet `json:"recommendations,omitempty"`
}

// ProfileService sequences questionnaire → analysis → recommendations
// over the durable store. Each stage persists its artifact, then its
// flow flag. Two writes, not a transaction; a crash between them
// leaves the artifact present with the flag unset, and the next run
// of that stage replaces the artifact.
type ProfileService struct {
	artifacts artifacts
	flow      *flow.Controller
	analyzer  AnalysisSource
	selector  RecommendationSource
	logger    *logger.Logger
	clock     func() time.Time
}

// NewProfileService wires the orchestrator. The analysis and
// recommendation sources decide local versus remote; the service
// itself has no mode switch.
func NewProfileService(store storage.Store, flowCtrl *flow.Controller, analyzer AnalysisSource, selector RecommendationSource, log *logger.Logger) *ProfileService {
	return &ProfileService{
		artifacts: artifacts{store: store, logger: log},
		flow:      flowCtrl,
		analyzer:  analyzer,
		selector:  selector,
		logger:    log,
		clock:     time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *ProfileService) WithClock(clock func() time.Time) *ProfileService {
	s.clock = clock
	return s
}

// Flow exposes the flow controller for gating queries
func (s *ProfileService) Flow() *flow.Controller {
	return s.flow
}

// SubmitQuestionnaire validates and persists the questionnaire, then
// records the stage. Replaces any previous record whole.
func (s *ProfileService) SubmitQuestionnaire(ctx context.Context, ownerID string, answers profile.Answers, monthlyValue float64) (profile.QuestionnaireRecord, error) {
	// Run the scorer's validation up front so a bad answer set never
	// reaches the store.
	if _, err := profile.Score(answers, monthlyValue); err != nil {
		return profile.QuestionnaireRecord{}, err
	}

	record := profile.QuestionnaireRecord{
		OwnerID:                ownerID,
		Answers:                answers,
		MonthlyInvestmentValue: monthlyValue,
		CompletedAt:            s.clock(),
	}

	if err := s.artifacts.saveQuestionnaire(ctx, record); err != nil {
		return profile.QuestionnaireRecord{}, fmt.Errorf("failed to save questionnaire: %w", err)
	}

	if err := s.flow.RecordQuestionnaireComplete(ctx, ownerID); err != nil {
		return profile.QuestionnaireRecord{}, fmt.Errorf("questionnaire saved but flow update failed: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"owner":     ownerID,
		"questions": len(answers),
	}).Info("Questionnaire submitted")

	return record, nil
}

// Questionnaire returns the stored questionnaire record
func (s *ProfileService) Questionnaire(ctx context.Context, ownerID string) (profile.QuestionnaireRecord, bool) {
	return s.artifacts.questionnaire(ctx, ownerID)
}

// AnalyzeProfile computes and persists the analysis. Requires a
// stored questionnaire.
func (s *ProfileService) AnalyzeProfile(ctx context.Context, ownerID string) (profile.Analysis, error) {
	record, found := s.artifacts.questionnaire(ctx, ownerID)
	if !found {
		return profile.Analysis{}, &PreconditionError{Missing: "questionnaire"}
	}

	analysis, err := s.analyzer.Analyze(ctx, record)
	if err != nil {
		return profile.Analysis{}, err
	}
	analysis.OwnerID = ownerID
	analysis.AnalyzedAt = s.clock()

	if err := s.artifacts.saveAnalysis(ctx, analysis); err != nil {
		return profile.Analysis{}, fmt.Errorf("failed to save analysis: %w", err)
	}

	if err := s.flow.RecordAnalysisComplete(ctx, ownerID); err != nil {
		return profile.Analysis{}, fmt.Errorf("analysis saved but flow update failed: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"owner":          ownerID,
		"total_score":    analysis.TotalScore,
		"classification": analysis.Classification,
	}).Info("Profile analyzed")

	return analysis, nil
}

// Analysis returns the stored profile analysis
func (s *ProfileService) Analysis(ctx context.Context, ownerID string) (profile.Analysis, bool) {
	return s.artifacts.analysis(ctx, ownerID)
}

// LoadRecommendations computes and persists the recommendation set.
// Requires a stored analysis.
func (s *ProfileService) LoadRecommendations(ctx context.Context, ownerID string) (recommend.RecommendationSet, error) {
	analysis, found := s.artifacts.analysis(ctx, ownerID)
	if !found {
		return recommend.RecommendationSet{}, &PreconditionError{Missing: "profile analysis"}
	}

	set, err := s.selector.Recommend(ctx, analysis)
	if err != nil {
		return recommend.RecommendationSet{}, err
	}
	set.LoadedAt = s.clock()

	if err := s.artifacts.saveRecommendations(ctx, ownerID, set); err != nil {
		return recommend.RecommendationSet{}, fmt.Errorf("failed to save recommendations: %w", err)
	}

	if err := s.flow.RecordRecommendationsComplete(ctx, ownerID); err != nil {
		return recommend.RecommendationSet{}, fmt.Errorf("recommendations saved but flow update failed: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"owner":          ownerID,
		"fixed_items":    len(set.FixedIncomeItems),
		"variable_items": len(set.VariableIncomeItems),
	}).Info("Recommendations loaded")

	return set, nil
}

// Recommendations returns the stored recommendation set
func (s *ProfileService) Recommendations(ctx context.Context, ownerID string) (recommend.RecommendationSet, bool) {
	return s.artifacts.recommendations(ctx, ownerID)
}

// StoredOverview returns everything persisted for the owner
func (s *ProfileService) StoredOverview(ctx context.Context, ownerID string) Overview {
	overview := Overview{
		FlowState: s.flow.State(ctx, ownerID),
	}

	if record, found := s.artifacts.questionnaire(ctx, ownerID); found {
		overview.Questionnaire = &record
	}
	if analysis, found := s.artifacts.analysis(ctx, ownerID); found {
		overview.Analysis = &analysis
	}
	if set, found := s.artifacts.recommendations(ctx, ownerID); found {
		overview.Recommendations = &set
	}

	return overview
}

// ResetProgress wipes the flow state and all artifacts
func (s *ProfileService) ResetProgress(ctx context.Context, ownerID string) error {
	return s.flow.Reset(ctx, ownerID)
}
