package service

import (
	"context"

	"github.com/ledgerline/investprofile/backend/internal/market"
	"github.com/ledgerline/investprofile/backend/internal/profile"
	"github.com/ledgerline/investprofile/backend/internal/recommend"
	"github.com/ledgerline/investprofile/backend/internal/remote"
)

// AnalysisSource computes the investor profile for a questionnaire.
// The local and remote implementations honor the same contract, so
// the orchestration never branches on a mode flag.
type AnalysisSource interface {
	Analyze(ctx context.Context, record profile.QuestionnaireRecord) (profile.Analysis, error)
}

// RecommendationSource produces the tiered instrument selection for
// an analysis.
type RecommendationSource interface {
	Recommend(ctx context.Context, analysis profile.Analysis) (recommend.RecommendationSet, error)
}

// LocalAnalysisSource runs the built-in scorer.
type LocalAnalysisSource struct{}

func NewLocalAnalysisSource() *LocalAnalysisSource {
	return &LocalAnalysisSource{}
}

func (s *LocalAnalysisSource) Analyze(ctx context.Context, record profile.QuestionnaireRecord) (profile.Analysis, error) {
	analysis, err := profile.Score(record.Answers, record.MonthlyInvestmentValue)
	if err != nil {
		return profile.Analysis{}, err
	}
	analysis.OwnerID = record.OwnerID
	return analysis, nil
}

// RemoteAnalysisSource delegates to the analyzer service.
type RemoteAnalysisSource struct {
	client *remote.Client
}

func NewRemoteAnalysisSource(client *remote.Client) *RemoteAnalysisSource {
	return &RemoteAnalysisSource{client: client}
}

func (s *RemoteAnalysisSource) Analyze(ctx context.Context, record profile.QuestionnaireRecord) (profile.Analysis, error) {
	return s.client.Analyze(ctx, remote.AnalyzeRequest{
		UserID:                 record.OwnerID,
		Answers:                record.Answers,
		MonthlyInvestmentValue: record.MonthlyInvestmentValue,
	})
}

// LocalRecommendationSource slices the catalog source with the
// built-in tiering rule.
type LocalRecommendationSource struct {
	catalogs market.CatalogSource
}

func NewLocalRecommendationSource(catalogs market.CatalogSource) *LocalRecommendationSource {
	return &LocalRecommendationSource{catalogs: catalogs}
}

func (s *LocalRecommendationSource) Recommend(ctx context.Context, analysis profile.Analysis) (recommend.RecommendationSet, error) {
	fixed, err := s.catalogs.FixedIncome(ctx)
	if err != nil {
		return recommend.RecommendationSet{}, err
	}
	variable, err := s.catalogs.VariableIncome(ctx)
	if err != nil {
		return recommend.RecommendationSet{}, err
	}

	return recommend.Select(analysis.Classification, fixed, variable), nil
}

// RemoteRecommendationSource delegates to the recommender service.
type RemoteRecommendationSource struct {
	client *remote.Client
}

func NewRemoteRecommendationSource(client *remote.Client) *RemoteRecommendationSource {
	return &RemoteRecommendationSource{client: client}
}

func (s *RemoteRecommendationSource) Recommend(ctx context.Context, analysis profile.Analysis) (recommend.RecommendationSet, error) {
	return s.client.Recommend(ctx, analysis)
}
