package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgerline/investprofile/backend/internal/profile"
	"github.com/ledgerline/investprofile/backend/internal/recommend"
	"github.com/ledgerline/investprofile/backend/internal/storage"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// artifacts is the typed JSON repository over the key-value store.
// Reads degrade to "not present" on failure: absence is the normal
// not-yet-done state, and a flaky read should look the same.
type artifacts struct {
	store  storage.Store
	logger *logger.Logger
}

func (a *artifacts) saveQuestionnaire(ctx context.Context, record profile.QuestionnaireRecord) error {
	return a.save(ctx, storage.QuestionnaireKey(record.OwnerID), record)
}

func (a *artifacts) questionnaire(ctx context.Context, ownerID string) (profile.QuestionnaireRecord, bool) {
	var record profile.QuestionnaireRecord
	found := a.load(ctx, storage.QuestionnaireKey(ownerID), &record)
	return record, found
}

func (a *artifacts) saveAnalysis(ctx context.Context, analysis profile.Analysis) error {
	return a.save(ctx, storage.AnalysisKey(analysis.OwnerID), analysis)
}

func (a *artifacts) analysis(ctx context.Context, ownerID string) (profile.Analysis, bool) {
	var analysis profile.Analysis
	found := a.load(ctx, storage.AnalysisKey(ownerID), &analysis)
	return analysis, found
}

func (a *artifacts) saveRecommendations(ctx context.Context, ownerID string, set recommend.RecommendationSet) error {
	return a.save(ctx, storage.RecommendationKey(ownerID), set)
}

func (a *artifacts) recommendations(ctx context.Context, ownerID string) (recommend.RecommendationSet, bool) {
	var set recommend.RecommendationSet
	found := a.load(ctx, storage.RecommendationKey(ownerID), &set)
	return set, found
}

func (a *artifacts) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	if err := a.store.Set(ctx, key, string(data)); err != nil {
		return err
	}
	return nil
}

func (a *artifacts) load(ctx context.Context, key string, dest interface{}) bool {
	value, found, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.WithError(err).WithField("key", key).Warn("Artifact read failed, treating as absent")
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		a.logger.WithError(err).WithField("key", key).Warn("Artifact corrupt, treating as absent")
		return false
	}
	return true
}
