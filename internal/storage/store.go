package storage

import (
	"context"
	"fmt"
)

// Store is the durable key-value persistence contract.
// Absent keys are reported as found=false, never as an error.
type Store interface {
	// Get retrieves the value for key.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Storage keys, one namespaced key per durable record.
const (
	keyPrefix = "investprofile"

	keySessionToken   = "session:token"
	keySessionData    = "session:data"
	keyQuestionnaire  = "questionnaire"
	keyAnalysis       = "analysis"
	keyRecommendation = "recommendations"
	keyFlowState      = "flow_state"
)

// ownerKey builds the full key for one owner's record
func ownerKey(ownerID, suffix string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, ownerID, suffix)
}

func SessionTokenKey(ownerID string) string  { return ownerKey(ownerID, keySessionToken) }
func SessionDataKey(ownerID string) string   { return ownerKey(ownerID, keySessionData) }
func QuestionnaireKey(ownerID string) string { return ownerKey(ownerID, keyQuestionnaire) }
func AnalysisKey(ownerID string) string      { return ownerKey(ownerID, keyAnalysis) }
func RecommendationKey(ownerID string) string {
	return ownerKey(ownerID, keyRecommendation)
}
func FlowStateKey(ownerID string) string { return ownerKey(ownerID, keyFlowState) }
