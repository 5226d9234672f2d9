package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerline/investprofile/backend/internal/storage"
	"github.com/ledgerline/investprofile/backend/pkg/logger"
)

// Step is the next action the user is expected to take.
type Step string

const (
	StepQuestionnaire   Step = "questionnaire"
	StepProfileAnalysis Step = "profile_analysis"
	StepRecommendations Step = "recommendations"
	StepCompleted       Step = "completed"
)

// State is the durable record of which stages a user has completed.
//
// Later flags are expected to imply earlier ones (RecommendationsDone
// implies AnalysisDone implies QuestionnaireDone) but the controller
// does not enforce that: the original clients relied on the permissive
// behavior, so out-of-order Record* calls are accepted as-is.
type State struct {
	QuestionnaireDone   bool      `json:"hasCompletedQuestionnaire"`
	AnalysisDone        bool      `json:"hasAnalyzedProfile"`
	RecommendationsDone bool      `json:"hasLoadedRecommendations"`
	LastUpdated         time.Time `json:"lastUpdated"`
}

// Controller sequences questionnaire → analysis → recommendations and
// persists the progression. Read-modify-write with last-writer-wins;
// one flow record belongs to one user session, so concurrent writers
// are not coordinated.
type Controller struct {
	store  storage.Store
	logger *logger.Logger
	clock  func() time.Time
}

// NewController creates a flow controller over the given store
func NewController(store storage.Store, log *logger.Logger) *Controller {
	return &Controller{
		store:  store,
		logger: log,
		clock:  time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (c *Controller) WithClock(clock func() time.Time) *Controller {
	c.clock = clock
	return c
}

// State loads the current flow state. A read failure degrades to the
// zero state so the user restarts the flow instead of being blocked.
func (c *Controller) State(ctx context.Context, ownerID string) State {
	value, found, err := c.store.Get(ctx, storage.FlowStateKey(ownerID))
	if err != nil {
		c.logger.WithError(err).WithField("owner", ownerID).
			Warn("Flow state read failed, falling back to initial state")
		return State{LastUpdated: c.clock()}
	}
	if !found {
		return State{LastUpdated: c.clock()}
	}

	var state State
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		c.logger.WithError(err).WithField("owner", ownerID).
			Warn("Flow state corrupt, falling back to initial state")
		return State{LastUpdated: c.clock()}
	}
	return state
}

// RecordQuestionnaireComplete marks the questionnaire stage done.
// Idempotent.
func (c *Controller) RecordQuestionnaireComplete(ctx context.Context, ownerID string) error {
	return c.update(ctx, ownerID, func(s *State) {
		s.QuestionnaireDone = true
	})
}

// RecordAnalysisComplete marks the analysis stage done. The caller is
// expected to have recorded the questionnaire first; not enforced.
func (c *Controller) RecordAnalysisComplete(ctx context.Context, ownerID string) error {
	return c.update(ctx, ownerID, func(s *State) {
		s.AnalysisDone = true
	})
}

// RecordRecommendationsComplete marks the recommendations stage done.
func (c *Controller) RecordRecommendationsComplete(ctx context.Context, ownerID string) error {
	return c.update(ctx, ownerID, func(s *State) {
		s.RecommendationsDone = true
	})
}

// RedoQuestionnaire flips only the questionnaire flag back. Prior
// analysis and recommendation artifacts stay and are stale until the
// flow is replayed; the caller owns that tradeoff.
func (c *Controller) RedoQuestionnaire(ctx context.Context, ownerID string) error {
	return c.update(ctx, ownerID, func(s *State) {
		s.QuestionnaireDone = false
	})
}

// Reset clears the flow state and all three artifacts. Every deletion
// is attempted; failures are collected and reported together.
func (c *Controller) Reset(ctx context.Context, ownerID string) error {
	keys := []string{
		storage.QuestionnaireKey(ownerID),
		storage.AnalysisKey(ownerID),
		storage.RecommendationKey(ownerID),
		storage.FlowStateKey(ownerID),
	}

	var failed []string
	for _, key := range keys {
		if err := c.store.Delete(ctx, key); err != nil {
			c.logger.WithError(err).WithField("key", key).Error("Reset deletion failed")
			failed = append(failed, key)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("reset incomplete, failed to delete: %s", strings.Join(failed, ", "))
	}

	c.logger.WithField("owner", ownerID).Info("User progress reset")
	return nil
}

// NextStep returns the first unmet stage in priority order
func (c *Controller) NextStep(ctx context.Context, ownerID string) Step {
	state := c.State(ctx, ownerID)

	switch {
	case !state.QuestionnaireDone:
		return StepQuestionnaire
	case !state.AnalysisDone:
		return StepProfileAnalysis
	case !state.RecommendationsDone:
		return StepRecommendations
	default:
		return StepCompleted
	}
}

// CanAccessProfile reports whether the profile screen is reachable
func (c *Controller) CanAccessProfile(ctx context.Context, ownerID string) bool {
	return c.State(ctx, ownerID).QuestionnaireDone
}

// CanAccessRecommendations reports whether the recommendations screen
// is reachable
func (c *Controller) CanAccessRecommendations(ctx context.Context, ownerID string) bool {
	state := c.State(ctx, ownerID)
	return state.QuestionnaireDone && state.AnalysisDone
}

// update applies fn over the loaded state and writes it back
func (c *Controller) update(ctx context.Context, ownerID string, fn func(*State)) error {
	state := c.State(ctx, ownerID)
	fn(&state)
	state.LastUpdated = c.clock()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal flow state: %w", err)
	}

	if err := c.store.Set(ctx, storage.FlowStateKey(ownerID), string(data)); err != nil {
		return fmt.Errorf("failed to persist flow state: %w", err)
	}
	return nil
}
