package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/investprofile/backend/internal/flow"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a user's journey state",
	Long: `Prints which steps of the questionnaire journey the user has
completed and what comes next.

Example:
  go run ./cmd/profiler status --user user_001`,
	RunE: runStatus,
}

var (
	statusUser string
)

func init() {
	rootCmd.AddCommand(statusCmd)

	// Flags
	statusCmd.Flags().StringVar(&statusUser, "user", "", "user id (required)")
	statusCmd.MarkFlagRequired("user")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, store, cleanup, log, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	flowCtrl := flow.NewController(store, log)
	state := flowCtrl.State(ctx, statusUser)

	fmt.Printf("=== Journey status for %s ===\n", statusUser)
	fmt.Printf("Questionnaire:   %s\n", checkmark(state.QuestionnaireDone))
	fmt.Printf("Analysis:        %s\n", checkmark(state.AnalysisDone))
	fmt.Printf("Recommendations: %s\n", checkmark(state.RecommendationsDone))
	if !state.LastUpdated.IsZero() {
		fmt.Printf("Last updated:    %s\n", state.LastUpdated.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Next step:       %s\n", flowCtrl.NextStep(ctx, statusUser))

	return nil
}

func checkmark(done bool) string {
	if done {
		return "✅ done"
	}
	return "⬜ pending"
}
