package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/investprofile/backend/internal/flow"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a user's stored progress",
	Long: `Deletes the stored questionnaire, analysis, recommendations and
flow state for the user. The user starts over from the questionnaire.

Example:
  go run ./cmd/profiler reset --user user_001`,
	RunE: runReset,
}

var (
	resetUser string
)

func init() {
	rootCmd.AddCommand(resetCmd)

	// Flags
	resetCmd.Flags().StringVar(&resetUser, "user", "", "user id (required)")
	resetCmd.MarkFlagRequired("user")
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx, store, cleanup, log, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	flowCtrl := flow.NewController(store, log)
	if err := flowCtrl.Reset(ctx, resetUser); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}

	fmt.Printf("✅ Progress cleared for %s\n", resetUser)
	return nil
}
