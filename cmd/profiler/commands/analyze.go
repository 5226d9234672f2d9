package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/investprofile/backend/internal/profile"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a questionnaire locally",
	Long: `Scores a set of questionnaire answers with the built-in engine
and prints the resulting analysis. No store or remote service is
involved.

Answers are a JSON object mapping question ids to option letters a-e.

Example:
  go run ./cmd/profiler analyze --answers '{"q1":"b","q2":"a","q3":"e"}'
  go run ./cmd/profiler analyze --answers '{"q1":"d"}' --monthly 12000`,
	RunE: runAnalyze,
}

var (
	analyzeAnswers string
	analyzeMonthly float64
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().StringVar(&analyzeAnswers, "answers", "", "answers as a JSON object (required)")
	analyzeCmd.Flags().Float64Var(&analyzeMonthly, "monthly", 0, "monthly investment value")
	analyzeCmd.MarkFlagRequired("answers")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var answers profile.Answers
	if err := json.Unmarshal([]byte(analyzeAnswers), &answers); err != nil {
		return fmt.Errorf("parse answers: %w", err)
	}

	analysis, err := profile.Score(answers, analyzeMonthly)
	if err != nil {
		return fmt.Errorf("score answers: %w", err)
	}

	fmt.Println("=== Profile Analysis ===")
	fmt.Printf("Total score:    %d\n", analysis.TotalScore)
	fmt.Printf("Classification: %s\n", analysis.Classification)
	fmt.Printf("ESG interest:   %s\n", analysis.Interests.ESGInterest)
	fmt.Printf("Liquidity:      %v\n", analysis.Interests.LiquidityNeeded)

	if len(analysis.Interests.MacroeconomicConcerns) > 0 {
		fmt.Println("Macroeconomic concerns:")
		for _, concern := range analysis.Interests.MacroeconomicConcerns {
			fmt.Printf("  - %s\n", concern)
		}
	}
	if analysis.Interests.RiskToleranceNotes != "" {
		fmt.Printf("Risk notes:     %s\n", analysis.Interests.RiskToleranceNotes)
	}

	return nil
}
