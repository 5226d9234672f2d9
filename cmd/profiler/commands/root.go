package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "profiler",
	Short: "Investor profile service",
	Long: `Investor profile CLI

Risk questionnaire scoring, investor classification and tiered
instrument recommendations, served over HTTP or run locally.

Usage:
  go run ./cmd/profiler [command]

Examples:
  go run ./cmd/profiler api
  go run ./cmd/profiler analyze --answers '{"q1":"b","q2":"a"}'
  go run ./cmd/profiler status --user user_001
  go run ./cmd/profiler reset --user user_001`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
