package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"intervue/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "intervue",
	Short: "AI-driven technical interviewer",
	Long: "Intervue runs timed technical interviews in the terminal: six questions of\n" +
		"increasing difficulty, each scored by an AI interviewer, with a final summary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func Execute() error {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTERVUE_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "pretty", "Log format (pretty, json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then INTERVUE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
