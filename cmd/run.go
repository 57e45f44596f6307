package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"intervue/internal/app"
	"intervue/internal/interview"
	"intervue/internal/interviewer"
	"intervue/internal/llm"
	"intervue/internal/logger"
	"intervue/internal/resume"
	"intervue/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interview in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func init() {
	runCmd.Flags().String("resume", "", "Path to a plain-text resume to prefill contact details")
}

// runInterview opens the store, builds the AI interviewer and launches
// the interview UI. An unfinished interview found in the store is
// offered back to the candidate before a new one starts.
func runInterview(cmd *cobra.Command) error {
	ctx := cmd.Context()

	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	log := logger.Setup(level, format)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), st, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Running with the built-in question bank.")
		provider = nil
	}

	oracle := interviewer.NewService(provider, interviewer.DefaultConfig(), log)
	svc := interview.NewService(oracle, log)
	defer svc.Close()

	stored, err := st.LoadSessions(ctx)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	svc.RestoreSessions(stored)

	persist := func() {
		if err := st.SaveSessions(context.Background(), svc.ExportSessions()); err != nil {
			log.Warn().Err(err).Msg("failed to persist sessions")
		}
	}
	defer persist()

	opts := app.Options{
		Service: svc,
		Persist: persist,
	}
	if resumable, ok := svc.ActiveSession(); ok {
		opts.Resumable = resumable
	}

	if path, _ := cmd.Flags().GetString("resume"); path != "" {
		contact, _, err := resume.ExtractFile(path)
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}
		opts.Prefill = contact
	}

	return app.Run(opts)
}
