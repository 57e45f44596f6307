package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"intervue/internal/interview"
	"intervue/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect stored interview sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := loadStoredSessions(cmd)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		fmt.Printf("%-36s  %-20s  %-12s  %-9s  %s\n", "ID", "Candidate", "Status", "Progress", "Score")
		fmt.Println(strings.Repeat("─", 90))
		for _, s := range sessions {
			name := ""
			if s.Name != nil {
				name = *s.Name
			}
			if len(name) > 20 {
				name = name[:20]
			}
			score := "-"
			if s.FinalScorePercent != nil {
				score = fmt.Sprintf("%d%%", *s.FinalScorePercent)
			}
			fmt.Printf("%-36s  %-20s  %-12s  %d/%d        %s\n",
				s.ID, name, s.Status, len(s.Questions), interview.PlanLength, score)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one session's questions, answers and transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := loadStoredSessions(cmd)
		if err != nil {
			return err
		}
		for _, s := range sessions {
			if s.ID == args[0] {
				printSession(s)
				return nil
			}
		}
		return fmt.Errorf("session %s not found", args[0])
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
}

func loadStoredSessions(cmd *cobra.Command) ([]*interview.Session, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return st.LoadSessions(context.Background())
}

func printSession(s *interview.Session) {
	fmt.Printf("ID:      %s\n", s.ID)
	if s.Name != nil {
		fmt.Printf("Name:    %s\n", *s.Name)
	}
	if s.Email != nil {
		fmt.Printf("Email:   %s\n", *s.Email)
	}
	if s.Phone != nil {
		fmt.Printf("Phone:   %s\n", *s.Phone)
	}
	fmt.Printf("Status:  %s\n", s.Status)
	if s.StartedAt != nil {
		fmt.Printf("Started: %s\n", s.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if s.FinishedAt != nil {
		fmt.Printf("Ended:   %s\n", s.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if s.FinalScorePercent != nil {
		fmt.Printf("Score:   %d%%\n", *s.FinalScorePercent)
	}
	if s.Summary != nil {
		fmt.Printf("\n%s\n", *s.Summary)
	}

	sep := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(sep)
	for i, q := range s.Questions {
		fmt.Printf("Q%d [%s, %ds]: %s\n", i+1, q.Difficulty, q.TimeLimitSeconds, q.Text)
		if q.AnswerText != nil {
			answer := *q.AnswerText
			if answer == "" {
				answer = "(no answer)"
			}
			fmt.Printf("  Answer: %s\n", answer)
		}
		if q.Score != nil {
			fmt.Printf("  Score: %d\n", *q.Score)
		}
		if q.Feedback != nil {
			fmt.Printf("  Feedback: %s\n", *q.Feedback)
		}
	}

	if len(s.Transcript) > 0 {
		fmt.Println(sep)
		fmt.Println("TRANSCRIPT")
		fmt.Println(sep)
		for _, m := range s.Transcript {
			fmt.Printf("[%s] %s: %s\n", m.At.Local().Format("15:04:05"), m.Role, m.Text)
		}
	}
}
