package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	sess "intervue/internal/interview"
	"intervue/internal/interviewer"
	"intervue/internal/screen"
	"intervue/internal/ui/layout"
	"intervue/internal/ui/theme"
)

// SummaryScreen displays the finished interview: final score, the
// interviewer's summary and the per-question breakdown.
type SummaryScreen struct {
	session *sess.Session
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(session *sess.Session) *SummaryScreen {
	return &SummaryScreen{session: session}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Exit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.session
	if res == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Interview complete!"))
	b.WriteString("\n\n")

	if res.FinalScorePercent != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("Final score: %d%%", *res.FinalScorePercent)))
		b.WriteString("\n\n")
	}

	if res.Summary != nil {
		summaryStyle := lipgloss.NewStyle().
			Width(min(width-8, 80)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, summaryStyle.Render(*res.Summary)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	for i, q := range res.Questions {
		b.WriteString(s.renderQuestion(i, q, width))
	}

	return b.String()
}

// renderQuestion renders one line of the per-question breakdown.
func (s *SummaryScreen) renderQuestion(i int, q *sess.QuestionRecord, width int) string {
	var b strings.Builder

	badge := theme.DifficultyStyle(q.Difficulty).Render(fmt.Sprintf("%-6s", q.Difficulty))
	score := "-"
	if q.Score != nil {
		score = fmt.Sprintf("%d/%d", *q.Score, interviewer.MaxScore)
	}

	lineStyle := lipgloss.NewStyle().Width(min(width-8, 90))
	b.WriteString("  ")
	b.WriteString(badge)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf(" %s  ", score)))
	b.WriteString(lineStyle.Foreground(theme.Text).Render(fmt.Sprintf("Q%d: %s", i+1, q.Text)))
	b.WriteString("\n")

	answer := "(no answer)"
	if q.AnswerText != nil && *q.AnswerText != "" {
		answer = *q.AnswerText
	}
	b.WriteString(lineStyle.Foreground(theme.TextDim).Render("         " + answer))
	b.WriteString("\n")

	if q.Feedback != nil && *q.Feedback != "" {
		b.WriteString(lineStyle.Foreground(theme.TextDim).Italic(true).Render("         " + *q.Feedback))
		b.WriteString("\n")
	}

	return b.String()
}
