package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "intervue/internal/interview"
	"intervue/internal/ui/theme"
)

const lowTimeThreshold = 10 // seconds left before the timer turns red

func (s *InterviewScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.snapshot == nil {
		return renderLoading(width, height)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	q := s.snapshot.CurrentQuestion()
	if q == nil || q.Answered() || !s.hasTimer {
		return renderEvaluating(width, height)
	}
	return s.renderQuestionView(width, height, q)
}

// renderQuestionView renders the open question with its countdown.
func (s *InterviewScreen) renderQuestionView(width, height int, q *sess.QuestionRecord) string {
	var b strings.Builder

	// Progress and timer line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.snapshot.CurrentQuestionIndex+1, sess.PlanLength))

	badge := theme.DifficultyStyle(q.Difficulty).Render(strings.ToUpper(string(q.Difficulty)))

	secs := int(s.remaining.Seconds())
	timerStyle := theme.TimerOK
	if secs <= lowTimeThreshold {
		timerStyle = theme.TimerLow
	}
	timer := timerStyle.Render(fmt.Sprintf("%d:%02d", secs/60, secs%60))

	infoRight := badge + lipgloss.NewStyle().Foreground(theme.TextDim).Render("   ") + timer

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Question text.
	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 90)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
	b.WriteString("\n\n")

	// Answer box.
	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
	b.WriteString(answerLine)
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("When the timer runs out the answer submits as-is."))

	return b.String()
}

func renderLoading(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Subtitle.Render("Preparing your interview..."))
}

func renderEvaluating(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Subtitle.Render("Reviewing your answer..."))
}

func renderQuitConfirm(width, height int) string {
	content := theme.Card.Render(
		theme.Body.Bold(true).Render("Leave the interview?") + "\n\n" +
			theme.Hint.Render("Question timers keep counting down.\nYou can resume from where you left off.") + "\n\n" +
			theme.Body.Render("[Y]es  /  [N]o"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderError(width, height int, msg string) string {
	content := lipgloss.NewStyle().Foreground(theme.Error).Render("Something went wrong") +
		"\n\n" + theme.Body.Render(msg) +
		"\n\n" + theme.Hint.Render("press any key to exit")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
