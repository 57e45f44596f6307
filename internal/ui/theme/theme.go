package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"intervue/internal/interviewer"
)

// Color palette. Restrained, reads well in an interview setting.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	TimerOK = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	TimerLow = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// difficultyColors maps each question difficulty to its badge color.
var difficultyColors = map[interviewer.Difficulty]color.Color{
	interviewer.DifficultyEasy:   Success,
	interviewer.DifficultyMedium: Accent,
	interviewer.DifficultyHard:   Error,
}

// DifficultyStyle returns the badge style for a question difficulty.
func DifficultyStyle(d interviewer.Difficulty) lipgloss.Style {
	c, ok := difficultyColors[d]
	if !ok {
		c = TextDim
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
