package welcome

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"intervue/internal/interview"
	"intervue/internal/resume"
	"intervue/internal/router"
	"intervue/internal/screen"
	interviewscr "intervue/internal/screens/interview"
	"intervue/internal/ui/components"
	"intervue/internal/ui/layout"
	"intervue/internal/ui/theme"
)

type mode int

const (
	// modeChoice offers an unfinished interview back to the candidate.
	modeChoice mode = iota
	// modeForm collects the contact details for a new interview.
	modeForm
)

const (
	choiceResume = iota
	choiceStartNew
)

// Options carries the collaborators the welcome screen hands on to the
// interview screen once a session exists.
type Options struct {
	Service   *interview.Service
	Resumable *interview.Session // unfinished interview found at startup, may be nil
	Prefill   resume.Contact     // contact details parsed from a resume file
	Persist   func()
}

// startedMsg is sent when session creation completes.
type startedMsg struct {
	Session *interview.Session
	Err     error
}

const fieldCount = 3

var fieldLabels = [fieldCount]string{"Name", "Email", "Phone"}

// WelcomeScreen collects candidate details and starts the interview.
// When an unfinished interview was restored it first offers to resume
// it instead.
type WelcomeScreen struct {
	opts   Options
	mode   mode
	choice int
	fields [fieldCount]components.TextInput
	focus  int
	errMsg string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. Prefilled contact fields come from the
// resume parser; the candidate can still edit them.
func New(opts Options) *WelcomeScreen {
	w := &WelcomeScreen{opts: opts, mode: modeForm}
	if opts.Resumable != nil {
		w.mode = modeChoice
	}

	placeholders := [fieldCount]string{"Jane Doe", "jane@example.com", "+1 555 0100"}
	prefill := [fieldCount]string{opts.Prefill.Name, opts.Prefill.Email, opts.Prefill.Phone}
	for i := range w.fields {
		w.fields[i] = components.NewTextInput(placeholders[i], 120)
		if prefill[i] != "" {
			w.fields[i].SetValue(prefill[i])
		}
	}
	return w
}

func (w *WelcomeScreen) Init() tea.Cmd {
	if w.mode == modeForm {
		return w.fields[w.focus].Focus()
	}
	return nil
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.mode == modeChoice {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Select"},
			{Key: "Enter", Description: "Confirm"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Tab", Description: "Next field"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return w.handleStarted(msg)

	case tea.KeyMsg:
		if w.mode == modeChoice {
			return w.handleChoiceKey(msg)
		}
		return w.handleFormKey(msg)
	}

	if w.mode == modeForm {
		var cmd tea.Cmd
		w.fields[w.focus], cmd = w.fields[w.focus].Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		w.errMsg = msg.Err.Error()
		return w, nil
	}
	if w.opts.Persist != nil {
		w.opts.Persist()
	}
	return w, w.enterInterview(msg.Session.ID)
}

func (w *WelcomeScreen) handleChoiceKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "down", "tab", "k", "j":
		w.choice = 1 - w.choice
		return w, nil
	case "enter":
		if w.choice == choiceResume {
			return w, w.enterInterview(w.opts.Resumable.ID)
		}
		w.mode = modeForm
		return w, w.fields[w.focus].Focus()
	}
	return w, nil
}

func (w *WelcomeScreen) handleFormKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		w.fields[w.focus].Submit(w.fieldValid(w.focus))
		if w.focus < fieldCount-1 {
			return w, w.moveFocus(w.focus + 1)
		}
		return w.tryStart()
	case "tab", "down":
		return w, w.moveFocus((w.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return w, w.moveFocus((w.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	w.fields[w.focus], cmd = w.fields[w.focus].Update(msg)
	return w, cmd
}

// tryStart validates all fields and launches session creation. An
// incomplete form refocuses the first missing field.
func (w *WelcomeScreen) tryStart() (screen.Screen, tea.Cmd) {
	for i := range w.fields {
		if !w.fieldValid(i) {
			w.fields[i].Submit(false)
			w.errMsg = fmt.Sprintf("%s is required.", fieldLabels[i])
			return w, w.moveFocus(i)
		}
	}
	w.errMsg = ""

	name := strings.TrimSpace(w.fields[0].Value())
	email := strings.TrimSpace(w.fields[1].Value())
	phone := strings.TrimSpace(w.fields[2].Value())
	contact := interview.ContactInfo{Name: &name, Email: &email, Phone: &phone}

	svc := w.opts.Service
	return w, func() tea.Msg {
		sess, err := svc.StartSession(context.Background(), contact)
		return startedMsg{Session: sess, Err: err}
	}
}

func (w *WelcomeScreen) fieldValid(i int) bool {
	return strings.TrimSpace(w.fields[i].Value()) != ""
}

func (w *WelcomeScreen) moveFocus(to int) tea.Cmd {
	w.fields[w.focus].Blur()
	w.focus = to
	return w.fields[w.focus].Focus()
}

func (w *WelcomeScreen) enterInterview(sessionID string) tea.Cmd {
	scr := interviewscr.New(w.opts.Service, sessionID, w.opts.Persist)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: scr}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	if w.mode == modeChoice {
		return w.viewChoice(width, height)
	}
	return w.viewForm(width, height)
}

func (w *WelcomeScreen) viewChoice(width, height int) string {
	res := w.opts.Resumable
	name := "there"
	if res.Name != nil {
		name = *res.Name
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Welcome back, %s!", name)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"You have an unfinished interview, on question %d of %d.",
		res.CurrentQuestionIndex+1, interview.PlanLength,
	)))
	b.WriteString("\n\n")

	options := []string{"Resume interview", "Start a new interview"}
	for i, opt := range options {
		line := "  " + opt
		if i == w.choice {
			line = "> " + opt
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (w *WelcomeScreen) viewForm(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Candidate details"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"The interview has %d timed questions. Fill in your details to begin.",
		interview.PlanLength,
	)))
	b.WriteString("\n\n")

	for i := range w.fields {
		label := fieldLabels[i]
		if i == w.focus {
			b.WriteString(theme.Selected.Render(fmt.Sprintf("%-6s", label)))
		} else {
			b.WriteString(theme.Body.Render(fmt.Sprintf("%-6s", label)))
		}
		b.WriteString(" ")
		b.WriteString(w.fields[i].View())
		b.WriteString("\n")
	}

	if w.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(w.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Enter moves on; the last Enter starts the interview."))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
