package interview

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	sess "intervue/internal/interview"
	"intervue/internal/router"
	"intervue/internal/screen"
	"intervue/internal/screens/summary"
	"intervue/internal/ui/components"
	"intervue/internal/ui/layout"
)

// InterviewScreen implements screen.Screen for an in-progress
// interview. It renders off snapshots of the session service: the
// per-second tick refreshes the countdown and notices when the
// deadline watcher has force-submitted and opened the next question.
type InterviewScreen struct {
	svc       *sess.Service
	sessionID string
	persist   func()

	snapshot   *sess.Session
	remaining  time.Duration
	hasTimer   bool
	questionID string

	input              components.TextInput
	submitting         bool
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)

// New creates an InterviewScreen for the given session. The session
// may be freshly started or a restored one; either way the screen
// picks up at its open question.
func New(svc *sess.Service, sessionID string, persist func()) *InterviewScreen {
	return &InterviewScreen{
		svc:       svc,
		sessionID: sessionID,
		persist:   persist,
		input:     components.NewTextInput("Type your answer...", 0),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(
		s.refresh(),
		s.input.Init(),
		tickCmd(),
	)
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Leave (resume later)"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick()

	case answerSubmittedMsg:
		return s.handleSubmitted(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	cmd := s.refresh()
	if s.finished() {
		return s, s.enterSummary()
	}
	return s, tea.Batch(cmd, tickCmd())
}

func (s *InterviewScreen) handleSubmitted(msg answerSubmittedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if s.persist != nil {
		s.persist()
	}
	cmd := s.refresh()
	if s.finished() {
		return s, s.enterSummary()
	}
	return s, cmd
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, tea.Quit
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			// The session stays in progress; the welcome screen
			// offers it back on the next run.
			if s.persist != nil {
				s.persist()
			}
			return s, tea.Quit
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			return s, nil
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	}

	if s.acceptingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submitAnswer sends the typed answer to the session service. The
// service decides the race against the deadline; a submission that
// loses is simply dropped there.
func (s *InterviewScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	if !s.acceptingInput() {
		return s, nil
	}
	s.submitting = true
	text := s.input.Value()
	svc, id := s.svc, s.sessionID
	return s, func() tea.Msg {
		return answerSubmittedMsg{Err: svc.SubmitAnswer(context.Background(), id, text)}
	}
}

// refresh re-reads the session snapshot and the open question's clock.
// When a new question has opened, the answer box resets and refocuses.
func (s *InterviewScreen) refresh() tea.Cmd {
	snap, err := s.svc.GetSession(s.sessionID)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.snapshot = snap
	s.remaining, s.hasTimer = s.svc.Remaining(s.sessionID)

	if q := snap.CurrentQuestion(); q != nil && s.hasTimer && q.ID != s.questionID {
		s.questionID = q.ID
		s.submitting = false
		s.input = components.NewTextInput("Type your answer...", 0)
		return s.input.Init()
	}
	return nil
}

// acceptingInput reports whether typing should reach the answer box.
func (s *InterviewScreen) acceptingInput() bool {
	return s.errMsg == "" && !s.showingQuitConfirm && !s.submitting && s.hasTimer
}

func (s *InterviewScreen) finished() bool {
	return s.snapshot != nil && s.snapshot.Status == sess.StatusFinished
}

func (s *InterviewScreen) enterSummary() tea.Cmd {
	if s.persist != nil {
		s.persist()
	}
	scr := summary.New(s.snapshot)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: scr}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
