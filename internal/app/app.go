package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"intervue/internal/interview"
	"intervue/internal/resume"
	"intervue/internal/router"
	"intervue/internal/screen"
	"intervue/internal/screens/welcome"
	"intervue/internal/ui/layout"
)

// Options carries everything the interview flow needs. The command
// layer builds the collaborators; the screens only consume them.
type Options struct {
	Service   *interview.Service
	Resumable *interview.Session // unfinished interview found at startup, may be nil
	Prefill   resume.Contact     // contact details parsed from a resume file
	Persist   func()             // snapshots all sessions to the store
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	candidate string
	width     int
	height    int
}

// newAppModel creates an AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	welcomeScreen := welcome.New(welcome.Options{
		Service:   opts.Service,
		Resumable: opts.Resumable,
		Prefill:   opts.Prefill,
		Persist:   opts.Persist,
	})
	candidate := opts.Prefill.Name
	if opts.Resumable != nil && opts.Resumable.Name != nil {
		candidate = *opts.Resumable.Name
	}
	return AppModel{
		router:    router.New(welcomeScreen),
		candidate: candidate,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.candidate, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(provider.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
