package ui

import (
	"io"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
)

// DoneMsg signals that the background work finished
type DoneMsg struct{}

// SpinnerModel is the Bubble Tea model shown while a blocking step runs
type SpinnerModel struct {
	spinner  spinner.Model
	title    string
	done     <-chan struct{}
	finished bool
	quitting bool
}

// NewSpinnerModel creates a spinner that quits once done is closed
func NewSpinnerModel(title string, done <-chan struct{}) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)
	return SpinnerModel{spinner: s, title: title, done: done}
}

// Init initializes the model
func (m SpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitFor(m.done))
}

func waitFor(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return DoneMsg{}
	}
}

// Update handles messages
func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DoneMsg:
		m.finished = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the spinner line
func (m SpinnerModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m SpinnerModel) render() string {
	if m.quitting || m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	if m.title != "" {
		b.WriteString(" " + Dim.Render(m.title))
	}
	b.WriteString("\n")
	return b.String()
}

// RunWithSpinner runs fn while a spinner is drawn on w. In quiet mode fn
// runs without any output. Pressing q or ctrl+c returns apperr.ErrCancelled
// once fn has returned.
func RunWithSpinner(w io.Writer, quiet bool, title string, fn func() error) error {
	if quiet {
		return fn()
	}

	done := make(chan struct{})
	var fnErr error
	go func() {
		defer close(done)
		fnErr = fn()
	}()

	p := tea.NewProgram(NewSpinnerModel(title, done), tea.WithOutput(w), tea.WithoutSignalHandler())
	final, err := p.Run()
	<-done
	if err != nil {
		// No usable terminal; the work itself still counts.
		return fnErr
	}
	if m, ok := final.(SpinnerModel); ok && m.quitting {
		return apperr.ErrCancelled
	}
	return fnErr
}
