package internal

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Spin runs fn under an indeterminate spinner. fn executes exactly once on
// the calling goroutine; the spinner renders to stderr so piped stdout stays
// clean. Without a TTY fn runs bare.
func Spin(title string, fn func() error) error {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}

	m := spinModel{
		sp:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		title: title,
	}
	m.sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()

	err := fn()
	p.Quit()
	<-done
	return err
}

type spinModel struct {
	sp    spinner.Model
	title string
}

func (m spinModel) Init() tea.Cmd {
	return m.sp.Tick
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinModel) View() string {
	return m.sp.View() + " " + m.title
}
