package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45"))

	UserStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45"))

	AssistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	FileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

var mdRenderer *glamour.TermRenderer

// RenderMarkdown renders assistant markdown for the terminal. Falls back to
// the raw text when stdout is not a TTY or rendering fails.
func RenderMarkdown(content string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return content
	}
	if mdRenderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return content
		}
		mdRenderer = r
	}
	out, err := mdRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// PrintHistory renders the session's persisted turns in order
func PrintHistory(w io.Writer, s *Session) {
	if len(s.Messages) == 0 {
		fmt.Fprintln(w, WarnStyle.Render("Session history is empty."))
		return
	}
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("History for session: %s", s.Name)))
	for _, msg := range s.Messages {
		switch msg.Role {
		case RoleAssistant:
			fmt.Fprintf(w, "%s:\n%s\n", AssistantStyle.Render("Assistant"), RenderMarkdown(msg.Content))
		default:
			fmt.Fprintf(w, "%s: %s\n", UserStyle.Render(capitalize(msg.Role)), msg.Content)
		}
	}
	fmt.Fprintln(w, HintStyle.Render(strings.Repeat("─", 20)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
