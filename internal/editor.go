package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/editor"
)

const editorPrimer = "# Enter your prompt below. Save and exit the editor when done.\n"

// ComposeInEditor opens the configured external editor ($VISUAL/$EDITOR) on
// a temporary markdown file and returns the saved buffer with the primer
// stripped. An empty buffer means the user cancelled; callers treat it as a
// no-op, not an empty message.
func ComposeInEditor() (string, error) {
	tmp, err := os.CreateTemp("", "aichat-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(editorPrimer); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to prime temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd, err := editor.Cmd("aichat", path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve editor: %w", err)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read editor buffer: %w", err)
	}
	return StripEditorPrimer(string(data)), nil
}

// StripEditorPrimer removes the instruction line and surrounding whitespace
// from an editor buffer
func StripEditorPrimer(buf string) string {
	content := strings.TrimSpace(buf)
	if strings.HasPrefix(content, strings.TrimSpace(editorPrimer)) {
		content = strings.TrimPrefix(content, strings.TrimSpace(editorPrimer))
	}
	return strings.TrimSpace(content)
}
