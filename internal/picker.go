package internal

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrPickerUnavailable is returned when no interactive picker tool is
// installed; callers then require an explicit path.
var ErrPickerUnavailable = errors.New("fzf not found; install fzf for interactive selection or provide a path directly")

// PickFile launches fzf and returns the selected path. A cancelled
// selection returns ("", nil).
func PickFile() (string, error) {
	fzf, err := exec.LookPath("fzf")
	if err != nil {
		return "", ErrPickerUnavailable
	}
	cmd := exec.Command(fzf)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		if isFzfCancel(err) {
			return "", nil
		}
		return "", fmt.Errorf("fzf selection failed: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}

// PickOne runs fzf over the given lines and returns the selected one.
// Used for the resume/delete session pickers.
func PickOne(prompt string, lines []string) (string, error) {
	fzf, err := exec.LookPath("fzf")
	if err != nil {
		return "", ErrPickerUnavailable
	}
	cmd := exec.Command(fzf, "--prompt", prompt)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	cmd.Stderr = os.Stderr
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		if isFzfCancel(err) {
			return "", nil
		}
		return "", fmt.Errorf("fzf selection failed: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}

// fzf exits 130 on ctrl-c/esc and 1 when nothing matched
func isFzfCancel(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		return code == 130 || code == 1
	}
	return false
}
