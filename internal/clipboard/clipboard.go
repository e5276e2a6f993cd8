// Package clipboard provides clipboard access via the system's copy
// command, so converted output can go straight into a paste buffer.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard command exists.
var ErrUnavailable = errors.New("clipboard unavailable")

// copyCommand picks the platform's copy command, nil when there is none.
func copyCommand() *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return exec.Command("pbcopy")
		}
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard")
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input")
		}
	}
	return nil
}

// IsAvailable reports whether clipboard access works on this system.
func IsAvailable() bool {
	return copyCommand() != nil
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	cmd := copyCommand()
	if cmd == nil {
		return ErrUnavailable
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
