//go:build !windows

package log

import (
	"os"
	"path/filepath"
	"runtime"
)

// defaultDir follows the platform log convention: ~/Library/Logs on macOS,
// the XDG state directory elsewhere.
func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "accentring"), nil
	}
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" || !filepath.IsAbs(state) {
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "accentring"), nil
}
