//go:build windows

package log

import (
	"os"
	"path/filepath"
)

// defaultDir is %LocalAppData%\accentring\logs. Logs stay off the roaming
// profile.
func defaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "accentring", "logs"), nil
}
