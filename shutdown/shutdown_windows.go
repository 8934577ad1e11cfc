//go:build windows

package shutdown

import (
	"os"
	"syscall"
)

// Console close, logoff and system shutdown are delivered as SIGTERM.
var signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
