//go:build !windows

package presence

import (
	"os"
	"syscall"
)

// showSignals reveal the window. `kill -USR1 <pid>` plays the tray's
// "Show Templates" item.
var showSignals = []os.Signal{syscall.SIGUSR1}
