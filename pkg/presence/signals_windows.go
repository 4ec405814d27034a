//go:build windows

package presence

import "os"

var showSignals = []os.Signal{}
