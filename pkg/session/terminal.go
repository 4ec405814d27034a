package session

import (
	"os"

	"golang.org/x/term"
)

// SaveTerminal records the mode of f if it is a terminal and returns a func
// that puts it back. A prompt that never returns, because the process is
// quitting on a signal, would otherwise leave the terminal in raw mode.
func SaveTerminal(f *os.File) (restore func() error) {
	noop := func() error { return nil }

	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return noop
	}
	state, err := term.GetState(fd)
	if err != nil {
		return noop
	}
	return func() error {
		return term.Restore(fd, state)
	}
}
