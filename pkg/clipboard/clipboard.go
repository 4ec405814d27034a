// Package clipboard writes template text to the system clipboard.
package clipboard

import (
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// Copier is the one outbound clipboard operation the app needs.
type Copier interface {
	WriteAll(text string) error
}

type System struct{}

func (System) WriteAll(text string) error {
	if atotto.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// Memory keeps the last copied text. It is used when no system clipboard is
// wanted, e.g. in tests.
type Memory struct {
	Text string
}

func (m *Memory) WriteAll(text string) error {
	m.Text = text
	return nil
}
