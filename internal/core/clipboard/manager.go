// Package clipboard copies and pastes text, either through the system
// clipboard or an in-process register.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager holds the register and the system clipboard switch.
type Manager struct {
	mu        sync.Mutex
	useSystem bool
	register  string

	readAll  func() (string, error)
	writeAll func(string) error
}

// NewManager creates a clipboard manager. When useSystem is set and the
// platform has a clipboard utility, copies also go to the system clipboard.
func NewManager(useSystem bool) *Manager {
	if useSystem && clipboard.Unsupported {
		logger.Warnf("ClipboardManager: system clipboard unsupported, using internal register")
		useSystem = false
	}
	return &Manager{
		useSystem: useSystem,
		readAll:   clipboard.ReadAll,
		writeAll:  clipboard.WriteAll,
	}
}

// UsesSystem reports whether the system clipboard is in use.
func (m *Manager) UsesSystem() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.useSystem
}

// Copy stores text in the register and, if enabled, the system clipboard.
func (m *Manager) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.register = text
	if !m.useSystem {
		return nil
	}
	if err := m.writeAll(text); err != nil {
		return fmt.Errorf("writing system clipboard: %w", err)
	}
	logger.Debugf("ClipboardManager: Copied %d bytes to system clipboard", len(text))
	return nil
}

// Paste returns the clipboard text. A failing system clipboard falls back
// to the register.
func (m *Manager) Paste() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.useSystem {
		return m.register, nil
	}
	text, err := m.readAll()
	if err != nil {
		logger.Warnf("ClipboardManager: system clipboard read failed: %v", err)
		return m.register, nil
	}
	return text, nil
}
