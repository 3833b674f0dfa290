package history

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

const DefaultMaxHistory = 100

// Manager handles the undo/redo stack.
type Manager struct {
	mu           sync.Mutex
	changes      []Change
	currentIndex int // Index of the next change to redo
	maxHistory   int
}

// NewManager creates a history manager keeping at most maxHistory changes.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a change, dropping any redo history. Consecutive typing
// changes on the same line merge into one.
func (m *Manager) RecordChange(c Change) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.Before.Text == c.After.Text {
		return
	}
	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}

	if n := len(m.changes); c.Typing && n > 0 {
		prev := &m.changes[n-1]
		if prev.Typing && prev.After.Text == c.Before.Text && prev.After.Cursor.Line == c.Before.Cursor.Line {
			prev.After = c.After
			return
		}
	}

	m.changes = append(m.changes, c)
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)
	logger.Debugf("History: Recorded change. Index: %d, Count: %d", m.currentIndex, len(m.changes))
}

// Undo steps back one change and returns the snapshot to restore.
func (m *Manager) Undo() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentIndex <= 0 {
		logger.Debugf("History: Nothing to undo.")
		return Snapshot{}, false
	}
	m.currentIndex--
	return m.changes[m.currentIndex].Before, true
}

// Redo reapplies the last undone change and returns the snapshot to restore.
func (m *Manager) Redo() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentIndex >= len(m.changes) {
		logger.Debugf("History: Nothing to redo.")
		return Snapshot{}, false
	}
	c := m.changes[m.currentIndex]
	m.currentIndex++
	return c.After, true
}

// Clear resets the history stack.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes = m.changes[:0]
	m.currentIndex = 0
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentIndex > 0
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentIndex < len(m.changes)
}
