package highlight

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/highlighter"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/utils"
)

// DebounceHighlightDuration is used when NewManager gets a zero delay.
const DebounceHighlightDuration = 50 * time.Millisecond

// Target receives highlight results. Implementations must be safe to call
// from a background goroutine.
type Target interface {
	UpdateSyntaxHighlights(result highlighter.HighlightResult)
}

// Manager reparses the note a short while after the last edit, off the UI
// goroutine, and hands the result to the target.
type Manager struct {
	target      Target
	highlighter *highlighter.Highlighter
	appRedraw   func() // Function to request app redraw
	delay       time.Duration

	debouncer utils.Debouncer

	mu         sync.Mutex
	cancelFunc context.CancelFunc // Cancels the parse in flight
	closed     bool
}

// NewManager creates a highlighting manager. hl may be nil, in which case
// every request clears the highlights.
func NewManager(target Target, hl *highlighter.Highlighter, redrawFunc func(), delay time.Duration) *Manager {
	if delay <= 0 {
		delay = DebounceHighlightDuration
	}
	if redrawFunc == nil {
		redrawFunc = func() {}
	}
	return &Manager{
		target:      target,
		highlighter: hl,
		appRedraw:   redrawFunc,
		delay:       delay,
	}
}

// Schedule reparses text after the debounce delay. A newer call replaces a
// pending one and cancels a parse still running.
func (m *Manager) Schedule(text string) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.debouncer.Debounce(m.delay, func() {
		m.run(text)
	})
}

// HighlightNow parses text synchronously, e.g. for the first frame.
func (m *Manager) HighlightNow(text string) {
	m.run(text)
}

func (m *Manager) run(text string) {
	if m.highlighter == nil {
		m.target.UpdateSyntaxHighlights(nil)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		cancel()
		return
	}
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.cancelFunc = cancel
	m.mu.Unlock()

	start := time.Now()
	result, err := m.highlighter.Highlight(ctx, text)

	m.mu.Lock()
	superseded := ctx.Err() != nil
	m.mu.Unlock()
	cancel()

	if superseded {
		logger.DebugTagf("highlight", "Highlight task cancelled.")
		return
	}
	if err != nil {
		logger.WarnTagf("highlight", "Highlighting failed: %v", err)
		m.target.UpdateSyntaxHighlights(nil)
		m.appRedraw()
		return
	}
	logger.DebugTagf("highlight", "Highlighted %d lines in %v", len(result), time.Since(start))
	m.target.UpdateSyntaxHighlights(result)
	m.appRedraw()
}

// Shutdown cancels pending and running tasks. Later calls to Schedule are
// ignored.
func (m *Manager) Shutdown() {
	m.debouncer.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.cancelFunc != nil {
		m.cancelFunc()
		m.cancelFunc = nil
	}
}
