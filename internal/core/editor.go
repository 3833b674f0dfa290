// internal/core/editor.go
package core

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/event"
	hl "github.com/bethropolis/tidemark/internal/highlighter"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

const (
	DefaultScrollOff = 3
	DefaultTabWidth  = 4
)

// Editor is the raw-markdown text area shown in Edit mode. It owns a line
// buffer, the cursor and selection, and reports every text change through
// the OnChange callback with the full new text.
type Editor struct {
	buffer     buffer.Buffer
	Cursor     types.Position
	ViewportY  int // Top visible line index
	ViewportX  int // Leftmost visible visual column
	viewWidth  int
	viewHeight int
	ScrollOff  int
	TabWidth   int

	selecting bool
	anchor    types.Position // Fixed end of the selection; the cursor is the other

	focused bool

	history      *history.Manager
	clipboard    *clipboard.Manager
	eventManager *event.Manager
	onChange     func(string)

	syntaxHighlights hl.HighlightResult
	highlightMutex   sync.RWMutex
}

// NewEditor creates an Editor over buf.
func NewEditor(buf buffer.Buffer) *Editor {
	return &Editor{
		buffer:           buf,
		ScrollOff:        DefaultScrollOff,
		TabWidth:         DefaultTabWidth,
		history:          history.NewManager(history.DefaultMaxHistory),
		clipboard:        clipboard.NewManager(false),
		syntaxHighlights: make(hl.HighlightResult),
	}
}

// SetEventManager sets the bus used for BufferModified and CursorMoved.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// SetOnChange sets the callback receiving the full text after each edit.
func (e *Editor) SetOnChange(fn func(string)) {
	e.onChange = fn
}

// SetClipboard replaces the clipboard manager.
func (e *Editor) SetClipboard(c *clipboard.Manager) {
	e.clipboard = c
}

func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

func (e *Editor) GetHistoryManager() *history.Manager {
	return e.history
}

// Text returns the full buffer text.
func (e *Editor) Text() string {
	return e.buffer.Text()
}

// LoadText replaces the content, resets history and moves the cursor to the
// start. OnChange is not called.
func (e *Editor) LoadText(text string) {
	e.buffer.SetText(text)
	e.buffer.MarkClean()
	e.history.Clear()
	e.ClearSelection()
	e.Cursor = types.Position{}
	e.ViewportY, e.ViewportX = 0, 0
}

// SyncText adopts text produced outside the editor (structured inserts,
// undo of them). The change is undoable, the cursor is clamped in place and
// OnChange is not called.
func (e *Editor) SyncText(text string) {
	if text == e.buffer.Text() {
		return
	}
	before := e.snapshot()
	e.buffer.SetText(text)
	e.clampCursor()
	e.history.RecordChange(history.Change{Before: before, After: e.snapshot()})
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Markdown: text})
	logger.DebugTagf("editor", "Synced external text (%d bytes)", len(text))
}

// SetViewSize updates the drawable area, excluding the status bar.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	e.viewHeight = height
	if e.viewHeight < 0 {
		e.viewHeight = 0
	}
	e.ScrollToCursor()
}

func (e *Editor) ViewSize() (int, int) {
	return e.viewWidth, e.viewHeight
}

func (e *Editor) GetCursor() types.Position {
	return e.Cursor
}

// SetCursor moves the cursor to pos, clamped to the buffer.
func (e *Editor) SetCursor(pos types.Position) {
	e.Cursor = pos
	e.clampCursor()
	e.ScrollToCursor()
}

func (e *Editor) GetViewport() (int, int) {
	return e.ViewportY, e.ViewportX
}

// IsFocused reports whether Focus has been called since the last Blur.
func (e *Editor) IsFocused() bool {
	return e.focused
}

// Blur drops keyboard focus, e.g. when the surface is unmounted.
func (e *Editor) Blur() {
	e.focused = false
}

// GetSyntaxHighlightsForLine returns the computed syntax styles for a line.
func (e *Editor) GetSyntaxHighlightsForLine(lineNum int) []types.StyledRange {
	e.highlightMutex.RLock()
	defer e.highlightMutex.RUnlock()
	return e.syntaxHighlights[lineNum]
}

// UpdateSyntaxHighlights replaces the highlight map. Safe from any goroutine.
func (e *Editor) UpdateSyntaxHighlights(result hl.HighlightResult) {
	e.highlightMutex.Lock()
	defer e.highlightMutex.Unlock()
	if result == nil {
		result = make(hl.HighlightResult)
	}
	e.syntaxHighlights = result
}

func (e *Editor) snapshot() history.Snapshot {
	return history.Snapshot{Text: e.buffer.Text(), Cursor: e.Cursor}
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// commit records the edit that turned before into the current text and
// reports it.
func (e *Editor) commit(before history.Snapshot, typing bool) {
	after := e.snapshot()
	if after.Text == before.Text {
		return
	}
	e.history.RecordChange(history.Change{Before: before, After: after, Typing: typing})
	e.ScrollToCursor()
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Markdown: after.Text})
	if e.onChange != nil {
		e.onChange(after.Text)
	}
}
