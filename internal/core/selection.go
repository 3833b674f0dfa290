package core

import (
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

// HasSelection returns true if a non-empty selection is active.
func (e *Editor) HasSelection() bool {
	return e.selecting && e.anchor != e.Cursor
}

// GetSelectionRange returns the selection ordered start <= end.
func (e *Editor) GetSelectionRange() (start, end types.Position, ok bool) {
	if !e.HasSelection() {
		return e.Cursor, e.Cursor, false
	}
	start, end = e.anchor, e.Cursor
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// ClearSelection drops the selection, leaving the cursor where it is.
func (e *Editor) ClearSelection() {
	e.selecting = false
	e.anchor = e.Cursor
}

// StartOrUpdateSelection anchors a selection at the cursor if none is active.
// Called before a shift+movement so the cursor becomes the moving end.
func (e *Editor) StartOrUpdateSelection() {
	if !e.selecting {
		e.anchor = e.Cursor
		e.selecting = true
		logger.Debugf("Editor: Selection started at %v", e.anchor)
	}
}

// SelectAll selects the whole buffer with the cursor at the end.
func (e *Editor) SelectAll() {
	e.anchor = types.Position{}
	e.selecting = true
	last := e.buffer.LineCount() - 1
	e.Cursor = types.Position{Line: last, Col: e.buffer.LineLen(last)}
	e.afterMove()
}

// SelectedText returns the selected text, or "" with no selection.
func (e *Editor) SelectedText() string {
	start, end, ok := e.GetSelectionRange()
	if !ok {
		return ""
	}
	return e.buffer.Slice(start, end)
}
