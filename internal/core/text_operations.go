package core

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

// InsertRune types r at the cursor, replacing any selection.
func (e *Editor) InsertRune(r rune) error {
	return e.insert(string(r), r != '\n' && !e.HasSelection())
}

// InsertNewLine splits the line at the cursor.
func (e *Editor) InsertNewLine() error {
	return e.insert("\n", false)
}

// InsertTab inserts TabWidth spaces.
func (e *Editor) InsertTab() error {
	width := e.TabWidth
	if width <= 0 {
		width = DefaultTabWidth
	}
	return e.insert(strings.Repeat(" ", width), false)
}

// InsertText inserts text at the cursor, replacing any selection.
func (e *Editor) InsertText(text string) error {
	return e.insert(text, false)
}

func (e *Editor) insert(text string, typing bool) error {
	before := e.snapshot()
	if err := e.deleteSelection(); err != nil {
		return err
	}
	end, err := e.buffer.Insert(e.Cursor, text)
	if err != nil {
		return err
	}
	e.Cursor = end
	e.anchor = end
	e.commit(before, typing)
	return nil
}

// DeleteBackward deletes the selection, or the rune before the cursor.
func (e *Editor) DeleteBackward() error {
	before := e.snapshot()
	if e.HasSelection() {
		if err := e.deleteSelection(); err != nil {
			return err
		}
		e.commit(before, false)
		return nil
	}
	start := e.buffer.PositionAt(e.buffer.OffsetOf(e.Cursor) - 1)
	if start == e.Cursor {
		return nil
	}
	if _, err := e.buffer.Delete(start, e.Cursor); err != nil {
		return err
	}
	e.Cursor = start
	e.ClearSelection()
	e.commit(before, false)
	return nil
}

// DeleteForward deletes the selection, or the rune under the cursor.
func (e *Editor) DeleteForward() error {
	before := e.snapshot()
	if e.HasSelection() {
		if err := e.deleteSelection(); err != nil {
			return err
		}
		e.commit(before, false)
		return nil
	}
	end := e.buffer.PositionAt(e.buffer.OffsetOf(e.Cursor) + 1)
	if end == e.Cursor {
		return nil
	}
	if _, err := e.buffer.Delete(e.Cursor, end); err != nil {
		return err
	}
	e.ClearSelection()
	e.commit(before, false)
	return nil
}

// deleteSelection removes the selected text without committing.
func (e *Editor) deleteSelection() error {
	start, end, ok := e.GetSelectionRange()
	if !ok {
		e.ClearSelection()
		return nil
	}
	if _, err := e.buffer.Delete(start, end); err != nil {
		return err
	}
	e.Cursor = start
	e.ClearSelection()
	return nil
}

// Undo reverts the last change. Returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	snap, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(snap.Text, snap.Cursor)
	return true
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	snap, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(snap.Text, snap.Cursor)
	return true
}

func (e *Editor) restore(text string, cursor types.Position) {
	e.buffer.SetText(text)
	e.ClearSelection()
	e.Cursor = cursor
	e.clampCursor()
	e.anchor = e.Cursor
	e.ScrollToCursor()
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Markdown: text})
	if e.onChange != nil {
		e.onChange(text)
	}
	logger.Debugf("Editor: Restored snapshot (%d bytes)", len(text))
}

// Copy puts the selection on the clipboard. Returns false with no selection.
func (e *Editor) Copy() (bool, error) {
	text := e.SelectedText()
	if text == "" {
		return false, nil
	}
	if err := e.clipboard.Copy(text); err != nil {
		return false, err
	}
	return true, nil
}

// Cut copies the selection and deletes it.
func (e *Editor) Cut() (bool, error) {
	copied, err := e.Copy()
	if err != nil || !copied {
		return copied, err
	}
	before := e.snapshot()
	if err := e.deleteSelection(); err != nil {
		return false, err
	}
	e.commit(before, false)
	return true, nil
}

// Clipboard returns the clipboard manager shared with paste handling.
func (e *Editor) Clipboard() *clipboard.Manager {
	return e.clipboard
}
