package core

import (
	"github.com/bethropolis/tidemark/internal/surface"
	"github.com/bethropolis/tidemark/internal/types"
)

var _ surface.Surface = (*Editor)(nil)

// GetSelection reports the selection as rune offsets into GetValue. The
// direction is DirectionNone when nothing is selected.
func (e *Editor) GetSelection() (int, int, types.SelectionDirection) {
	cursor := e.buffer.OffsetOf(e.Cursor)
	if !e.HasSelection() {
		return cursor, cursor, types.DirectionNone
	}
	anchor := e.buffer.OffsetOf(e.anchor)
	if anchor < cursor {
		return anchor, cursor, types.DirectionForward
	}
	return cursor, anchor, types.DirectionBackward
}

// SetSelection places the selection by rune offsets. A backward selection
// leaves the cursor at start; otherwise the cursor lands on end.
func (e *Editor) SetSelection(start, end int, dir types.SelectionDirection) {
	c := types.NewCursorPosition(start, end, dir).Clamp(e.buffer.RuneLen())
	startPos := e.buffer.PositionAt(c.Start)
	endPos := e.buffer.PositionAt(c.End)

	if c.Empty() {
		e.selecting = false
		e.Cursor = startPos
		e.anchor = startPos
	} else if dir == types.DirectionBackward {
		e.selecting = true
		e.anchor = endPos
		e.Cursor = startPos
	} else {
		e.selecting = true
		e.anchor = startPos
		e.Cursor = endPos
	}
	e.afterMove()
}

// Focus marks the editor as the keyboard target.
func (e *Editor) Focus() {
	e.focused = true
}

// GetValue returns the full buffer text.
func (e *Editor) GetValue() string {
	return e.buffer.Text()
}
