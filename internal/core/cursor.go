package core

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/utils"
)

// MoveCursor moves the cursor by the given deltas, wrapping across line ends
// for horizontal moves, and keeps the selection end in step.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	lineCount := e.buffer.LineCount()

	if deltaLine == 0 {
		if deltaCol > 0 && e.Cursor.Col >= e.buffer.LineLen(e.Cursor.Line) && e.Cursor.Line < lineCount-1 {
			e.Cursor = types.Position{Line: e.Cursor.Line + 1}
			e.afterMove()
			return
		}
		if deltaCol < 0 && e.Cursor.Col <= 0 && e.Cursor.Line > 0 {
			line := e.Cursor.Line - 1
			e.Cursor = types.Position{Line: line, Col: e.buffer.LineLen(line)}
			e.afterMove()
			return
		}
	}

	e.Cursor.Line += deltaLine
	e.Cursor.Col += deltaCol
	e.clampCursor()
	e.afterMove()
}

// PageMove moves the cursor by whole view heights.
func (e *Editor) PageMove(deltaPages int) {
	if e.viewHeight <= 0 {
		return
	}
	e.Cursor.Line += e.viewHeight * deltaPages
	e.clampCursor()

	e.ViewportY += e.viewHeight * deltaPages
	maxViewportY := e.buffer.LineCount() - e.viewHeight
	if maxViewportY < 0 {
		maxViewportY = 0
	}
	if e.ViewportY > maxViewportY {
		e.ViewportY = maxViewportY
	}
	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	e.afterMove()
}

// Home moves the cursor to column 0.
func (e *Editor) Home() {
	e.Cursor.Col = 0
	e.afterMove()
}

// End moves the cursor past the last rune of the line.
func (e *Editor) End() {
	e.Cursor.Col = e.buffer.LineLen(e.Cursor.Line)
	e.afterMove()
}

func (e *Editor) afterMove() {
	e.ScrollToCursor()
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.Cursor})
}

func (e *Editor) clampCursor() {
	lineCount := e.buffer.LineCount()
	if e.Cursor.Line >= lineCount {
		e.Cursor.Line = lineCount - 1
	}
	if e.Cursor.Line < 0 {
		e.Cursor.Line = 0
	}
	if n := e.buffer.LineLen(e.Cursor.Line); e.Cursor.Col > n {
		e.Cursor.Col = n
	}
	if e.Cursor.Col < 0 {
		e.Cursor.Col = 0
	}
	if e.selecting {
		e.anchor = e.buffer.PositionAt(e.buffer.OffsetOf(e.anchor))
	}
}

// ScrollToCursor adjusts the viewport so the cursor stays ScrollOff lines
// away from the top and bottom edges.
func (e *Editor) ScrollToCursor() {
	if e.viewHeight <= 0 || e.viewWidth <= 0 {
		return
	}

	scrollOff := e.ScrollOff
	if scrollOff*2 >= e.viewHeight {
		scrollOff = (e.viewHeight - 1) / 2
	}

	if e.Cursor.Line < e.ViewportY+scrollOff {
		e.ViewportY = e.Cursor.Line - scrollOff
	} else if e.Cursor.Line >= e.ViewportY+e.viewHeight-scrollOff {
		e.ViewportY = e.Cursor.Line - e.viewHeight + 1 + scrollOff
	}

	line, _ := e.buffer.Line(e.Cursor.Line)
	visualCol := utils.VisualColumn(line, e.Cursor.Col, e.TabWidth)
	if visualCol < e.ViewportX {
		e.ViewportX = visualCol
	} else if visualCol >= e.ViewportX+e.viewWidth {
		e.ViewportX = visualCol - e.viewWidth + 1
	}

	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	if e.ViewportX < 0 {
		e.ViewportX = 0
	}
}
