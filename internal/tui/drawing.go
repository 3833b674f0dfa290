// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const lineNumberPadding = 1 // Space between number and text

// GutterWidth returns the line-number gutter width for a buffer of
// lineCount lines on a screen width columns wide; 0 when it does not fit.
func GutterWidth(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	gutter := int(math.Log10(float64(lineCount))) + 1 + lineNumberPadding
	if gutter >= width {
		return 0
	}
	return gutter
}

// isPositionWithin checks if pos is within [start, end).
// Assumes start <= end.
func isPositionWithin(pos, start, end types.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	// The end position is exclusive.
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}

func fillRow(s tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// DrawEditor draws the visible part of the editor into the top viewHeight
// rows, with syntax and selection styles from th.
func DrawEditor(t *TUI, editor *core.Editor, th *theme.Theme, viewHeight int) {
	if th == nil {
		th = &theme.TidemarkDark
	}
	defaultStyle := th.GetStyle("Default")
	lineNumberStyle := th.GetStyle("LineNumber")
	selectionStyle := th.GetStyle("Selection")

	width, _ := t.Size()
	if viewHeight <= 0 || width <= 0 {
		return
	}
	viewY, viewX := editor.GetViewport()
	selStart, selEnd, selectionActive := editor.GetSelectionRange()
	cursor := editor.GetCursor()
	tabWidth := editor.TabWidth
	if tabWidth <= 0 {
		tabWidth = core.DefaultTabWidth
	}

	lines := editor.GetBuffer().Lines()
	gutterWidth := GutterWidth(len(lines), width)
	maxDigits := gutterWidth - lineNumberPadding
	textAreaWidth := width - gutterWidth

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + viewY
		fillRow(t.screen, screenY, width, defaultStyle)

		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}

		if gutterWidth > 0 {
			numStyle := lineNumberStyle
			if cursor.Line == lineIdx {
				numStyle = numStyle.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, lineIdx+1) {
				t.screen.SetContent(i, screenY, r, nil, numStyle)
			}
		}

		syntax := editor.GetSyntaxHighlightsForLine(lineIdx)
		gr := uniseg.NewGraphemes(string(lines[lineIdx]))
		visualX := 0
		runeIndex := 0

		for gr.Next() {
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			if clusterRunes[0] == '\t' {
				clusterWidth = tabWidth - (visualX % tabWidth)
			}

			if visualX+clusterWidth > viewX && visualX < viewX+textAreaWidth {
				style := defaultStyle
				for _, span := range syntax {
					if runeIndex >= span.StartCol && runeIndex < span.EndCol {
						style = th.GetStyle(span.StyleName)
						break
					}
				}
				if selectionActive && isPositionWithin(types.Position{Line: lineIdx, Col: runeIndex}, selStart, selEnd) {
					style = selectionStyle
				}

				screenX := visualX - viewX + gutterWidth
				if clusterRunes[0] == '\t' {
					for i := 0; i < clusterWidth; i++ {
						if x := screenX + i; x >= gutterWidth && x < width {
							t.screen.SetContent(x, screenY, ' ', nil, style)
						}
					}
				} else if screenX >= gutterWidth && screenX < width {
					t.screen.SetContent(screenX, screenY, clusterRunes[0], clusterRunes[1:], style)
					for cw := 1; cw < clusterWidth; cw++ {
						if x := screenX + cw; x < width {
							t.screen.SetContent(x, screenY, ' ', nil, style)
						}
					}
				}
			}

			visualX += clusterWidth
			runeIndex += len(clusterRunes)
			if visualX >= viewX+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor places the terminal cursor, hiding it when it is off view.
func DrawCursor(t *TUI, editor *core.Editor, viewHeight int) {
	cursor := editor.GetCursor()
	viewY, viewX := editor.GetViewport()
	width, _ := t.Size()
	gutterWidth := GutterWidth(editor.GetBuffer().LineCount(), width)

	line, _ := editor.GetBuffer().Line(cursor.Line)
	visualCol := utils.VisualColumn(line, cursor.Col, editor.TabWidth)

	screenX := visualCol - viewX + gutterWidth
	screenY := cursor.Line - viewY
	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}

// HideCursor hides the terminal cursor, as in Preview.
func (t *TUI) HideCursor() {
	t.screen.HideCursor()
}
