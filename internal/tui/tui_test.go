package tui

import (
	"strings"
	"testing"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/gdamore/tcell/v2"
)

func newTestTUI(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	tu, err := NewWithScreen(sim, &theme.TidemarkDark)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(tu.Close)
	return tu, sim
}

func row(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func newEditor(text string, w, h int) *core.Editor {
	ed := core.NewEditor(buffer.NewSliceBuffer())
	ed.LoadText(text)
	ed.SetViewSize(w, h)
	return ed
}

func TestGutterWidth(t *testing.T) {
	tests := []struct{ lines, width, want int }{
		{0, 80, 2},
		{9, 80, 2},
		{10, 80, 3},
		{1000, 80, 5},
		{10, 3, 0},
	}
	for _, tt := range tests {
		if got := GutterWidth(tt.lines, tt.width); got != tt.want {
			t.Fatalf("GutterWidth(%d, %d)=%d, want %d", tt.lines, tt.width, got, tt.want)
		}
	}
}

func TestDrawEditorTextAndGutter(t *testing.T) {
	tu, sim := newTestTUI(t, 20, 4)
	ed := newEditor("# Title\n\ta\n日本", 18, 3)

	DrawEditor(tu, ed, &theme.TidemarkDark, 3)
	DrawCursor(tu, ed, 3)
	tu.Show()

	if got := row(sim, 0); got != "1 # Title" {
		t.Fatalf("row0=%q", got)
	}
	if got := row(sim, 1); got != "2     a" {
		t.Fatalf("row1=%q", got)
	}
	if got := row(sim, 2); got != "3 日 本" && got != "3 日本" {
		t.Fatalf("row2=%q", got)
	}
	x, y, visible := sim.GetCursor()
	if !visible || x != 2 || y != 0 {
		t.Fatalf("cursor=(%d,%d,%v), want (2,0,true)", x, y, visible)
	}
}

func TestDrawEditorSelectionAndSyntaxStyles(t *testing.T) {
	tu, sim := newTestTUI(t, 20, 2)
	ed := newEditor("abcdef", 18, 1)
	ed.SetSelection(1, 3, types.DirectionForward)
	ed.UpdateSyntaxHighlights(map[int][]types.StyledRange{
		0: {{StartCol: 4, EndCol: 6, StyleName: "markup.heading"}},
	})

	th := &theme.TidemarkDark
	DrawEditor(tu, ed, th, 1)
	tu.Show()

	cells, w, _ := sim.GetContents()
	gutter := GutterWidth(1, 20)
	styleAt := func(col int) tcell.Style { return cells[0*w+gutter+col].Style }

	if styleAt(0) != th.GetStyle("Default") {
		t.Fatalf("col 0 should use Default")
	}
	if styleAt(1) != th.GetStyle("Selection") || styleAt(2) != th.GetStyle("Selection") {
		t.Fatalf("cols 1-2 should use Selection")
	}
	if styleAt(3) != th.GetStyle("Default") {
		t.Fatalf("selection end is exclusive")
	}
	if styleAt(4) != th.GetStyle("markup.heading") {
		t.Fatalf("col 4 should use markup.heading")
	}
}

func TestDrawCursorHiddenWhenScrolledAway(t *testing.T) {
	tu, sim := newTestTUI(t, 20, 3)
	ed := newEditor("a\nb\nc\nd\ne", 18, 2)
	ed.SetCursor(types.Position{Line: 4})

	DrawCursor(tu, ed, 1)
	tu.Show()
	if _, _, visible := sim.GetCursor(); visible {
		t.Fatalf("cursor below the view should be hidden")
	}
}

func TestPreviewScrollAndDraw(t *testing.T) {
	tu, sim := newTestTUI(t, 10, 3)
	p := &Preview{}
	p.SetLines([]string{"one", "two", "three", "four", "a very long rendered line"})

	p.Scroll(10, 2)
	if p.Offset() != 3 {
		t.Fatalf("offset=%d, want 3", p.Offset())
	}
	p.Scroll(-10, 2)
	if p.Offset() != 0 {
		t.Fatalf("offset=%d, want 0", p.Offset())
	}

	p.ScrollTo(3, 2)
	DrawPreview(tu, p, &theme.TidemarkDark, 2)
	tu.Show()
	if got := row(sim, 0); got != "four" {
		t.Fatalf("row0=%q", got)
	}
	if got := row(sim, 1); got != "a very lon" {
		t.Fatalf("row1=%q", got)
	}
	if _, _, visible := sim.GetCursor(); visible {
		t.Fatalf("preview should hide the cursor")
	}

	p.SetLines([]string{"short"})
	if p.Offset() != 0 {
		t.Fatalf("offset=%d after shrinking, want 0", p.Offset())
	}
}
