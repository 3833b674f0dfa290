// internal/tui/preview.go
package tui

import (
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/rivo/uniseg"
)

// Preview holds rendered markdown lines and a vertical scroll offset.
type Preview struct {
	lines  []string
	offset int
}

// SetLines replaces the content, keeping the scroll offset in range.
func (p *Preview) SetLines(lines []string) {
	p.lines = lines
	p.clamp(0)
}

// Lines returns the rendered lines.
func (p *Preview) Lines() []string {
	return p.lines
}

// Offset returns the first visible line.
func (p *Preview) Offset() int {
	return p.offset
}

// Scroll moves the view by delta lines within a view of viewHeight rows.
func (p *Preview) Scroll(delta, viewHeight int) {
	p.offset += delta
	p.clamp(viewHeight)
}

// ScrollTo jumps to line, e.g. 0 for Home.
func (p *Preview) ScrollTo(line, viewHeight int) {
	p.offset = line
	p.clamp(viewHeight)
}

func (p *Preview) clamp(viewHeight int) {
	maxOffset := len(p.lines) - viewHeight
	if viewHeight <= 0 {
		maxOffset = len(p.lines) - 1
	}
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// DrawPreview draws the rendered lines into the top viewHeight rows. Lines
// wider than the screen are cut.
func DrawPreview(t *TUI, p *Preview, th *theme.Theme, viewHeight int) {
	if th == nil {
		th = &theme.TidemarkDark
	}
	style := th.GetStyle("Preview")
	width, _ := t.Size()
	if viewHeight <= 0 || width <= 0 {
		return
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		fillRow(t.screen, screenY, width, style)
		idx := p.offset + screenY
		if idx < 0 || idx >= len(p.lines) {
			continue
		}
		x := 0
		gr := uniseg.NewGraphemes(p.lines[idx])
		for gr.Next() {
			w := gr.Width()
			if x+w > width {
				break
			}
			runes := gr.Runes()
			t.screen.SetContent(x, screenY, runes[0], runes[1:], style)
			x += w
		}
	}
	t.screen.HideCursor()
}
