// internal/render/markdown.go
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// DefaultStyle is the glamour standard style used when none is configured.
const DefaultStyle = "dark"

// Renderer turns raw markdown into display text.
type Renderer interface {
	Render(markdown string) (string, error)
}

type cacheKey struct {
	width    int
	markdown string
}

// Glamour renders markdown with a glamour standard style. Output is cached
// per (width, markdown) so redraws without edits are free.
type Glamour struct {
	mu       sync.Mutex
	style    string
	wordWrap int
	term     *glamour.TermRenderer
	cache    map[cacheKey]string
}

var _ Renderer = (*Glamour)(nil)

// NewGlamour builds a renderer. wordWrap <= 0 disables wrapping.
func NewGlamour(style string, wordWrap int) (*Glamour, error) {
	if style == "" {
		style = DefaultStyle
	}
	g := &Glamour{style: style, cache: make(map[cacheKey]string)}
	if err := g.build(wordWrap); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Glamour) build(wordWrap int) error {
	if wordWrap < 0 {
		wordWrap = 0
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return fmt.Errorf("creating glamour renderer (style %q): %w", g.style, err)
	}
	g.term = term
	g.wordWrap = wordWrap
	return nil
}

// SetWidth rebuilds the underlying renderer when the wrap width changes.
func (g *Glamour) SetWidth(width int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if width == g.wordWrap {
		return nil
	}
	return g.build(width)
}

// Render implements Renderer.
func (g *Glamour) Render(markdown string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := cacheKey{width: g.wordWrap, markdown: markdown}
	if out, ok := g.cache[key]; ok {
		return out, nil
	}
	out, err := g.term.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	// Only the latest document is worth keeping.
	if len(g.cache) > 8 {
		g.cache = make(map[cacheKey]string)
	}
	g.cache[key] = out
	logger.DebugTagf("render", "Rendered %d bytes of markdown at width %d", len(markdown), g.wordWrap)
	return out, nil
}

// Lines renders markdown and returns plain display lines with ANSI escape
// sequences removed and trailing blank lines dropped.
func Lines(r Renderer, markdown string) ([]string, error) {
	out, err := r.Render(markdown)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(ansi.Strip(out), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// Width reports the display width of a rendered line.
func Width(line string) int {
	return ansi.StringWidth(line)
}
