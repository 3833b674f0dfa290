// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a terminal screen styled by t.
func New(t *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, t)
}

// NewWithScreen initializes s, e.g. a tcell.SimulationScreen in tests.
func NewWithScreen(s tcell.Screen, t *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	tu := &TUI{screen: s}
	tu.ApplyTheme(t)
	return tu, nil
}

// ApplyTheme sets the screen's base style from the theme's Default style.
func (t *TUI) ApplyTheme(th *theme.Theme) {
	if th == nil {
		return
	}
	t.screen.SetStyle(th.GetStyle("Default"))
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostEvent injects an event into the loop. Safe from any goroutine.
func (t *TUI) PostEvent(ev tcell.Event) error {
	return t.screen.PostEvent(ev)
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync redraws every cell, e.g. after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
