package input

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// ErrChordTaken is returned when registering a chord that already has a callback.
var ErrChordTaken = errors.New("chord already registered")

// Chord is a modifier + key combination such as ctrl+e.
type Chord struct {
	Ctrl bool
	Alt  bool
	Key  rune // Lower-case
}

func (c Chord) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	parts = append(parts, string(c.Key))
	return strings.Join(parts, "+")
}

// ParseChord parses strings like "ctrl+e" or "Alt+Shift+Z". At least one of
// ctrl or alt is required.
func ParseChord(s string) (Chord, error) {
	var c Chord
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return c, fmt.Errorf("chord %q: need a modifier and a key", s)
	}
	for _, mod := range parts[:len(parts)-1] {
		switch strings.TrimSpace(mod) {
		case "ctrl", "control", "cmdorctrl":
			c.Ctrl = true
		case "alt", "meta", "option":
			c.Alt = true
		case "shift":
			// Letters are matched case-insensitively.
		default:
			return c, fmt.Errorf("chord %q: unknown modifier %q", s, mod)
		}
	}
	key := strings.TrimSpace(parts[len(parts)-1])
	if utf8.RuneCountInString(key) != 1 {
		return c, fmt.Errorf("chord %q: key must be a single character", s)
	}
	if !c.Ctrl && !c.Alt {
		return c, fmt.Errorf("chord %q: needs ctrl or alt", s)
	}
	c.Key, _ = utf8.DecodeRuneInString(key)
	return c, nil
}

// ChordFromEvent extracts the chord pressed in ev, if any.
func ChordFromEvent(ev *tcell.EventKey) (Chord, bool) {
	key := ev.Key()
	mod := ev.Modifiers()
	alt := mod&tcell.ModAlt != 0

	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		// Tab, Enter and Backspace share codes with ctrl+i, ctrl+m, ctrl+h.
		if mod&tcell.ModCtrl == 0 && (key == tcell.KeyTab || key == tcell.KeyEnter || key == tcell.KeyBackspace) {
			return Chord{}, false
		}
		return Chord{Ctrl: true, Alt: alt, Key: 'a' + rune(key-tcell.KeyCtrlA)}, true
	}
	if key == tcell.KeyRune {
		ctrl := mod&tcell.ModCtrl != 0
		if !ctrl && !alt {
			return Chord{}, false
		}
		return Chord{Ctrl: ctrl, Alt: alt, Key: unicode.ToLower(ev.Rune())}, true
	}
	return Chord{}, false
}

// Shortcuts maps chords to callbacks.
type Shortcuts struct {
	mu       sync.RWMutex
	bindings map[Chord]func()
}

func NewShortcuts() *Shortcuts {
	return &Shortcuts{bindings: make(map[Chord]func())}
}

// Register binds fn to c.
func (s *Shortcuts) Register(c Chord, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bindings[c]; exists {
		return fmt.Errorf("%s: %w", c, ErrChordTaken)
	}
	s.bindings[c] = fn
	logger.Debugf("Shortcuts: registered %s", c)
	return nil
}

// Unregister removes the binding for c.
func (s *Shortcuts) Unregister(c Chord) {
	s.mu.Lock()
	delete(s.bindings, c)
	s.mu.Unlock()
}

// Handle runs the callback bound to the chord in ev. It reports whether a
// callback ran.
func (s *Shortcuts) Handle(ev *tcell.EventKey) bool {
	c, ok := ChordFromEvent(ev)
	if !ok {
		return false
	}
	s.mu.RLock()
	fn, ok := s.bindings[c]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	logger.DebugTagf("input", "Shortcut %s fired", c)
	fn()
	return true
}
