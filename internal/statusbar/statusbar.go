// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style // Title while the note has unsaved edits
	StyleMessage   tcell.Style // Temporary messages
	StyleMode      tcell.Style // Mode badge
	StyleCommand   tcell.Style // Command line input
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleMode:      tcell.StyleDefault.Foreground(tcell.ColorBlue).Background(tcell.ColorWhite).Bold(true),
		StyleCommand:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// ConfigFromTheme takes styles from t, keeping the default timeout.
func ConfigFromTheme(t *theme.Theme) Config {
	c := DefaultConfig()
	if t == nil {
		return c
	}
	c.StyleDefault = t.GetStyle("StatusBar")
	c.StyleModified = t.GetStyle("StatusBarModified")
	c.StyleMessage = t.GetStyle("StatusBarMessage")
	c.StyleMode = t.GetStyle("StatusBarMode")
	c.StyleCommand = t.GetStyle("StatusBarMessage")
	return c
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	title      string
	cursorPos  types.Position
	showCursor bool
	isModified bool
	editorMode string
	segments   map[string]string // Right-hand slots filled by plugins

	// Command line input, shown instead of everything else while active.
	command       string
	commandActive bool

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config:   config,
		now:      time.Now,
		segments: make(map[string]string),
	}
}

// SetConfig swaps styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetNoteInfo updates the note title and modified flag.
func (sb *StatusBar) SetNoteInfo(title string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.title = title
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown. Pass show=false in
// Preview, where there is no cursor.
func (sb *StatusBar) SetCursorInfo(pos types.Position, show bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.showCursor = show
}

// SetEditorMode updates the mode badge.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetSegment sets a named right-hand slot; empty text removes it.
func (sb *StatusBar) SetSegment(name, text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if text == "" {
		delete(sb.segments, name)
		return
	}
	sb.segments[name] = text
}

// SetCommandInput shows the command line being typed.
func (sb *StatusBar) SetCommandInput(input string, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.command = input
	sb.commandActive = active
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// leftText builds the default left side. Caller holds the lock.
func (sb *StatusBar) leftText() string {
	title := sb.title
	if title == "" {
		title = "[Untitled]"
	}
	modified := ""
	if sb.isModified {
		modified = " [+]"
	}
	pos := ""
	if sb.showCursor {
		pos = fmt.Sprintf(" -- Ln %d, Col %d", sb.cursorPos.Line+1, sb.cursorPos.Col+1)
	}
	return fmt.Sprintf(" %s%s%s", title, modified, pos)
}

// rightText joins plugin segments in name order. Caller holds the lock.
func (sb *StatusBar) rightText() string {
	if len(sb.segments) == 0 {
		return ""
	}
	names := make([]string, 0, len(sb.segments))
	for name := range sb.segments {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = sb.segments[name]
	}
	return strings.Join(parts, " | ") + " "
}

// Draw renders the status bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	cfg := sb.config
	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= cfg.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var badge, left, right string
	leftStyle := cfg.StyleDefault
	switch {
	case sb.commandActive:
		left = ":" + sb.command
		leftStyle = cfg.StyleCommand
	case isTempMsgActive:
		left = " " + sb.tempMessage
		leftStyle = cfg.StyleMessage
	default:
		if sb.editorMode != "" {
			badge = " " + sb.editorMode + " "
		}
		left = sb.leftText()
		if sb.isModified {
			leftStyle = cfg.StyleModified
		}
		right = sb.rightText()
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, cfg.StyleDefault)
	}

	x := drawText(screen, 0, y, width, badge, cfg.StyleMode)
	x = drawText(screen, x, y, width, left, leftStyle)

	if right != "" {
		rw := uniseg.StringWidth(right)
		if start := width - rw; start > x {
			drawText(screen, start, y, width, right, cfg.StyleDefault)
		}
	}
}

// drawText draws s from x, stopping at maxX, and returns the next column.
func drawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
